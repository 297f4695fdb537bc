package candidate

// Profile is what the network-profile collaborator returns. Any field may be
// empty; callers must tolerate a zero Profile.
type Profile struct {
	Location   string
	Education  []EducationEntry
	Experience []ExperienceEntry
	Projects   []ProjectEntry
	Skills     []string
}

// Repo is one repository-like object from the code-hosting profile.
type Repo struct {
	Name        string
	Description string
	Stars       int
	Language    string
}

// CodeProfile is what the code-hosting collaborator returns.
type CodeProfile struct {
	Username string
	Bio      string
	Company  string
	Blog     string
	Repos    []Repo
}

// Resume is the structured view of an uploaded resume after text extraction.
type Resume struct {
	Name       string
	Skills     []string
	Experience []string
	Education  []string
	Links      map[string]string
	RawText    string
}

// Website is what the personal-website collaborator returns.
type Website struct {
	Name      string
	Companies []string
	RawText   string
	Error     string
}
