package candidate

// EntityKind tags the profile sub-entry variants.
type EntityKind int

const (
	KindEducation EntityKind = iota
	KindExperience
	KindProject
	KindCertification
)

func (k EntityKind) String() string {
	switch k {
	case KindEducation:
		return "education"
	case KindExperience:
		return "experience"
	case KindProject:
		return "project"
	case KindCertification:
		return "certification"
	default:
		return "unknown"
	}
}

// EducationEntry is one schooling record from a network profile.
type EducationEntry struct {
	School string
	Degree string
	Field  string
	Years  string
}

// ExperienceEntry is one employment record from a network profile.
type ExperienceEntry struct {
	Company  string
	Title    string
	Location string
	Duration string
}

// ProjectEntry is one listed project.
type ProjectEntry struct {
	Name        string
	Description string
	URL         string
}

// CertificationEntry is one certification record.
type CertificationEntry struct {
	Name   string
	Issuer string
	Year   string
}

// Entity is a tagged union over the profile entry kinds. Exactly one of the
// pointer fields matching Kind is set.
type Entity struct {
	Kind          EntityKind
	Education     *EducationEntry
	Experience    *ExperienceEntry
	Project       *ProjectEntry
	Certification *CertificationEntry
}

// NewEntity builds a blank entity of the given kind with its variant
// allocated, so collaborator parsers can fill fields without nil checks.
func NewEntity(kind EntityKind) Entity {
	e := Entity{Kind: kind}
	switch kind {
	case KindEducation:
		e.Education = &EducationEntry{}
	case KindExperience:
		e.Experience = &ExperienceEntry{}
	case KindProject:
		e.Project = &ProjectEntry{}
	case KindCertification:
		e.Certification = &CertificationEntry{}
	}
	return e
}
