package candidate

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Status tracks a row through the batch state machine. Pending is the only
// non-terminal state besides Processing, which normally lasts for exactly one
// row transition.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
	StatusRejected   Status = "rejected_europe"
)

// Terminal reports whether a row in this status is never revisited.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusFailed || s == StatusRejected
}

// Form column names as exported by the application form. The dotted names come
// straight from the form builder and are kept verbatim so re-exports keep
// matching.
const (
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldCountry         = "countryOfOrigin"
	FieldCurrentLocation = "currentLocation"
	FieldCity            = "city"
	FieldLinkedinURL     = "linkedinUrl"
	FieldGithubURL       = "githubUrl"
	FieldPersonalWebsite = "personalWebsite"
	FieldUploadResume    = "uploadResume"
	FieldSchoolPrimary   = "education.degreeFields1"
	FieldSchoolSpecify   = "education.pleaseSpecify"
	FieldSchoolFallback  = "education.degreeFields"
	FieldCompanyRole     = "editGrid.whatIsYourRoleInTheCompany"
	FieldCompanyName     = "editGrid.whatIsTheNameOfTheCompany"
	FieldStartupDesc     = "editGrid.describeYourStartupIn23Sentences"
	FieldPrograms        = "whichEntrepreneurshipProgramsAcceleratorsClubsHaveYouBeenPartOf"
	FieldAbout           = "tellYouALittleBitMoreAboutYouThen200Words"
	FieldContribution    = "whyWouldYouLikeToJoinEuroTechFederationAsAFellowWhatCouldYouContributeToTheCommunity"
	FieldAchievement     = "whatIsTheMostImpressiveThingYouveAchievedMax150Words"
	FieldProjects        = "listTheThingsYouveBuiltAppsToolsWebsitesOpenSourceProjectsAddUrLsIfPossibleIfSeveralSeparateWithSemicolons"
)

// Columns managed by the pipeline itself.
const (
	ColStatus         = "status"
	ColGradeEducation = "grade_Education"
	ColGradeCommunity = "grade_Community"
	ColGradeHack      = "grade_HackProject"
	ColGradeResearch  = "grade_Research"
	ColGradeStartup   = "grade_Startup"
	ColTrustScore     = "trust_score"
	ColEuropeReason   = "europe_reason"
	ColChartPath      = "chart_path"
	ColErrorMessage   = "error_message"
	ColProcessedAt    = "processed_at"
)

// Record is the typed view of one candidate row. Only the fields the pipeline
// reads are decoded; the store keeps the raw row map so unknown form columns
// round-trip untouched.
type Record struct {
	FirstName       string `mapstructure:"firstName"`
	LastName        string `mapstructure:"lastName"`
	Country         string `mapstructure:"countryOfOrigin"`
	CurrentLocation string `mapstructure:"currentLocation"`
	City            string `mapstructure:"city"`
	LinkedinURL     string `mapstructure:"linkedinUrl"`
	GithubURL       string `mapstructure:"githubUrl"`
	PersonalWebsite string `mapstructure:"personalWebsite"`
	ResumePath      string `mapstructure:"uploadResume"`

	SchoolPrimary  string `mapstructure:"education.degreeFields1"`
	SchoolSpecify  string `mapstructure:"education.pleaseSpecify"`
	SchoolFallback string `mapstructure:"education.degreeFields"`

	CompanyRole string `mapstructure:"editGrid.whatIsYourRoleInTheCompany"`
	CompanyName string `mapstructure:"editGrid.whatIsTheNameOfTheCompany"`
	StartupDesc string `mapstructure:"editGrid.describeYourStartupIn23Sentences"`

	Programs     string `mapstructure:"whichEntrepreneurshipProgramsAcceleratorsClubsHaveYouBeenPartOf"`
	About        string `mapstructure:"tellYouALittleBitMoreAboutYouThen200Words"`
	Contribution string `mapstructure:"whyWouldYouLikeToJoinEuroTechFederationAsAFellowWhatCouldYouContributeToTheCommunity"`
	Achievement  string `mapstructure:"whatIsTheMostImpressiveThingYouveAchievedMax150Words"`
	Projects     string `mapstructure:"listTheThingsYouveBuiltAppsToolsWebsitesOpenSourceProjectsAddUrLsIfPossibleIfSeveralSeparateWithSemicolons"`

	Status Status `mapstructure:"status"`
}

// DecodeRecord builds a Record from a raw CSV row map.
func DecodeRecord(row map[string]string) (*Record, error) {
	var rec Record
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &rec,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("build row decoder: %w", err)
	}

	if err := decoder.Decode(row); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}

	return &rec, nil
}

// Name returns the display name used for logs and artifact filenames.
func (r *Record) Name() string {
	name := strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
	return name
}

// School resolves the declared school name across the three form variants,
// first non-empty wins.
func (r *Record) School() string {
	for _, s := range []string{r.SchoolPrimary, r.SchoolSpecify, r.SchoolFallback} {
		if strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Criterion names a graded dimension.
type Criterion string

const (
	CriterionEducation Criterion = "Education"
	CriterionCommunity Criterion = "Community"
	CriterionHack      Criterion = "Hack/Personal Project"
	CriterionResearch  Criterion = "Research"
	CriterionStartup   Criterion = "Startup"
)

// SubjectiveCriteria are the dimensions graded by the consensus scorer, in
// evaluation order.
var SubjectiveCriteria = []Criterion{
	CriterionCommunity,
	CriterionHack,
	CriterionResearch,
	CriterionStartup,
}

// GradeReport carries the per-criterion scores for one candidate together
// with the cross-source verification outcome. It is transient; the pipeline
// flattens it into the row columns.
type GradeReport struct {
	Grades       map[Criterion]float64
	Verification *VerificationReport
}

// VerificationReport is the outcome of cross-checking form claims against
// profile and resume data. The score starts at 100 and only deductions apply.
type VerificationReport struct {
	TrustScore    int
	Discrepancies []string
	Matches       []string
	Summary       string
}
