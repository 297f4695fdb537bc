// Package verify cross-checks a candidate's self-reported claims against the
// network profile and resume snapshots. The trust score starts at 100 and
// each check can only deduct from it.
package verify

import (
	"fmt"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"etf-grader/internal/candidate"
)

const (
	similarityThreshold = 80

	educationDeduction = 20
	companyDeduction   = 15
	titleDeduction     = 5
	sparseDeduction    = 10

	// sparseResumeLen / detailedProjectsLen bound the projects plausibility
	// heuristic: a long project claim against a near-empty resume.
	sparseResumeLen     = 200
	detailedProjectsLen = 200
)

// Claims are the form-declared facts the verifier checks.
type Claims struct {
	School   string
	Role     string
	Company  string
	Projects string
}

// ClaimsFromRecord extracts the verifiable claims from a candidate row.
func ClaimsFromRecord(rec *candidate.Record) Claims {
	return Claims{
		School:   rec.School(),
		Role:     strings.TrimSpace(rec.CompanyRole),
		Company:  strings.TrimSpace(rec.CompanyName),
		Projects: rec.Projects,
	}
}

// Verifier runs the cross-source checks for one candidate.
type Verifier struct {
	claims  Claims
	profile candidate.Profile
	resume  candidate.Resume

	score         int
	discrepancies []string
	matches       []string
}

func New(claims Claims, profile candidate.Profile, resume candidate.Resume) *Verifier {
	return &Verifier{
		claims:  claims,
		profile: profile,
		resume:  resume,
		score:   100,
	}
}

// Verify runs all checks and produces the report. Safe to call on empty
// snapshots; absent sources read as unconfirmed claims.
func (v *Verifier) Verify() *candidate.VerificationReport {
	v.checkEducation()
	v.checkExperience()
	v.checkProjects()

	if v.score < 0 {
		v.score = 0
	}
	if v.score > 100 {
		v.score = 100
	}

	return &candidate.VerificationReport{
		TrustScore:    v.score,
		Discrepancies: v.discrepancies,
		Matches:       v.matches,
		Summary:       summary(v.score),
	}
}

func summary(score int) string {
	switch {
	case score >= 90:
		return "High data consistency across all sources."
	case score >= 70:
		return "Mostly consistent, with some minor missing details."
	default:
		return "Significant discrepancies found. Important claims not verified in external sources."
	}
}

func fuzzyMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return fuzzy.TokenSortRatio(strings.ToLower(a), strings.ToLower(b)) >= similarityThreshold
}

func (v *Verifier) checkEducation() {
	school := v.claims.School
	if school == "" {
		return
	}

	profileMatch := false
	for _, edu := range v.profile.Education {
		if fuzzyMatch(school, edu.School) {
			profileMatch = true
			break
		}
	}

	resumeMatch := strings.Contains(strings.ToLower(v.resume.RawText), strings.ToLower(school))
	if !resumeMatch {
		for _, line := range v.resume.Education {
			if fuzzyMatch(school, line) {
				resumeMatch = true
				break
			}
		}
	}

	switch {
	case profileMatch && resumeMatch:
		v.matches = append(v.matches, fmt.Sprintf("Education '%s' verified on LinkedIn and Resume.", school))
	case profileMatch:
		v.matches = append(v.matches, fmt.Sprintf("Education '%s' verified on LinkedIn.", school))
	case resumeMatch:
		v.matches = append(v.matches, fmt.Sprintf("Education '%s' verified on Resume.", school))
	default:
		v.discrepancies = append(v.discrepancies,
			fmt.Sprintf("CRITICAL: Education '%s' claimed in form but NOT found in LinkedIn or Resume.", school))
		v.score -= educationDeduction
	}
}

func (v *Verifier) checkExperience() {
	company := v.claims.Company
	if company == "" {
		return
	}
	role := v.claims.Role

	for _, exp := range v.profile.Experience {
		if !fuzzyMatch(company, exp.Company) {
			continue
		}

		if role != "" && fuzzyMatch(role, exp.Title) {
			v.matches = append(v.matches, fmt.Sprintf("Role '%s' at '%s' verified on LinkedIn.", role, company))
		} else if role != "" {
			v.matches = append(v.matches,
				fmt.Sprintf("Company '%s' verified on LinkedIn, but role '%s' mismatch (Found: %s).", company, role, exp.Title))
			v.score -= titleDeduction
		}
		return
	}

	if strings.Contains(strings.ToLower(v.resume.RawText), strings.ToLower(company)) {
		v.matches = append(v.matches, fmt.Sprintf("Startup '%s' found in Resume (but not LinkedIn).", company))
		return
	}

	v.discrepancies = append(v.discrepancies,
		fmt.Sprintf("WARNING: Startup '%s' not found in LinkedIn experience OR Resume.", company))
	v.score -= companyDeduction
}

func (v *Verifier) checkProjects() {
	projects := v.claims.Projects
	if len(projects) < 10 {
		return
	}

	if len(v.resume.RawText) < sparseResumeLen && len(projects) > detailedProjectsLen {
		v.discrepancies = append(v.discrepancies, "Detailed projects in form but Resume is very sparse.")
		v.score -= sparseDeduction
	}
}
