// Package eligibility decides whether a candidate is geographically in scope.
// Three independent signals are checked in fixed priority order with OR
// semantics: declared current location, university region, employer location.
package eligibility

import (
	"fmt"
	"strings"

	"etf-grader/internal/candidate"
	"etf-grader/internal/education"
)

// Decision is the outcome of the eligibility gate. Reason always names the
// signal that passed, or that all three failed.
type Decision struct {
	Eligible bool
	Reason   string
}

// Filter gates candidates on the three European signals. The world table
// supplies the university-region lookup.
type Filter struct {
	world *education.WorldTable
}

func NewFilter(world *education.WorldTable) *Filter {
	return &Filter{world: world}
}

// IsEligible evaluates the three signals in priority order, first match wins.
func (f *Filter) IsEligible(rec *candidate.Record, profile candidate.Profile) Decision {
	// 1. Declared current location, falling back to the profile location.
	location := firstNonEmpty(rec.CurrentLocation, rec.City, profile.Location)
	if location != "" && CheckLocation(location) {
		return Decision{Eligible: true, Reason: fmt.Sprintf("passed: current_location (%s)", location)}
	}

	// 2. University region from the world table.
	if school := rec.School(); school != "" && f.checkUniversity(school) {
		return Decision{Eligible: true, Reason: fmt.Sprintf("passed: university (%s)", school)}
	}

	// 3. Any employer location from the profile experience entries.
	for _, exp := range profile.Experience {
		if exp.Location != "" && CheckLocation(exp.Location) {
			return Decision{Eligible: true, Reason: fmt.Sprintf("passed: employer_location (%s)", exp.Location)}
		}
	}

	return Decision{Eligible: false, Reason: "rejected: all criteria non-European"}
}

// CheckLocation reports whether the location string indicates Europe. Tokens
// split on comma/semicolon match on exact country name, known city, or a
// country name appearing as a substring of the token. The substring rule is a
// deliberate soft match and can over-match embedded country names.
func CheckLocation(location string) bool {
	location = strings.ReplaceAll(location, ";", ",")

	for _, part := range strings.Split(location, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}

		for _, country := range EuropeanCountries {
			if token == strings.ToLower(country) {
				return true
			}
		}

		if _, ok := cityToCountry[token]; ok {
			return true
		}

		for _, country := range EuropeanCountries {
			if strings.Contains(token, strings.ToLower(country)) {
				return true
			}
		}
	}

	return false
}

func (f *Filter) checkUniversity(school string) bool {
	if f.world == nil {
		return false
	}

	entry, score := f.world.Match(school)
	if score <= education.ConfidentMatch {
		return false
	}

	return entry.Region == "Europe"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
