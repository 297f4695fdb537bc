package eligibility

import (
	"strings"
	"testing"

	"etf-grader/internal/candidate"
	"etf-grader/internal/education"
)

func testWorldTable(t *testing.T) *education.WorldTable {
	t.Helper()

	table, err := education.ReadWorldTable(strings.NewReader(`University Name,Mean Rank,Region
École Polytechnique,35,Europe
Stanford University,4,Outside Europe
`))
	if err != nil {
		t.Fatalf("parse world table: %v", err)
	}
	return table
}

func TestCheckLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location string
		expect   bool
	}{
		{"country name", "France", true},
		{"country in list", "San Francisco, CA, USA", false},
		{"city name", "Paris", true},
		{"city with country", "Berlin, Germany", true},
		{"semicolon separator", "remote; London", true},
		{"case insensitive", "fRaNcE", true},
		{"country substring soft match", "somewhere in France really", true},
		{"empty", "", false},
		{"non-european", "Tokyo, Japan", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := CheckLocation(tt.location); got != tt.expect {
				t.Fatalf("CheckLocation(%q) = %v, want %v", tt.location, got, tt.expect)
			}
		})
	}
}

func TestIsEligibleSignalPriority(t *testing.T) {
	t.Parallel()

	filter := NewFilter(testWorldTable(t))

	// Signal 1: current location wins and short-circuits.
	rec := &candidate.Record{CurrentLocation: "Paris, France", SchoolPrimary: "Stanford University"}
	decision := filter.IsEligible(rec, candidate.Profile{})
	if !decision.Eligible || decision.Reason != "passed: current_location (Paris, France)" {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	// Signal 1 fallback: profile location when the form is empty.
	rec = &candidate.Record{}
	decision = filter.IsEligible(rec, candidate.Profile{Location: "Lisbon, Portugal"})
	if !decision.Eligible || !strings.Contains(decision.Reason, "current_location") {
		t.Fatalf("expected profile-location pass, got %+v", decision)
	}

	// Signal 2: university region.
	rec = &candidate.Record{CurrentLocation: "Tokyo, Japan", SchoolPrimary: "École Polytechnique"}
	decision = filter.IsEligible(rec, candidate.Profile{})
	if !decision.Eligible || decision.Reason != "passed: university (École Polytechnique)" {
		t.Fatalf("unexpected decision: %+v", decision)
	}

	// Non-European university region does not pass.
	rec = &candidate.Record{CurrentLocation: "Tokyo, Japan", SchoolPrimary: "Stanford University"}
	decision = filter.IsEligible(rec, candidate.Profile{})
	if decision.Eligible {
		t.Fatalf("Stanford should not pass the university signal: %+v", decision)
	}

	// Signal 3: employer location.
	profile := candidate.Profile{Experience: []candidate.ExperienceEntry{
		{Company: "Acme", Location: "Singapore"},
		{Company: "Scaleway", Location: "Paris, France"},
	}}
	rec = &candidate.Record{CurrentLocation: "Tokyo, Japan"}
	decision = filter.IsEligible(rec, profile)
	if !decision.Eligible || decision.Reason != "passed: employer_location (Paris, France)" {
		t.Fatalf("unexpected decision: %+v", decision)
	}
}

func TestIsEligibleAllSignalsFail(t *testing.T) {
	t.Parallel()

	filter := NewFilter(testWorldTable(t))

	rec := &candidate.Record{
		CurrentLocation: "Tokyo, Japan",
		SchoolPrimary:   "Stanford University",
	}
	profile := candidate.Profile{Experience: []candidate.ExperienceEntry{
		{Company: "Acme", Location: "New York, USA"},
	}}

	decision := filter.IsEligible(rec, profile)
	if decision.Eligible {
		t.Fatalf("expected rejection, got %+v", decision)
	}
	if decision.Reason != "rejected: all criteria non-European" {
		t.Fatalf("unexpected rejection reason: %q", decision.Reason)
	}
}

func TestRegionForCountry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		country string
		expect  string
	}{
		{"France", "Europe"},
		{"UK", "Europe"},
		{"USA", "Outside Europe"},
		{"Japan", "Outside Europe"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		if got := RegionForCountry(tt.country); got != tt.expect {
			t.Fatalf("RegionForCountry(%q) = %q, want %q", tt.country, got, tt.expect)
		}
	}
}
