package education

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect string
	}{
		{"Massachusetts Institute of Technology (MIT)", "massachusetts institute of technology"},
		{"ETH Zürich", "eth z rich"},
		{"  King's  College   London ", "king s college london"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.input); got != tt.expect {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestCleanRank(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect int
		ok     bool
	}{
		{"12", 12, true},
		{"=12", 12, true},
		{"101-150", 101, true},
		{"1201+", 1201, true},
		{"Reporter", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := CleanRank(tt.input)
		if got != tt.expect || ok != tt.ok {
			t.Fatalf("CleanRank(%q) = (%d, %v), want (%d, %v)", tt.input, got, ok, tt.expect, tt.ok)
		}
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestMergeJoinsSourcesOnNormalizedName(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	arwu := writeFile(t, dir, "arwu.csv", `name,rank
Massachusetts Institute of Technology (MIT),3
University of Oxford,7
`)
	qs := writeFile(t, dir, "qs.csv", `Institution Name,2025 Rank,Location Full
Massachusetts Institute of Technology,1,United States
University of Oxford,=3,United Kingdom
`)
	the := writeFile(t, dir, "the.csv", `name,rank
Massachusetts Institute of Technology,2
`)

	regionFor := func(country string) string {
		if country == "United Kingdom" {
			return "Europe"
		}
		return "Outside Europe"
	}

	rows, err := Merge(
		SourceFile{Path: arwu, NameCol: "name", RankCol: "rank"},
		SourceFile{Path: qs, NameCol: "Institution Name", RankCol: "2025 Rank", CountryCol: "Location Full"},
		SourceFile{Path: the, NameCol: "name", RankCol: "rank"},
		regionFor,
	)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	want := []MergedRow{
		{
			Name:        "Massachusetts Institute of Technology",
			QSRank:      1,
			THERank:     2,
			ARWURank:    3,
			MeanRank:    2,
			MedianRank:  2,
			SourceCount: 3,
			Region:      "Outside Europe",
		},
		{
			Name:        "University of Oxford",
			QSRank:      3,
			ARWURank:    7,
			MeanRank:    5,
			MedianRank:  5,
			SourceCount: 2,
			Region:      "Europe",
		},
	}

	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("merged rows mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeRoundTripsThroughWorldTable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	rows := []MergedRow{
		{Name: "ETH Zurich", QSRank: 7, MeanRank: 7, MedianRank: 7, SourceCount: 1, Region: "Europe"},
		{Name: "University of Oxford", THERank: 3, MeanRank: 3, MedianRank: 3, SourceCount: 1, Region: "Europe"},
	}

	out := filepath.Join(dir, "merged.csv")
	if err := WriteMerged(out, rows); err != nil {
		t.Fatalf("write merged: %v", err)
	}

	table, err := LoadWorldTable(out)
	if err != nil {
		t.Fatalf("load merged as world table: %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", table.Len())
	}

	entry, score := table.Match("ETH Zurich")
	if score != 100 || entry.Region != "Europe" || entry.MeanRank != 7 {
		t.Fatalf("unexpected match: %+v score %d", entry, score)
	}
}
