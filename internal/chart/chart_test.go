package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"etf-grader/internal/candidate"
)

func TestFilePath(t *testing.T) {
	got := FilePath("output", "Alice_Martin")
	want := filepath.Join("output", "grade_Alice_Martin.png")
	if got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestRender(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "grade_Alice_Martin.png")

	grades := map[candidate.Criterion]float64{
		candidate.CriterionEducation: 95,
		candidate.CriterionCommunity: 80,
		candidate.CriterionHack:      60,
		candidate.CriterionResearch:  40,
		candidate.CriterionStartup:   70,
	}

	if err := Render("Alice Martin", grades, path); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Errorf("chart file is not a PNG (starts with % x)", data[:4])
	}
}
