package drive

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"alice_martin.pdf", "bob.txt", "notes.docx", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := New(dir, zap.NewNop()).Scan()
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("Scan() = %v, want pdf and txt only", paths)
	}
	if filepath.Base(paths[0]) != "alice_martin.pdf" || filepath.Base(paths[1]) != "bob.txt" {
		t.Errorf("Scan() order = %v", paths)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := New("/nonexistent/resumes", zap.NewNop()).Scan(); err == nil {
		t.Fatal("expected error for missing folder")
	}
}

func TestMatchFiles(t *testing.T) {
	targets := []Target{
		{First: "Alice", Last: "Martin", Resume: "https://forms.example.com/upload/1"},
		{First: "Bob", Last: "Li", Resume: ""},
		{First: "Carla", Last: "Verhoeven", Resume: "cvs/old_carla.pdf"},
		{First: "Dan", Last: "Verhoeven", Resume: ""},
	}
	paths := []string{
		"cvs/CV_Alice_Martin_2026.pdf",
		"cvs/li_resume.pdf",
		"cvs/verhoeven.pdf",
	}

	got := MatchFiles(paths, targets)

	if got[0] != "cvs/CV_Alice_Martin_2026.pdf" {
		t.Errorf("row 0 = %q, want full-name match", got[0])
	}

	// Two-letter surname must not match on surname alone.
	if _, ok := got[1]; ok {
		t.Errorf("row 1 matched %q, want no match for short surname", got[1])
	}

	// Surname-only match skips rows that already hold a local path.
	if _, ok := got[2]; ok {
		t.Errorf("row 2 matched %q, want existing local resume kept", got[2])
	}
	if got[3] != "cvs/verhoeven.pdf" {
		t.Errorf("row 3 = %q, want surname fallback", got[3])
	}
}
