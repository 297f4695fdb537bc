package resume

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleResume = `Alice Martin
Paris, France

Skills
Go, Python, Distributed Systems
Kubernetes

Work Experience
Founder at Heliotrope Labs (2022 - Present)
Software Engineer at Datadog (2019 - 2022)

Education
MSc Computer Science, Sorbonne Universite

Links
https://github.com/alicemartin
https://linkedin.com/in/alice-martin
https://alicemartin.dev
`

func TestParse(t *testing.T) {
	r := Parse(sampleResume)

	if r.Name != "Alice Martin" {
		t.Errorf("Name = %q, want %q", r.Name, "Alice Martin")
	}

	if len(r.Skills) != 2 || r.Skills[0] != "Go, Python, Distributed Systems" {
		t.Errorf("Skills = %v", r.Skills)
	}

	if len(r.Experience) != 2 {
		t.Fatalf("Experience = %v, want 2 entries", r.Experience)
	}
	if r.Experience[0] != "Founder at Heliotrope Labs (2022 - Present)" {
		t.Errorf("Experience[0] = %q", r.Experience[0])
	}

	if len(r.Education) == 0 || r.Education[0] != "MSc Computer Science, Sorbonne Universite" {
		t.Errorf("Education = %v", r.Education)
	}

	if r.Links["github"] != "alicemartin" {
		t.Errorf("github link = %q, want %q", r.Links["github"], "alicemartin")
	}
	if r.Links["linkedin"] != "alice-martin" {
		t.Errorf("linkedin link = %q, want %q", r.Links["linkedin"], "alice-martin")
	}
	if r.Links["website"] != "https://alicemartin.dev" {
		t.Errorf("website link = %q, want %q", r.Links["website"], "https://alicemartin.dev")
	}
}

func TestParseEmptyText(t *testing.T) {
	r := Parse("")
	if r.Name != "" || len(r.Skills) != 0 || len(r.Experience) != 0 {
		t.Errorf("Parse(\"\") = %+v, want zero sections", r)
	}
}

func TestLoadResume(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alice_martin.txt")
	if err := os.WriteFile(path, []byte(sampleResume), 0o644); err != nil {
		t.Fatal(err)
	}

	res := New().LoadResume(context.Background(), path)
	if !res.Ok() {
		t.Fatalf("LoadResume() error = %v", res.Err)
	}
	if res.Value.Name != "Alice Martin" {
		t.Errorf("Name = %q, want %q", res.Value.Name, "Alice Martin")
	}
}

func TestLoadResumeDegrades(t *testing.T) {
	for _, path := range []string{"", "https://forms.example.com/upload/abc", "/nonexistent/resume.txt"} {
		res := New().LoadResume(context.Background(), path)
		if res.Ok() {
			t.Errorf("LoadResume(%q) expected soft failure", path)
		}
		if res.Value.RawText != "" {
			t.Errorf("LoadResume(%q) value not zero: %+v", path, res.Value)
		}
	}
}
