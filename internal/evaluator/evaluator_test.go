package evaluator

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
	"etf-grader/internal/education"
)

type stubProfiles struct {
	calls   int
	profile candidate.Profile
}

func (s *stubProfiles) FetchProfile(_ context.Context, _ string) collab.Result[candidate.Profile] {
	s.calls++
	return collab.Of(s.profile)
}

type stubCode struct {
	calls int
	code  candidate.CodeProfile
}

func (s *stubCode) FetchCodeProfile(_ context.Context, _ string) collab.Result[candidate.CodeProfile] {
	s.calls++
	return collab.Of(s.code)
}

type stubWebsites struct {
	calls int
	site  candidate.Website
}

func (s *stubWebsites) FetchWebsite(_ context.Context, _ string) collab.Result[candidate.Website] {
	s.calls++
	return collab.Of(s.site)
}

type stubResumes struct {
	calls  int
	resume candidate.Resume
}

func (s *stubResumes) LoadResume(_ context.Context, _ string) collab.Result[candidate.Resume] {
	s.calls++
	return collab.Of(s.resume)
}

// recordingScorer returns a fixed score and keeps every prompt it saw.
type recordingScorer struct {
	response string
	prompts  []string
}

func (s *recordingScorer) GenerateScored(_ context.Context, _, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, nil
}

func testEducationGrader(t *testing.T) *education.Grader {
	t.Helper()
	world, err := education.ReadWorldTable(strings.NewReader(
		"University Name,Mean Rank,Region\nETH Zurich,12,Europe\n"))
	if err != nil {
		t.Fatal(err)
	}
	domestic, err := education.ReadDomesticTable(strings.NewReader(
		"Name,Notation\nCentraleSupelec,AA\n"))
	if err != nil {
		t.Fatal(err)
	}
	return education.NewGrader(domestic, world)
}

func testRecord() *candidate.Record {
	return &candidate.Record{
		FirstName:       "Alice",
		LastName:        "Martin",
		Country:         "Switzerland",
		SchoolPrimary:   "ETH Zurich",
		GithubURL:       "https://github.com/alicemartin",
		LinkedinURL:     "https://linkedin.com/in/alice-martin",
		PersonalWebsite: "https://alicemartin.dev",
		CompanyName:     "Heliotrope Labs",
		CompanyRole:     "Founder",
		StartupDesc:     "Thermal batteries for industrial heat.",
		About:           "We raised 2.1 million from deeptech funds.",
		Achievement:     "Won the junction hackathon.",
		Projects:        "heliotrope.dev; thermal-sim",
	}
}

func newTestEvaluator(t *testing.T, scorer *recordingScorer) (*Evaluator, *stubProfiles, *stubCode) {
	t.Helper()
	profiles := &stubProfiles{profile: candidate.Profile{Location: "Zurich, Switzerland"}}
	code := &stubCode{code: candidate.CodeProfile{
		Username: "alicemartin",
		Bio:      "Founder at Heliotrope Labs",
		Repos: []candidate.Repo{
			{Name: "thermal-sim", Description: "Heat storage simulator", Stars: 420, Language: "Go"},
		},
	}}
	cache := NewSnapshotCache(profiles, code,
		&stubWebsites{site: candidate.Website{RawText: "Heliotrope Labs builds thermal batteries."}},
		&stubResumes{resume: candidate.Resume{
			Skills:     []string{"Go", "Thermodynamics"},
			Experience: []string{"Founder at Heliotrope Labs"},
		}})
	return New(testEducationGrader(t), scorer, cache), profiles, code
}

func TestEvaluate(t *testing.T) {
	scorer := &recordingScorer{response: "85"}
	eval, _, _ := newTestEvaluator(t, scorer)

	report, err := eval.Evaluate(context.Background(), testRecord(), zap.NewNop())
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	// ETH Zurich sits at world rank 12, inside the steep decay band.
	if got := report.Grades[candidate.CriterionEducation]; got != 99.75 {
		t.Errorf("education grade = %v, want 99.75", got)
	}

	for _, criterion := range candidate.SubjectiveCriteria {
		if got := report.Grades[criterion]; got != 85 {
			t.Errorf("grade[%s] = %v, want 85", criterion, got)
		}
	}

	if report.Verification == nil {
		t.Fatal("missing verification report")
	}
}

func TestEvaluateContextAssembly(t *testing.T) {
	scorer := &recordingScorer{response: "70"}
	eval, _, _ := newTestEvaluator(t, scorer)

	if _, err := eval.Evaluate(context.Background(), testRecord(), zap.NewNop()); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	all := strings.Join(scorer.prompts, "\n===\n")
	for _, want := range []string{
		"thermal-sim: Heat storage simulator (Stars: 420",
		"Skills: Go, Thermodynamics",
		"IMPORTANT: APPLICANT HAS STATED THEY RAISED > 1 MILLION.",
		"TRUST SCORE:",
		"Startup Name: Heliotrope Labs",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("no prompt contains %q", want)
		}
	}
}

func TestSnapshotCacheMemoizes(t *testing.T) {
	scorer := &recordingScorer{response: "60"}
	eval, profiles, code := newTestEvaluator(t, scorer)

	rec := testRecord()
	for range 3 {
		if _, err := eval.Evaluate(context.Background(), rec, zap.NewNop()); err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
	}

	if profiles.calls != 1 {
		t.Errorf("profile fetches = %d, want 1", profiles.calls)
	}
	if code.calls != 1 {
		t.Errorf("code profile fetches = %d, want 1", code.calls)
	}
}

func TestEvaluateCancelled(t *testing.T) {
	scorer := &recordingScorer{response: "85"}
	eval, _, _ := newTestEvaluator(t, scorer)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := eval.Evaluate(ctx, testRecord(), zap.NewNop()); err == nil {
		t.Fatal("expected context cancellation error")
	}
}

func TestSummarizeResumeCaps(t *testing.T) {
	resume := candidate.Resume{}
	for range 30 {
		resume.Skills = append(resume.Skills, "Go")
		resume.Experience = append(resume.Experience, "Engineer somewhere")
	}

	summary := summarizeResume(resume)
	if got := strings.Count(summary, "- "); got != maxSummaryExperience {
		t.Errorf("experience lines = %d, want %d", got, maxSummaryExperience)
	}
	if got := strings.Count(summary, "Go"); got != maxSummarySkills {
		t.Errorf("skills listed = %d, want %d", got, maxSummarySkills)
	}
}
