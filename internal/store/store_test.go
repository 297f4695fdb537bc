package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"etf-grader/internal/candidate"
)

const freshExport = `firstName,lastName,countryOfOrigin,city,extra_col
Alice,Martin,France,Paris,keepme
Bob,Li,Germany,Berlin,also
`

func writeBatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFreshExport(t *testing.T) {
	table, err := Load(writeBatch(t, freshExport), zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := table.Status(0); got != candidate.StatusPending {
		t.Errorf("Status(0) = %q, want pending default", got)
	}
	if got := table.Row(0)[candidate.ColGradeEducation]; got != "" {
		t.Errorf("managed column default = %q, want empty", got)
	}
	if got := table.Row(1)["extra_col"]; got != "also" {
		t.Errorf("extra_col = %q, want preserved", got)
	}
}

func TestLoadKeepsExistingStatus(t *testing.T) {
	content := "firstName,lastName,status\nAlice,Martin,done\nBob,Li,\n"
	table, err := Load(writeBatch(t, content), zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.Status(0); got != candidate.StatusDone {
		t.Errorf("Status(0) = %q, want done kept", got)
	}
	if got := table.Status(1); got != candidate.StatusPending {
		t.Errorf("Status(1) = %q, want pending default", got)
	}
}

func TestPersistRoundTrip(t *testing.T) {
	path := writeBatch(t, freshExport)
	table, err := Load(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	table.SetStatus(0, candidate.StatusDone)
	table.Set(0, candidate.ColGradeEducation, "95.0")
	table.Set(0, candidate.ColEuropeReason, "passed: current_location (France)")

	if err := table.Persist(); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}

	reloaded, err := Load(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if got := reloaded.Status(0); got != candidate.StatusDone {
		t.Errorf("reloaded Status(0) = %q, want done", got)
	}
	if got := reloaded.Row(0)[candidate.ColGradeEducation]; got != "95.0" {
		t.Errorf("reloaded grade = %q, want 95.0", got)
	}
	if got := reloaded.Row(0)["extra_col"]; got != "keepme" {
		t.Errorf("reloaded extra_col = %q, want preserved", got)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"passed: current_location (France)"`) {
		t.Errorf("comma-bearing cell not quoted:\n%s", raw)
	}
}

func TestRecordDecode(t *testing.T) {
	table, err := Load(writeBatch(t, freshExport), zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	rec, err := table.Record(0)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if rec.Name() != "Alice Martin" {
		t.Errorf("Name() = %q, want %q", rec.Name(), "Alice Martin")
	}
	if rec.Status != candidate.StatusPending {
		t.Errorf("Status = %q, want pending", rec.Status)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/batch.csv", zap.NewNop()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBOMHeader(t *testing.T) {
	table, err := Load(writeBatch(t, "\ufefffirstName,lastName\nAlice,Martin\n"), zap.NewNop())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := table.Row(0)[candidate.FieldFirstName]; got != "Alice" {
		t.Errorf("firstName = %q, want BOM-tolerant header", got)
	}
}
