package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGeminiAPIKeyFromFile(t *testing.T) {
	keyFile := filepath.Join(t.TempDir(), "gemini.key")
	if err := os.WriteFile(keyFile, []byte("abc123\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	key, err := GeminiAPIKey(keyFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "abc123" {
		t.Errorf("key = %q, want trimmed file contents", key)
	}
}

func TestGeminiAPIKeyFilePrecedence(t *testing.T) {
	t.Setenv(geminiEnvVar, "from-env")

	keyFile := filepath.Join(t.TempDir(), "gemini.key")
	if err := os.WriteFile(keyFile, []byte("from-file"), 0o600); err != nil {
		t.Fatal(err)
	}

	key, err := GeminiAPIKey(keyFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "from-file" {
		t.Errorf("key = %q, want the file to win over the env var", key)
	}
}

func TestGeminiAPIKeyFromEnv(t *testing.T) {
	t.Setenv(geminiEnvVar, " env-key\n")

	key, err := GeminiAPIKey("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "env-key" {
		t.Errorf("key = %q, want trimmed env value", key)
	}
}

func TestGeminiAPIKeyErrors(t *testing.T) {
	t.Setenv(geminiEnvVar, "")

	if _, err := GeminiAPIKey(""); err == nil {
		t.Error("expected error when nothing is configured")
	}

	if _, err := GeminiAPIKey(filepath.Join(t.TempDir(), "missing.key")); err == nil {
		t.Error("expected error for a missing key file")
	}

	emptyFile := filepath.Join(t.TempDir(), "empty.key")
	if err := os.WriteFile(emptyFile, []byte("\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := GeminiAPIKey(emptyFile)
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Errorf("err = %v, want empty-file error", err)
	}
}
