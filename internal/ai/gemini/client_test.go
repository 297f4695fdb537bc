package gemini

import (
	"context"
	"testing"
)

func TestNewGeneratorRequiresAPIKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for blank api key")
	}
}

func TestGenerateContentRejectsUninitialized(t *testing.T) {
	var g *Generator
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for nil generator")
	}

	g = &Generator{}
	if _, err := g.GenerateContent(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for generator without client")
	}
}

func TestGenerateScoredRejectsUninitialized(t *testing.T) {
	g := &Generator{modelName: defaultModel}
	if _, err := g.GenerateScored(context.Background(), "system", "prompt"); err == nil {
		t.Fatal("expected error for generator without client")
	}
}

func TestModel(t *testing.T) {
	var g *Generator
	if got := g.Model(); got != "" {
		t.Errorf("nil generator Model() = %q, want empty", got)
	}

	g = &Generator{modelName: defaultModel}
	if got := g.Model(); got != defaultModel {
		t.Errorf("Model() = %q, want %q", got, defaultModel)
	}
}
