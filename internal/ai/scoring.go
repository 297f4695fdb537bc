package ai

import "context"

// Scorer is the narrow contract of the scoring service: a system instruction
// and a user prompt in, free text out. Responses are nondeterministic and may
// not contain a usable score at all; callers own the parsing.
type Scorer interface {
	GenerateScored(ctx context.Context, systemPrompt, prompt string) (string, error)
}
