// Package secrets resolves credentials that must not live in the config file.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

const geminiEnvVar = "GEMINI_API_KEY"

// GeminiAPIKey resolves the Gemini API key. A key file, when configured,
// wins over the GEMINI_API_KEY environment variable. Key files usually end
// with a newline, so the value is trimmed either way.
func GeminiAPIKey(file string) (string, error) {
	file = strings.TrimSpace(file)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading gemini api key from %q: %w", file, err)
		}
		key := strings.TrimSpace(string(data))
		if key == "" {
			return "", fmt.Errorf("gemini api key file %q is empty", file)
		}
		return key, nil
	}

	if key := strings.TrimSpace(os.Getenv(geminiEnvVar)); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("gemini api key is not configured: set ai.gemini.api-key-file or %s", geminiEnvVar)
}
