// Package resume structures an uploaded resume from its extracted plain text.
package resume

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
)

var (
	githubRe   = regexp.MustCompile(`(?i)github\.com/([a-zA-Z0-9-]+)`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/([a-zA-Z0-9-]+)`)
	websiteRe  = regexp.MustCompile(`(?i)https?://(?:www\.)?([a-zA-Z0-9.-]+\.[a-z]{2,})`)
)

// sectionHeaders maps each captured section to the keywords that open it.
var sectionHeaders = map[string][]string{
	"skills":     {"skills", "technologies", "competencies"},
	"experience": {"experience", "employment", "work history"},
	"education":  {"education", "academic"},
}

// anyHeader lists keywords that terminate a running section.
var anyHeader = []string{
	"education", "experience", "skills", "projects",
	"languages", "volunteering", "certifications",
}

// Parser loads resume text previously extracted alongside the uploads.
type Parser struct{}

func New() *Parser { return &Parser{} }

// LoadResume reads a local text file and structures it. Remote URLs and
// missing files degrade to an empty resume with a soft error: the form's
// resume column sometimes holds the raw upload link instead of a synced path.
func (p *Parser) LoadResume(_ context.Context, path string) collab.Result[candidate.Resume] {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasPrefix(path, "http") {
		return collab.Soft[candidate.Resume](fmt.Errorf("no local resume file: %q", path))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return collab.Soft[candidate.Resume](fmt.Errorf("read resume: %w", err))
	}

	return collab.Of(Parse(string(raw)))
}

// Parse structures raw resume text with keyword heuristics.
func Parse(text string) candidate.Resume {
	lines := strings.Split(text, "\n")

	var name string
	for _, line := range lines {
		if clean := strings.TrimSpace(line); clean != "" {
			name = clean
			break
		}
	}

	return candidate.Resume{
		Name:       name,
		Skills:     extractSection(lines, sectionHeaders["skills"]),
		Experience: extractSection(lines, sectionHeaders["experience"]),
		Education:  extractSection(lines, sectionHeaders["education"]),
		Links:      extractLinks(text),
		RawText:    text,
	}
}

// extractSection captures the stripped lines between a matching header and
// the next unrelated header. Header detection is loose on purpose: resumes
// vary wildly and a short line containing the keyword is signal enough.
func extractSection(lines, keywords []string) []string {
	owned := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		owned[k] = struct{}{}
	}

	var captured []string
	inSection := false

	for _, line := range lines {
		clean := strings.ToLower(strings.TrimSpace(line))
		isShort := len(clean) < 30

		if isShort && containsAny(clean, keywords) {
			inSection = true
			continue
		}

		if inSection && isShort {
			for _, h := range anyHeader {
				if _, ours := owned[h]; !ours && strings.Contains(clean, h) {
					inSection = false
					break
				}
			}
		}

		if inSection && strings.TrimSpace(line) != "" {
			captured = append(captured, strings.TrimSpace(line))
		}
	}

	return captured
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func extractLinks(text string) map[string]string {
	links := make(map[string]string)

	if m := githubRe.FindStringSubmatch(text); m != nil {
		links["github"] = m[1]
	}
	if m := linkedinRe.FindStringSubmatch(text); m != nil {
		links["linkedin"] = m[1]
	}
	for _, m := range websiteRe.FindAllStringSubmatch(text, -1) {
		host := strings.ToLower(m[1])
		if strings.Contains(host, "github.com") || strings.Contains(host, "linkedin.com") {
			continue
		}
		links["website"] = m[0]
		break
	}

	return links
}
