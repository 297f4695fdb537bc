// Package website fetches a candidate's personal site and extracts the
// owner's name plus organization-name candidates for cross-verification.
package website

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
)

const (
	// maxRawText bounds the stored page text so grading contexts stay cheap.
	maxRawText = 3000

	maxCompanies = 20
)

var (
	companyRe = regexp.MustCompile(`\b([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){1,3})\b`)
	spaceRe   = regexp.MustCompile(`\s+`)
	titleCut  = regexp.MustCompile(`[|\-–—].*$`)
)

// stopwords filters capitalized phrases that are navigation, not names.
var stopwords = map[string]struct{}{
	"The": {}, "This": {}, "These": {}, "Those": {}, "What": {}, "Where": {},
	"When": {}, "How": {}, "About": {}, "Contact": {}, "Home": {}, "Blog": {},
	"Work": {}, "My": {}, "Our": {}, "We": {}, "You": {}, "He": {}, "She": {},
	"They": {}, "It": {}, "Its": {}, "And": {}, "For": {}, "With": {},
	"From": {}, "Into": {}, "Over": {}, "Under": {}, "Through": {},
	"Between": {}, "During": {},
}

type Scraper struct {
	HTTPClient *http.Client
	UserAgent  string
}

func New() *Scraper {
	return &Scraper{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) " +
			"Chrome/120.0.0.0 Safari/537.36",
	}
}

// FetchWebsite downloads and summarizes the page. The Error field of the
// snapshot mirrors the soft error for persisted inspection.
func (s *Scraper) FetchWebsite(ctx context.Context, url string) collab.Result[candidate.Website] {
	url = strings.TrimSpace(url)
	if !strings.HasPrefix(url, "http") {
		site := candidate.Website{Error: "invalid URL"}
		return collab.Result[candidate.Website]{Value: site, Err: fmt.Errorf("invalid url: %q", url)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return soft(err.Error())
	}
	req.Header.Set("User-Agent", s.UserAgent)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return soft(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return soft(fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return soft(fmt.Sprintf("parse html: %v", err))
	}

	return collab.Of(Summarize(doc))
}

func soft(msg string) collab.Result[candidate.Website] {
	return collab.Result[candidate.Website]{
		Value: candidate.Website{Error: msg},
		Err:   fmt.Errorf("%s", msg),
	}
}

// Summarize extracts the snapshot from a parsed document.
func Summarize(doc *html.Node) candidate.Website {
	raw := spaceRe.ReplaceAllString(extractText(doc), " ")
	raw = strings.TrimSpace(raw)
	if runes := []rune(raw); len(runes) > maxRawText {
		raw = string(runes[:maxRawText])
	}

	return candidate.Website{
		Name:      extractName(doc),
		Companies: ExtractCompanies(raw),
		RawText:   raw,
	}
}

// skipElements are stripped before text extraction: boilerplate, not content.
var skipElements = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "nav": {}, "footer": {},
}

func extractText(n *html.Node) string {
	if n.Type == html.ElementNode {
		if _, skip := skipElements[n.Data]; skip {
			return ""
		}
	}
	if n.Type == html.TextNode {
		return n.Data + " "
	}

	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(extractText(child))
	}
	return b.String()
}

// extractName tries common signals in order: meta tags, the first h1, the
// page title with trailing taglines removed.
func extractName(doc *html.Node) string {
	for _, key := range []string{"og:title", "author", "twitter:title"} {
		if content := findMeta(doc, key); content != "" && len(content) < 60 {
			return content
		}
	}

	if h1 := findFirst(doc, "h1"); h1 != "" && len(h1) < 60 {
		return h1
	}

	if title := findFirst(doc, "title"); title != "" {
		cleaned := strings.TrimSpace(titleCut.ReplaceAllString(title, ""))
		if cleaned != "" && len(cleaned) < 60 {
			return cleaned
		}
	}

	return ""
}

func findMeta(n *html.Node, key string) string {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var prop, name, content string
		for _, attr := range n.Attr {
			switch attr.Key {
			case "property":
				prop = attr.Val
			case "name":
				name = attr.Val
			case "content":
				content = attr.Val
			}
		}
		if (prop == key || name == key) && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findMeta(child, key); found != "" {
			return found
		}
	}
	return ""
}

func findFirst(n *html.Node, element string) string {
	if n.Type == html.ElementNode && n.Data == element {
		return strings.TrimSpace(spaceRe.ReplaceAllString(extractText(n), " "))
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findFirst(child, element); found != "" {
			return found
		}
	}
	return ""
}

// ExtractCompanies pulls capitalized multi-word phrases that could be
// company or project names, deduplicated in order of appearance.
func ExtractCompanies(text string) []string {
	seen := make(map[string]struct{})
	var results []string

	for _, match := range companyRe.FindAllString(text, -1) {
		words := strings.Fields(match)
		allStop := true
		for _, w := range words {
			if _, ok := stopwords[w]; !ok {
				allStop = false
				break
			}
		}
		if allStop {
			continue
		}

		if _, dup := seen[match]; dup {
			continue
		}
		seen[match] = struct{}{}
		results = append(results, match)

		if len(results) >= maxCompanies {
			break
		}
	}

	return results
}
