// Package linkedin fetches a candidate's network profile through a real
// browser. It prefers attaching to an already-authenticated Chrome exposed on
// a debugging port; without one it falls back to a fresh headless instance,
// which only sees the public view of a profile.
//
// Extraction here is intentionally shallow: the page text is sectioned into
// education and experience entries on a best-effort basis, and every failure
// degrades to an empty snapshot.
package linkedin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
)

const (
	pageSettle   = 3 * time.Second
	fetchTimeout = 45 * time.Second
)

type Client struct {
	logger    *zap.Logger
	debugPort int

	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// New builds the client. debugPort of 0 means no running browser to attach to.
func New(logger *zap.Logger, debugPort int) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{logger: logger, debugPort: debugPort}
}

// Close releases the browser allocator if one was started.
func (c *Client) Close() {
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
}

func (c *Client) allocator(ctx context.Context) context.Context {
	if c.allocCtx != nil {
		return c.allocCtx
	}

	if c.debugPort > 0 {
		url := fmt.Sprintf("http://127.0.0.1:%d", c.debugPort)
		c.logger.Debug("attaching to running browser", zap.String("url", url))
		c.allocCtx, c.allocCancel = chromedp.NewRemoteAllocator(ctx, url)
		return c.allocCtx
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(ctx, opts...)
	return c.allocCtx
}

// FetchProfile navigates to the profile URL and extracts a shallow snapshot.
func (c *Client) FetchProfile(ctx context.Context, profileURL string) collab.Result[candidate.Profile] {
	profileURL = strings.TrimSpace(profileURL)
	if !strings.Contains(profileURL, "linkedin.com") {
		return collab.Soft[candidate.Profile](fmt.Errorf("not a linkedin profile url: %q", profileURL))
	}

	browserCtx, cancel := chromedp.NewContext(c.allocator(ctx))
	defer cancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, fetchTimeout)
	defer timeoutCancel()

	var bodyText string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(profileURL),
		chromedp.Sleep(pageSettle),
		chromedp.Text("body", &bodyText, chromedp.ByQuery),
	)
	if err != nil {
		return collab.Soft[candidate.Profile](fmt.Errorf("fetch profile page: %w", err))
	}

	return collab.Of(ParseProfileText(bodyText))
}

// ParseProfileText sections raw page text into a profile snapshot. The page
// layout varies between logged-in and public views, so this relies only on
// the section headings both render.
func ParseProfileText(text string) candidate.Profile {
	profile := candidate.Profile{}

	lines := splitLines(text)
	sections := sectionize(lines)

	if loc, ok := sections["location"]; ok && len(loc) > 0 {
		profile.Location = loc[0]
	}

	for _, line := range sections["education"] {
		entity := candidate.NewEntity(candidate.KindEducation)
		entity.Education.School = line
		profile.Education = append(profile.Education, *entity.Education)
	}

	for _, line := range sections["experience"] {
		entity := candidate.NewEntity(candidate.KindExperience)
		fillExperience(entity.Experience, line)
		profile.Experience = append(profile.Experience, *entity.Experience)
	}

	for _, line := range sections["projects"] {
		entity := candidate.NewEntity(candidate.KindProject)
		entity.Project.Name = line
		profile.Projects = append(profile.Projects, *entity.Project)
	}

	profile.Skills = append(profile.Skills, sections["skills"]...)

	return profile
}

// fillExperience splits an experience line of the form
// "Title at Company · Location" into its parts, tolerating missing pieces.
func fillExperience(exp *candidate.ExperienceEntry, line string) {
	rest := line
	if idx := strings.LastIndex(rest, "·"); idx >= 0 {
		exp.Location = strings.TrimSpace(rest[idx+len("·"):])
		rest = strings.TrimSpace(rest[:idx])
	}

	if idx := strings.Index(rest, " at "); idx >= 0 {
		exp.Title = strings.TrimSpace(rest[:idx])
		exp.Company = strings.TrimSpace(rest[idx+len(" at "):])
		return
	}

	exp.Company = strings.TrimSpace(rest)
}

var sectionHeadings = map[string]string{
	"education":           "education",
	"experience":          "experience",
	"projects":            "projects",
	"skills":              "skills",
	"licenses":            "licenses",
	"about":               "about",
	"activity":            "activity",
	"interests":           "interests",
	"recommendations":     "recommendations",
	"people also viewed":  "noise",
	"promoted":            "noise",
	"contact information": "noise",
}

func sectionize(lines []string) map[string][]string {
	sections := make(map[string][]string)
	current := ""

	for i, line := range lines {
		lower := strings.ToLower(line)
		if name, ok := sectionHeadings[lower]; ok {
			current = name
			continue
		}

		// The line right under the name block is usually "City, Country".
		if i > 0 && i < 8 && current == "" && strings.Contains(line, ",") && len(line) < 60 {
			sections["location"] = append(sections["location"], line)
			continue
		}

		if current == "" || current == "noise" {
			continue
		}
		sections[current] = append(sections[current], line)
	}

	return sections
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
