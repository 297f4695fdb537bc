// Package githubprofile fetches a candidate's code-hosting profile through
// the GitHub REST API. An optional token raises the rate limit; without one
// the client still works inside the anonymous quota.
package githubprofile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
)

const (
	apiURL    = "https://api.github.com"
	userAgent = "etf-grader"

	// maxRepos bounds how many repositories feed the grading context;
	// repoPage is how many are fetched before ranking by stars.
	maxRepos = 5
	repoPage = 100
)

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	APIURL     string
}

func New(logger *zap.Logger, token string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		token:  token,
		logger: logger,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type userResponse struct {
	Login   string `json:"login"`
	Bio     string `json:"bio"`
	Company string `json:"company"`
	Blog    string `json:"blog"`
}

type repoResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// FetchCodeProfile resolves the username from a profile URL and loads the
// user plus their most-starred repositories. All failures are soft.
func (c *Client) FetchCodeProfile(ctx context.Context, profileURL string) collab.Result[candidate.CodeProfile] {
	username, ok := Username(profileURL)
	if !ok {
		return collab.Soft[candidate.CodeProfile](fmt.Errorf("not a github profile url: %q", profileURL))
	}

	var user userResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/users/%s", c.APIURL, url.PathEscape(username)), &user); err != nil {
		return collab.Soft[candidate.CodeProfile](fmt.Errorf("fetch user %s: %w", username, err))
	}

	profile := candidate.CodeProfile{
		Username: user.Login,
		Bio:      user.Bio,
		Company:  user.Company,
		Blog:     user.Blog,
	}

	// The repos endpoint cannot order by stars, so fetch a recent-activity
	// page and rank by star count here.
	var repos []repoResponse
	reposURL := fmt.Sprintf("%s/users/%s/repos?sort=pushed&per_page=%d", c.APIURL, url.PathEscape(username), repoPage)
	if err := c.getJSON(ctx, reposURL, &repos); err != nil {
		// Profile without repos is still usable context.
		c.logger.Debug("fetching repositories failed", zap.String("username", username), zap.Error(err))
		return collab.Of(profile)
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].Stars > repos[j].Stars
	})

	for i, repo := range repos {
		if i >= maxRepos {
			break
		}
		profile.Repos = append(profile.Repos, candidate.Repo{
			Name:        repo.Name,
			Description: repo.Description,
			Stars:       repo.Stars,
			Language:    repo.Language,
		})
	}

	return collab.Of(profile)
}

// Username extracts the account name from a github.com profile URL.
func Username(profileURL string) (string, bool) {
	profileURL = strings.TrimSpace(profileURL)
	if !strings.Contains(profileURL, "github.com") {
		return "", false
	}

	trimmed := strings.TrimRight(profileURL, "/")
	parts := strings.Split(trimmed, "/")
	username := parts[len(parts)-1]
	if username == "" || strings.Contains(username, "github.com") {
		return "", false
	}
	// Strip query junk from copy-pasted urls.
	if idx := strings.IndexAny(username, "?#"); idx >= 0 {
		username = username[:idx]
	}

	return username, username != ""
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
