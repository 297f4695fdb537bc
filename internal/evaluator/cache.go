package evaluator

import (
	"context"
	"strings"

	"etf-grader/internal/candidate"
	"etf-grader/internal/collab"
)

// SnapshotCache memoizes collaborator fetches for the lifetime of one batch
// run. Several candidates can point at the same profile URL or resume file
// and a fetch is expensive, so each key is resolved exactly once, failures
// included.
type SnapshotCache struct {
	profiles collab.ProfileFetcher
	code     collab.CodeProfileFetcher
	websites collab.WebsiteFetcher
	resumes  collab.ResumeLoader

	profileHits map[string]collab.Result[candidate.Profile]
	codeHits    map[string]collab.Result[candidate.CodeProfile]
	websiteHits map[string]collab.Result[candidate.Website]
	resumeHits  map[string]collab.Result[candidate.Resume]
}

func NewSnapshotCache(
	profiles collab.ProfileFetcher,
	code collab.CodeProfileFetcher,
	websites collab.WebsiteFetcher,
	resumes collab.ResumeLoader,
) *SnapshotCache {
	return &SnapshotCache{
		profiles: profiles,
		code:     code,
		websites: websites,
		resumes:  resumes,

		profileHits: make(map[string]collab.Result[candidate.Profile]),
		codeHits:    make(map[string]collab.Result[candidate.CodeProfile]),
		websiteHits: make(map[string]collab.Result[candidate.Website]),
		resumeHits:  make(map[string]collab.Result[candidate.Resume]),
	}
}

func cacheKey(s string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(s), "/"))
}

// Profile fetches or replays the network profile for url.
func (c *SnapshotCache) Profile(ctx context.Context, url string) collab.Result[candidate.Profile] {
	key := cacheKey(url)
	if hit, ok := c.profileHits[key]; ok {
		return hit
	}
	res := c.profiles.FetchProfile(ctx, url)
	c.profileHits[key] = res
	return res
}

// CodeProfile fetches or replays the code-hosting profile for url.
func (c *SnapshotCache) CodeProfile(ctx context.Context, url string) collab.Result[candidate.CodeProfile] {
	key := cacheKey(url)
	if hit, ok := c.codeHits[key]; ok {
		return hit
	}
	res := c.code.FetchCodeProfile(ctx, url)
	c.codeHits[key] = res
	return res
}

// Website fetches or replays the personal-website summary for url.
func (c *SnapshotCache) Website(ctx context.Context, url string) collab.Result[candidate.Website] {
	key := cacheKey(url)
	if hit, ok := c.websiteHits[key]; ok {
		return hit
	}
	res := c.websites.FetchWebsite(ctx, url)
	c.websiteHits[key] = res
	return res
}

// Resume loads or replays the resume at path.
func (c *SnapshotCache) Resume(ctx context.Context, path string) collab.Result[candidate.Resume] {
	key := cacheKey(path)
	if hit, ok := c.resumeHits[key]; ok {
		return hit
	}
	res := c.resumes.LoadResume(ctx, path)
	c.resumeHits[key] = res
	return res
}
