// Package consensus grades subjective criteria by sampling the scoring
// service several times and averaging the best responses. The best-of-5
// top-3-mean policy damps single noisy generations without letting one high
// outlier dominate.
package consensus

import (
	"context"
	"regexp"
	"sort"
	"strconv"

	_ "embed"

	"go.uber.org/zap"

	"etf-grader/internal/ai"
	"etf-grader/internal/candidate"
)

//go:embed system_prompt.md
var systemPrompt string

const (
	samples = 5
	topN    = 3
)

var scoreRe = regexp.MustCompile(`\b([0-9]{1,3})\b`)

// Grader scores one criterion on [0,100] via repeated scoring-service calls.
type Grader struct {
	scorer ai.Scorer
	logger *zap.Logger
}

func NewGrader(scorer ai.Scorer, logger *zap.Logger) *Grader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grader{scorer: scorer, logger: logger}
}

// Grade issues the sample requests sequentially and returns the mean of the
// top surviving scores. Malformed or out-of-range responses are dropped
// silently; only total exhaustion yields 0.
func (g *Grader) Grade(ctx context.Context, criterion candidate.Criterion, promptContext string) float64 {
	prompt := buildPrompt(criterion, promptContext)

	var scores []int
	for i := 0; i < samples; i++ {
		response, err := g.scorer.GenerateScored(ctx, systemPrompt, prompt)
		if err != nil {
			g.logger.Debug("scoring sample failed",
				zap.String("criterion", string(criterion)),
				zap.Int("sample", i),
				zap.Error(err),
			)
			continue
		}

		if score, ok := ExtractScore(response); ok {
			scores = append(scores, score)
		} else {
			g.logger.Debug("scoring sample had no usable integer",
				zap.String("criterion", string(criterion)),
				zap.Int("sample", i),
			)
		}
	}

	if len(scores) == 0 {
		return 0
	}

	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	if len(scores) > topN {
		scores = scores[:topN]
	}

	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

// ExtractScore pulls the last 1-3 digit integer token from a response and
// validates it against [0,100].
func ExtractScore(response string) (int, bool) {
	matches := scoreRe.FindAllStringSubmatch(response, -1)
	if len(matches) == 0 {
		return 0, false
	}

	raw := matches[len(matches)-1][1]
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 || score > 100 {
		return 0, false
	}

	return score, true
}
