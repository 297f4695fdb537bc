// Package evaluator turns one candidate row plus its external snapshots into
// a full grade report.
package evaluator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"etf-grader/internal/ai"
	"etf-grader/internal/candidate"
	"etf-grader/internal/consensus"
	"etf-grader/internal/education"
	"etf-grader/internal/logger"
	"etf-grader/internal/verify"
)

const (
	maxContextRepos      = 5
	maxWebsiteContext    = 400
	maxSummarySkills     = 20
	maxSummaryExperience = 5
)

type Evaluator struct {
	education *education.Grader
	scorer    ai.Scorer
	cache     *SnapshotCache
}

func New(grader *education.Grader, scorer ai.Scorer, cache *SnapshotCache) *Evaluator {
	return &Evaluator{education: grader, scorer: scorer, cache: cache}
}

// Evaluate grades the candidate on all five criteria and cross-verifies the
// form claims. Missing collaborator data degrades the contexts, it never
// aborts the evaluation; only context cancellation returns an error.
func (e *Evaluator) Evaluate(ctx context.Context, rec *candidate.Record, log *zap.Logger) (*candidate.GradeReport, error) {
	grades := map[candidate.Criterion]float64{
		candidate.CriterionEducation: e.education.Grade(rec.School(), rec.Country),
	}

	codeRes := e.cache.CodeProfile(ctx, rec.GithubURL)
	if !codeRes.Ok() {
		log.Debug("code profile unavailable", zap.Error(codeRes.Err))
	}
	code := codeRes.Value
	codeContext := buildCodeContext(code)

	resumeRes := e.cache.Resume(ctx, rec.ResumePath)
	if !resumeRes.Ok() {
		log.Debug("resume unavailable", zap.Error(resumeRes.Err))
	}
	resume := resumeRes.Value
	resumeSummary := summarizeResume(resume)

	// The personal site comes from the code profile first, then the form,
	// then a link buried in the resume.
	site := candidate.Website{}
	siteURL := firstNonEmpty(code.Blog, rec.PersonalWebsite, resume.Links["website"])
	if strings.HasPrefix(siteURL, "http") {
		siteRes := e.cache.Website(ctx, siteURL)
		if !siteRes.Ok() {
			log.Debug("website unavailable", zap.String("url", siteURL), zap.Error(siteRes.Err))
		}
		site = siteRes.Value
	}

	profileRes := e.cache.Profile(ctx, rec.LinkedinURL)
	if !profileRes.Ok() {
		log.Debug("network profile unavailable", zap.Error(profileRes.Err))
	}
	profile := profileRes.Value

	report := verify.New(verify.ClaimsFromRecord(rec), profile, resume).Verify()
	log.Info("cross-verification complete",
		zap.Int("trust_score", report.TrustScore),
		zap.Int("discrepancies", len(report.Discrepancies)),
	)

	scoring := consensus.NewGrader(e.scorer, log)
	contexts := map[candidate.Criterion]string{
		candidate.CriterionCommunity: communityContext(rec, code, resumeSummary),
		candidate.CriterionHack:      hackContext(rec, codeContext, resumeSummary),
		candidate.CriterionResearch:  researchContext(rec, codeContext, resumeSummary),
		candidate.CriterionStartup:   startupContext(rec, code, site, report),
	}

	for _, criterion := range candidate.SubjectiveCriteria {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		grade := scoring.Grade(ctx, criterion, contexts[criterion])
		grades[criterion] = grade
		log.Info("criterion graded",
			zap.String("criterion", string(criterion)),
			zap.Float64("grade", grade),
		)
	}

	log.Info("evaluation complete", logger.CommonFields(rec.Name(), "")...)
	return &candidate.GradeReport{Grades: grades, Verification: report}, nil
}

func buildCodeContext(code candidate.CodeProfile) string {
	if code.Username == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GitHub Bio: %s\n", code.Bio)
	b.WriteString("Top Repositories:\n")
	for i, repo := range code.Repos {
		if i >= maxContextRepos {
			break
		}
		fmt.Fprintf(&b, "- %s: %s (Stars: %d, Language: %s)\n",
			repo.Name, repo.Description, repo.Stars, repo.Language)
	}
	return b.String()
}

func summarizeResume(resume candidate.Resume) string {
	var b strings.Builder
	if len(resume.Skills) > 0 {
		skills := resume.Skills
		if len(skills) > maxSummarySkills {
			skills = skills[:maxSummarySkills]
		}
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(skills, ", "))
	}
	if len(resume.Experience) > 0 {
		b.WriteString("Experience:\n")
		for i, exp := range resume.Experience {
			if i >= maxSummaryExperience {
				break
			}
			fmt.Fprintf(&b, "- %s\n", exp)
		}
	}
	return b.String()
}

func communityContext(rec *candidate.Record, code candidate.CodeProfile, resumeSummary string) string {
	return fmt.Sprintf(`Role/Association: %s
Experience: %s
Contributions: %s
GitHub Bio: %s
Resume: %s
`, rec.Programs, rec.About, rec.Contribution, code.Bio, resumeSummary)
}

func hackContext(rec *candidate.Record, codeContext, resumeSummary string) string {
	return fmt.Sprintf(`Achievements: %s
Projects: %s
Github URL: %s

SCRAPED GITHUB DATA:
%s

RESUME:
%s
`, rec.Achievement, rec.Projects, rec.GithubURL, codeContext, resumeSummary)
}

func researchContext(rec *candidate.Record, codeContext, resumeSummary string) string {
	return fmt.Sprintf(`Projects/Papers: %s
About: %s
SCRAPED GITHUB DATA (May contain research code):
%s
RESUME:
%s
`, rec.Projects, rec.About, codeContext, resumeSummary)
}

func startupContext(rec *candidate.Record, code candidate.CodeProfile, site candidate.Website, report *candidate.VerificationReport) string {
	about := strings.ToLower(rec.About)
	fundingSignal := ""
	if strings.Contains(about, "raised") &&
		(strings.Contains(about, "million") || strings.Contains(about, "1m")) {
		fundingSignal = "IMPORTANT: APPLICANT HAS STATED THEY RAISED > 1 MILLION.\n"
	}

	siteText := site.RawText
	if runes := []rune(siteText); len(runes) > maxWebsiteContext {
		siteText = string(runes[:maxWebsiteContext])
	}

	return fmt.Sprintf(`Startup Name: %s
Role: %s
Desc: %s
Extra Info: %s
Website URL: %s
Website Content: %s
%sTRUST SCORE: %d
DISCREPANCIES: %s
`, rec.CompanyName, rec.CompanyRole, rec.StartupDesc, rec.About,
		code.Blog, siteText, fundingSignal,
		report.TrustScore, strings.Join(report.Discrepancies, "; "))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
