package consensus

import (
	"fmt"
	"strings"

	"etf-grader/internal/candidate"
)

// criteriaInstructions holds the fixed instruction block appended to the
// context for each subjective criterion.
var criteriaInstructions = map[candidate.Criterion]string{
	candidate.CriterionCommunity: `
Look for roles in associations, involvement in EuroTech, connections to fellows.
Keywords: 'association', 'president', 'founder', 'fellow', 'community', 'family'.
High grade for leadership roles and strong community spirit.
`,
	candidate.CriterionHack: `
Look for won hackathons, GitHub repos, personal projects.
Verify if they are technical/deeptech enough.
Evidence like 'won', '1st place', 'github.com', 'built'.
Look for technical details in the GitHub analysis if available.
High grade for winning major hacks or complex technical projects.
`,
	candidate.CriterionResearch: `
Look for publications, Arxiv, deeptech research ambition.
Links to papers are a plus.
Must be DEEPTECH research, not just fine-tuning LLMs.
High grade for published papers or serious research involvement.
`,
	candidate.CriterionStartup: `
Looking for website, money raised, VC backing.
Standard Rule: High grade for raised funds + deeptech focus + live product.
OVERRIDE RULE: If the applicant mentions raising 1 million or more (e.g. "raised 2.1 million", "1M", "1000k", "$1M", "€1M"), the grade MUST be 100. IGNORE all other criteria like tech vs non-tech. raising > 1M = 100.
`,
}

// buildPrompt assembles the full grading prompt for one criterion.
func buildPrompt(criterion candidate.Criterion, context string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Evaluate the following applicant for the criteria: %s.\n\n", criterion)
	fmt.Fprintf(&b, "Context:\n%s\n\n", context)
	fmt.Fprintf(&b, "Specific Instructions:\n%s\n", strings.TrimSpace(criteriaInstructions[criterion]))
	b.WriteString("\nGrade (0-100):")

	return b.String()
}
