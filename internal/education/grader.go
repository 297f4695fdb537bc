package education

import "strings"

// neutralScore is returned when neither table yields a confident match.
const neutralScore = 50

// notationScores maps the domestic table's categorical notation to the fixed
// score ladder. Unknown notations fall through to the bottom score.
var notationScores = map[string]float64{
	"AAA": 95,
	"AA":  85,
	"A":   75,
	"BBB": 65,
	"BB":  55,
	"B":   45,
	"CCC": 35,
	"CC":  25,
	"C":   15,
}

// Grader scores a declared school name on [0,100] using the domestic table
// for domestic candidates and the world table otherwise.
type Grader struct {
	domestic *DomesticTable
	world    *WorldTable
}

func NewGrader(domestic *DomesticTable, world *WorldTable) *Grader {
	return &Grader{domestic: domestic, world: world}
}

// Grade scores the school for a candidate from the given country. The
// domestic branch is taken when the declared country contains "france";
// a domestic miss falls through to the world branch.
func (g *Grader) Grade(school, country string) float64 {
	school = strings.TrimSpace(school)
	if school == "" {
		return neutralScore
	}

	if g.domestic != nil && strings.Contains(strings.ToLower(country), "france") {
		if grade, ok := g.gradeDomestic(school); ok {
			return grade
		}
	}

	if g.world != nil {
		if grade, ok := g.gradeWorld(school); ok {
			return grade
		}
	}

	return neutralScore
}

func (g *Grader) gradeDomestic(school string) (float64, bool) {
	entry, score := g.domestic.Match(school)
	if score <= ConfidentMatch {
		return 0, false
	}

	// Elite-institution overrides bypass the notation ladder. The "milano"
	// guard keeps Politecnico di Milano out of the Polytechnique match.
	name := strings.ToLower(entry.Name)
	if strings.Contains(name, "polytechnique") && !strings.Contains(name, "milano") {
		return 100, true
	}
	if strings.Contains(name, "ens ulm") ||
		(strings.Contains(name, "normale supérieure") && strings.Contains(name, "paris")) {
		return 100, true
	}

	if grade, ok := notationScores[entry.Notation]; ok {
		return grade, true
	}
	return 10, true
}

func (g *Grader) gradeWorld(school string) (float64, bool) {
	entry, score := g.world.Match(school)
	if score <= ConfidentMatch {
		return 0, false
	}

	return decay(entry.MeanRank), true
}

// decay maps a mean world rank onto the score curve. Anchors: 100 at rank 10,
// 95 at 50, 85 at 150, 75 at 300, then a slower slope past 300.
func decay(rank float64) float64 {
	var grade float64
	switch {
	case rank <= 10:
		return 100
	case rank <= 50:
		grade = 100 + (rank-10)*-0.125
	case rank <= 150:
		grade = 95 + (rank-50)*-0.1
	case rank <= 300:
		grade = 85 + (rank-150)*(-10.0/150)
	default:
		grade = 75 + (rank-300)*-0.08
	}

	if grade < 0 {
		return 0
	}
	if grade > 100 {
		return 100
	}
	return grade
}
