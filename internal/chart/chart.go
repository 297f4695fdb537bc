// Package chart renders a candidate's five criterion grades as a PNG.
package chart

import (
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"etf-grader/internal/candidate"
)

// order fixes the bar sequence regardless of map iteration.
var order = []candidate.Criterion{
	candidate.CriterionEducation,
	candidate.CriterionCommunity,
	candidate.CriterionHack,
	candidate.CriterionResearch,
	candidate.CriterionStartup,
}

// shortLabels keeps the x axis readable at bar width.
var shortLabels = map[candidate.Criterion]string{
	candidate.CriterionEducation: "Education",
	candidate.CriterionCommunity: "Community",
	candidate.CriterionHack:      "Hack/Project",
	candidate.CriterionResearch:  "Research",
	candidate.CriterionStartup:   "Startup",
}

// FilePath returns where the chart for a candidate lands under outputDir.
// safeName must already be filesystem-safe.
func FilePath(outputDir, safeName string) string {
	return filepath.Join(outputDir, "grade_"+safeName+".png")
}

// Render writes the grade chart PNG to path, creating parent directories.
func Render(name string, grades map[candidate.Criterion]float64, path string) error {
	bars := make([]chart.Value, 0, len(order))
	for _, criterion := range order {
		bars = append(bars, chart.Value{
			Label: shortLabels[criterion],
			Value: grades[criterion],
			Style: chart.Style{
				FillColor:   drawing.ColorBlue.WithAlpha(90),
				StrokeColor: drawing.ColorBlue,
				StrokeWidth: 1,
			},
		})
	}

	graph := chart.BarChart{
		Title:    name,
		Width:    800,
		Height:   500,
		BarWidth: 90,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: []chart.Tick{
				{Value: 0, Label: "0"},
				{Value: 20, Label: "20"},
				{Value: 40, Label: "40"},
				{Value: 60, Label: "60"},
				{Value: 80, Label: "80"},
				{Value: 100, Label: "100"},
			},
		},
		Bars: bars,
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "create chart dir %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create chart file %s", path)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return eris.Wrap(err, "render grade chart")
	}
	return nil
}
