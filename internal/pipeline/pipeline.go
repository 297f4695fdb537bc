// Package pipeline drives the batch over every selectable row: eligibility
// gate, evaluation, chart, and a durable state write after each transition.
package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"etf-grader/internal/candidate"
	"etf-grader/internal/chart"
	"etf-grader/internal/eligibility"
	"etf-grader/internal/evaluator"
	"etf-grader/internal/logger"
	"etf-grader/internal/store"
	"etf-grader/internal/utils"
)

// Options configure one batch run.
type Options struct {
	OutputDir string
	LogsDir   string
	JSONLogs  bool
	Debug     bool
}

// Summary is the end-of-run tally over the whole table, terminal rows from
// earlier runs included.
type Summary struct {
	Done     int
	Rejected int
	Failed   int
	Pending  int
}

type Orchestrator struct {
	table  *store.Table
	filter *eligibility.Filter
	eval   *evaluator.Evaluator
	cache  *evaluator.SnapshotCache
	opts   Options
	logger *zap.Logger
}

func New(
	table *store.Table,
	filter *eligibility.Filter,
	eval *evaluator.Evaluator,
	cache *evaluator.SnapshotCache,
	opts Options,
	log *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		table:  table,
		filter: filter,
		eval:   eval,
		cache:  cache,
		opts:   opts,
		logger: log,
	}
}

// Run processes every pending row plus any row a previous run left in
// processing. Each transition is persisted before the next row starts, so an
// interrupted batch resumes where it stopped.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	log := o.logger.With(zap.String(logger.FieldRun, runID))

	selectable := 0
	for i := 0; i < o.table.Len(); i++ {
		if !o.table.Status(i).Terminal() {
			selectable++
		}
	}
	log.Info("batch started",
		zap.Int("rows", o.table.Len()),
		zap.Int("selectable", selectable),
	)

	for i := 0; i < o.table.Len(); i++ {
		if o.table.Status(i).Terminal() {
			continue
		}
		if err := ctx.Err(); err != nil {
			// The row stays pending or processing and is picked up next run.
			return o.tally(), err
		}

		if err := o.processRow(ctx, i, runID, log); err != nil {
			return o.tally(), err
		}
	}

	summary := o.tally()
	log.Info("batch finished",
		zap.Int("done", summary.Done),
		zap.Int("rejected", summary.Rejected),
		zap.Int("failed", summary.Failed),
		zap.Int("pending", summary.Pending),
	)
	return summary, nil
}

// processRow runs one candidate end to end. A returned error is fatal for the
// batch (state write failure or cancellation); per-candidate problems,
// panics included, land in the failed status instead.
func (o *Orchestrator) processRow(ctx context.Context, i int, runID string, log *zap.Logger) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("row processing panicked", zap.Int("row", i), zap.Any("panic", r))
			o.markFailed(i, fmt.Errorf("panic: %v", r))
			err = o.persist()
		}
	}()

	rec, err := o.table.Record(i)
	if err != nil {
		o.markFailed(i, err)
		return o.persist()
	}

	name := rec.Name()
	if name == "" {
		name = fmt.Sprintf("candidate_%d", i)
	}
	safeName := utils.SafeName(name)

	candLog, closeLog, logErr := logger.NewCandidateFile(o.opts.LogsDir, safeName, o.opts.JSONLogs, o.opts.Debug)
	if logErr != nil {
		log.Warn("candidate log file unavailable", zap.Error(logErr))
		candLog = log
	} else {
		defer closeLog()
	}
	candLog = logger.WithFields(candLog, logger.CommonFields(name, runID)...)
	candLog.Info("processing started", zap.Int("row", i))

	o.table.SetStatus(i, candidate.StatusProcessing)
	if err := o.persist(); err != nil {
		return err
	}

	// The profile is fetched once here; the evaluator replays it from cache.
	profileRes := o.cache.Profile(ctx, rec.LinkedinURL)
	if !profileRes.Ok() {
		candLog.Debug("network profile unavailable for eligibility", zap.Error(profileRes.Err))
	}

	decision := o.filter.IsEligible(rec, profileRes.Value)
	o.table.Set(i, candidate.ColEuropeReason, decision.Reason)

	if !decision.Eligible {
		candLog.Info("rejected by eligibility gate", zap.String("reason", decision.Reason))
		o.table.SetStatus(i, candidate.StatusRejected)
		o.table.Set(i, candidate.ColProcessedAt, now())
		return o.persist()
	}
	candLog.Info("eligibility passed", zap.String("reason", decision.Reason))

	report, err := o.eval.Evaluate(ctx, rec, candLog)
	if err != nil {
		if ctx.Err() != nil {
			// Interrupted, not failed: keep processing status for the retry.
			return err
		}
		candLog.Error("evaluation failed", zap.Error(err))
		o.markFailed(i, err)
		return o.persist()
	}

	o.writeGrades(i, report)

	chartPath := chart.FilePath(o.opts.OutputDir, safeName)
	if err := chart.Render(name, report.Grades, chartPath); err != nil {
		candLog.Error("chart rendering failed", zap.Error(err))
		o.markFailed(i, err)
		return o.persist()
	}
	o.table.Set(i, candidate.ColChartPath, chartPath)

	o.table.SetStatus(i, candidate.StatusDone)
	o.table.Set(i, candidate.ColProcessedAt, now())

	candLog.Info("processing done",
		zap.Float64("education", report.Grades[candidate.CriterionEducation]),
		zap.Float64("community", report.Grades[candidate.CriterionCommunity]),
		zap.Float64("hack", report.Grades[candidate.CriterionHack]),
		zap.Float64("research", report.Grades[candidate.CriterionResearch]),
		zap.Float64("startup", report.Grades[candidate.CriterionStartup]),
		zap.Int("trust", report.Verification.TrustScore),
	)
	return o.persist()
}

func (o *Orchestrator) writeGrades(i int, report *candidate.GradeReport) {
	o.table.Set(i, candidate.ColGradeEducation,
		strconv.FormatFloat(report.Grades[candidate.CriterionEducation], 'f', -1, 64))
	o.table.Set(i, candidate.ColGradeCommunity, tenth(report.Grades[candidate.CriterionCommunity]))
	o.table.Set(i, candidate.ColGradeHack, tenth(report.Grades[candidate.CriterionHack]))
	o.table.Set(i, candidate.ColGradeResearch, tenth(report.Grades[candidate.CriterionResearch]))
	o.table.Set(i, candidate.ColGradeStartup, tenth(report.Grades[candidate.CriterionStartup]))
	o.table.Set(i, candidate.ColTrustScore, strconv.Itoa(report.Verification.TrustScore))
}

func (o *Orchestrator) markFailed(i int, err error) {
	o.table.SetStatus(i, candidate.StatusFailed)
	o.table.Set(i, candidate.ColErrorMessage, utils.TruncateForLog(eris.ToString(err, false), 500))
	o.table.Set(i, candidate.ColProcessedAt, now())
}

func (o *Orchestrator) persist() error {
	if err := o.table.Persist(); err != nil {
		return eris.Wrap(err, "persist batch state")
	}
	return nil
}

func (o *Orchestrator) tally() Summary {
	var s Summary
	for i := 0; i < o.table.Len(); i++ {
		switch o.table.Status(i) {
		case candidate.StatusDone:
			s.Done++
		case candidate.StatusRejected:
			s.Rejected++
		case candidate.StatusFailed:
			s.Failed++
		default:
			s.Pending++
		}
	}
	return s
}

func tenth(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
