package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
	"github.com/couchcryptid/iot-temp-etl/internal/observability"
)

// Stage names, matching the task ids the external scheduler uses.
const (
	StageIngest   = "load_and_filter_data"
	StageClean    = "clean_temperature"
	StageExtremes = "calculate_extreme_days"
	StageReport   = "generate_report"
)

// RawSource reads every raw reading from the input file.
type RawSource interface {
	ReadAll(ctx context.Context) ([]domain.RawReading, error)
}

// ArtifactStore persists the intermediate datasets between stages. A save
// fully replaces the previous artifact so stage reruns are idempotent.
type ArtifactStore interface {
	SaveFiltered(ctx context.Context, readings []domain.Reading) error
	LoadFiltered(ctx context.Context) ([]domain.Reading, error)
	SaveCleaned(ctx context.Context, readings []domain.Reading) error
	LoadCleaned(ctx context.Context) ([]domain.Reading, error)
}

// ResultWriter persists the run outputs: the two extreme-day tables and the
// text report.
type ResultWriter interface {
	WriteExtremes(ctx context.Context, hottest, coldest []domain.DailyAverage) error
	WriteReport(ctx context.Context, report string) error
	HottestPath() string
	ColdestPath() string
}

// Notifier publishes stage-completion events. Optional.
type Notifier interface {
	StageCompleted(ctx context.Context, event domain.StageEvent) error
}

// Pipeline runs the four batch stages in order, threading forward facts
// between them.
type Pipeline struct {
	source   RawSource
	store    ArtifactStore
	results  ResultWriter
	notifier Notifier // nil disables stage events
	logger   *slog.Logger
	metrics  *observability.Metrics
	topDays  int
	runID    string
}

// New creates a Pipeline. Pass a nil notifier to disable stage events.
func New(source RawSource, store ArtifactStore, results ResultWriter, notifier Notifier, logger *slog.Logger, metrics *observability.Metrics, topDays int) *Pipeline {
	return &Pipeline{
		source:   source,
		store:    store,
		results:  results,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		topDays:  topDays,
		runID:    uuid.NewString(),
	}
}

// RunID identifies this pipeline run in logs and stage events.
func (p *Pipeline) RunID() string {
	return p.runID
}

// Run executes ingest, clean, extremes, and report sequentially. The first
// stage error aborts the run; no stage retries internally.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "run_id", p.runID, "top_days", p.topDays)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	facts := NewFacts()

	stages := []struct {
		name string
		run  func(context.Context, *Facts) error
	}{
		{StageIngest, p.runIngest},
		{StageClean, p.runClean},
		{StageExtremes, p.runExtremes},
		{StageReport, p.runReport},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		if err := stage.run(ctx, facts); err != nil {
			p.metrics.StageFailures.WithLabelValues(stage.name).Inc()
			p.logger.Error("stage failed", "run_id", p.runID, "stage", stage.name, "error", err)
			return fmt.Errorf("%s: %w", stage.name, err)
		}
		p.metrics.StageDuration.WithLabelValues(stage.name).Observe(time.Since(start).Seconds())
		p.logger.Info("stage completed", "run_id", p.runID, "stage", stage.name, "duration", time.Since(start))

		p.notifyStage(ctx, stage.name, facts)
	}

	p.logger.Info("pipeline finished", "run_id", p.runID)
	return nil
}

// runIngest reads the raw CSV, filters to indoor readings, parses dates and
// temperatures, and persists the filtered set.
func (p *Pipeline) runIngest(ctx context.Context, facts *Facts) error {
	rows, err := p.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	p.metrics.RowsIngested.Add(float64(len(rows)))

	indoor := domain.FilterIndoor(rows)
	if len(indoor) == 0 {
		return &domain.NoMatchingRecordsError{Observed: domain.DistinctOutIn(rows)}
	}

	// filtered_rows is counted after the date/temp parse drop, not before.
	readings := domain.ParseReadings(indoor)
	p.metrics.RowsFiltered.Add(float64(len(readings)))

	if err := p.store.SaveFiltered(ctx, readings); err != nil {
		return fmt.Errorf("persist filtered readings: %w", err)
	}

	if err := facts.Set(FactTotalRows, len(rows)); err != nil {
		return err
	}
	if err := facts.Set(FactFilteredRows, len(readings)); err != nil {
		return err
	}

	p.logger.Info("filtered indoor readings",
		"run_id", p.runID,
		"total_rows", len(rows),
		"indoor_rows", len(indoor),
		"filtered_rows", len(readings),
	)
	return nil
}

// runClean computes the percentile band over the filtered set and drops
// temperature outliers.
func (p *Pipeline) runClean(ctx context.Context, facts *Facts) error {
	readings, err := p.store.LoadFiltered(ctx)
	if err != nil {
		return fmt.Errorf("load filtered readings: %w", err)
	}
	if len(readings) == 0 {
		return domain.ErrEmptyInput
	}

	temps := domain.Temperatures(readings)
	p5 := domain.Quantile(temps, 0.05)
	p95 := domain.Quantile(temps, 0.95)

	cleaned := domain.CleanOutliers(readings, p5, p95)
	removed := len(readings) - len(cleaned)
	p.metrics.OutliersRemoved.Add(float64(removed))

	if err := p.store.SaveCleaned(ctx, cleaned); err != nil {
		return fmt.Errorf("persist cleaned readings: %w", err)
	}

	if err := facts.Set(FactOutliersRemoved, removed); err != nil {
		return err
	}
	if err := facts.Set(FactP5, p5); err != nil {
		return err
	}
	if err := facts.Set(FactP95, p95); err != nil {
		return err
	}
	if err := facts.Set(FactCleanedRows, len(cleaned)); err != nil {
		return err
	}

	p.logger.Info("cleaned temperature outliers",
		"run_id", p.runID,
		"p5", p5,
		"p95", p95,
		"outliers_removed", removed,
		"cleaned_rows", len(cleaned),
	)
	return nil
}

// runExtremes aggregates cleaned readings per day and selects the hottest
// and coldest days.
func (p *Pipeline) runExtremes(ctx context.Context, facts *Facts) error {
	readings, err := p.store.LoadCleaned(ctx)
	if err != nil {
		return fmt.Errorf("load cleaned readings: %w", err)
	}
	if len(readings) == 0 {
		return domain.ErrEmptyInput
	}

	days := domain.DailyAverages(readings)
	hottest := domain.HottestDays(days, p.topDays)
	coldest := domain.ColdestDays(days, p.topDays)

	if err := p.results.WriteExtremes(ctx, hottest, coldest); err != nil {
		return fmt.Errorf("persist extreme days: %w", err)
	}

	if err := facts.Set(FactHottestDays, hottest); err != nil {
		return err
	}
	if err := facts.Set(FactColdestDays, coldest); err != nil {
		return err
	}

	p.logger.Info("calculated extreme days",
		"run_id", p.runID,
		"distinct_days", len(days),
		"hottest", len(hottest),
		"coldest", len(coldest),
	)
	return nil
}

// runReport assembles all forward facts into the text report.
func (p *Pipeline) runReport(ctx context.Context, facts *Facts) error {
	summary, err := p.buildSummary(facts)
	if err != nil {
		return err
	}

	report := domain.RenderReport(summary)
	if err := p.results.WriteReport(ctx, report); err != nil {
		return fmt.Errorf("persist report: %w", err)
	}

	p.logger.Info("report generated",
		"run_id", p.runID,
		"total_rows", summary.TotalRows,
		"filtered_rows", summary.FilteredRows,
		"cleaned_rows", summary.CleanedRows,
	)
	return nil
}

// buildSummary pulls every forward fact; a missing fact means an upstream
// stage did not run and surfaces as MissingFactError.
func (p *Pipeline) buildSummary(facts *Facts) (domain.RunSummary, error) {
	var (
		s   domain.RunSummary
		err error
	)

	if s.TotalRows, err = facts.Int(FactTotalRows); err != nil {
		return s, err
	}
	if s.FilteredRows, err = facts.Int(FactFilteredRows); err != nil {
		return s, err
	}
	if s.OutliersRemoved, err = facts.Int(FactOutliersRemoved); err != nil {
		return s, err
	}
	if s.P5, err = facts.Float(FactP5); err != nil {
		return s, err
	}
	if s.P95, err = facts.Float(FactP95); err != nil {
		return s, err
	}
	if s.CleanedRows, err = facts.Int(FactCleanedRows); err != nil {
		return s, err
	}
	if s.Hottest, err = facts.Days(FactHottestDays); err != nil {
		return s, err
	}
	if s.Coldest, err = facts.Days(FactColdestDays); err != nil {
		return s, err
	}

	s.HottestPath = p.results.HottestPath()
	s.ColdestPath = p.results.ColdestPath()
	return s, nil
}

// notifyStage publishes a stage-completion event. Failures are logged and
// ignored; the events channel is best-effort.
func (p *Pipeline) notifyStage(ctx context.Context, stage string, facts *Facts) {
	if p.notifier == nil {
		return
	}
	event := domain.StageEvent{
		RunID:       p.runID,
		Stage:       stage,
		CompletedAt: domain.Now(),
		Facts:       facts.Snapshot(),
	}
	if err := p.notifier.StageCompleted(ctx, event); err != nil {
		p.logger.Warn("stage event publish failed", "run_id", p.runID, "stage", stage, "error", err)
	}
}
