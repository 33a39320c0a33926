package pipeline

import (
	"fmt"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

// Forward-fact keys. Each key is written exactly once by its producing
// stage and read by downstream stages without re-deriving from artifacts.
const (
	FactTotalRows       = "total_rows"
	FactFilteredRows    = "filtered_rows"
	FactOutliersRemoved = "outliers_removed"
	FactP5              = "p5"
	FactP95             = "p95"
	FactCleanedRows     = "cleaned_rows"
	FactHottestDays     = "hottest_days"
	FactColdestDays     = "coldest_days"
)

// Facts is the write-once forward-facts registry for a single pipeline run.
// Stages run sequentially in one goroutine, so no locking is needed.
type Facts struct {
	values map[string]any
}

// NewFacts creates an empty registry.
func NewFacts() *Facts {
	return &Facts{values: make(map[string]any)}
}

// Set records a fact. Rewriting an existing key is a programming error and
// is rejected so a misordered stage cannot silently clobber upstream state.
func (f *Facts) Set(key string, value any) error {
	if _, ok := f.values[key]; ok {
		return fmt.Errorf("fact %q already set", key)
	}
	f.values[key] = value
	return nil
}

// Int returns an integer fact, or MissingFactError if absent.
func (f *Facts) Int(key string) (int, error) {
	v, ok := f.values[key]
	if !ok {
		return 0, &domain.MissingFactError{Key: key}
	}
	n, ok := v.(int)
	if !ok {
		return 0, fmt.Errorf("fact %q is not an int (got %T)", key, v)
	}
	return n, nil
}

// Float returns a float fact, or MissingFactError if absent.
func (f *Facts) Float(key string) (float64, error) {
	v, ok := f.values[key]
	if !ok {
		return 0, &domain.MissingFactError{Key: key}
	}
	x, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("fact %q is not a float (got %T)", key, v)
	}
	return x, nil
}

// Days returns a daily-average list fact, or MissingFactError if absent.
func (f *Facts) Days(key string) ([]domain.DailyAverage, error) {
	v, ok := f.values[key]
	if !ok {
		return nil, &domain.MissingFactError{Key: key}
	}
	days, ok := v.([]domain.DailyAverage)
	if !ok {
		return nil, fmt.Errorf("fact %q is not a day list (got %T)", key, v)
	}
	return days, nil
}

// Snapshot returns a copy of all facts set so far, for stage events.
func (f *Facts) Snapshot() map[string]any {
	snap := make(map[string]any, len(f.values))
	for k, v := range f.values {
		snap[k] = v
	}
	return snap
}
