// Package fileout writes the run outputs: extreme-day CSVs and the report.
package fileout

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

// Output file names within the output directory.
const (
	hottestFile = "hottest_days.csv"
	coldestFile = "coldest_days.csv"
	reportFile  = "processing_report.txt"
)

// Writer persists run outputs under a single directory.
// It implements pipeline.ResultWriter.
type Writer struct {
	dir string
}

// NewWriter creates a Writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// HottestPath is where the hottest-days table is written.
func (w *Writer) HottestPath() string {
	return filepath.Join(w.dir, hottestFile)
}

// ColdestPath is where the coldest-days table is written.
func (w *Writer) ColdestPath() string {
	return filepath.Join(w.dir, coldestFile)
}

// ReportPath is where the text report is written.
func (w *Writer) ReportPath() string {
	return filepath.Join(w.dir, reportFile)
}

// WriteExtremes writes both extreme-day tables as `date,avg_temp` CSVs.
func (w *Writer) WriteExtremes(ctx context.Context, hottest, coldest []domain.DailyAverage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeDaysCSV(w.HottestPath(), hottest); err != nil {
		return err
	}
	return writeDaysCSV(w.ColdestPath(), coldest)
}

// WriteReport writes the plain-text processing report.
func (w *Writer) WriteReport(ctx context.Context, report string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(w.ReportPath(), []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeDaysCSV(path string, days []domain.DailyAverage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}

	cw := csv.NewWriter(f)
	cw.Write([]string{"date", "avg_temp"}) //nolint:errcheck // surfaced by cw.Error below
	for _, d := range days {
		cw.Write([]string{ //nolint:errcheck // surfaced by cw.Error below
			d.Date.Format(domain.DateFormat),
			strconv.FormatFloat(d.AvgTemp, 'f', 2, 64),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return nil
}
