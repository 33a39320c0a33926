package domain

import (
	"fmt"
	"strings"
)

// RunSummary holds every forward fact needed to render the final report.
type RunSummary struct {
	TotalRows       int
	FilteredRows    int
	P5              float64
	P95             float64
	OutliersRemoved int
	CleanedRows     int
	Hottest         []DailyAverage
	Coldest         []DailyAverage
	HottestPath     string
	ColdestPath     string
}

const reportRule = "=========================================="

// RenderReport formats the run summary as the fixed plain-text processing
// report. The timestamp comes from the package clock so tests can freeze it.
func RenderReport(s RunSummary) string {
	var b strings.Builder

	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "IOT TEMPERATURE PROCESSING REPORT")
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintf(&b, "Processed at: %s\n\n", clock.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintln(&b, "Source data:")
	fmt.Fprintf(&b, "  - Total rows: %d\n", s.TotalRows)
	fmt.Fprintf(&b, "  - Rows after filtering (out/in = 'In'): %d\n", s.FilteredRows)
	fmt.Fprintf(&b, "  - Filtered percentage: %.2f%%\n\n", percent(s.FilteredRows, s.TotalRows))

	fmt.Fprintln(&b, "Temperature cleaning:")
	fmt.Fprintf(&b, "  - 5th percentile: %.2f°C\n", s.P5)
	fmt.Fprintf(&b, "  - 95th percentile: %.2f°C\n", s.P95)
	fmt.Fprintf(&b, "  - Outliers removed: %d (%.2f%%)\n", s.OutliersRemoved, percent(s.OutliersRemoved, s.FilteredRows))
	fmt.Fprintf(&b, "  - Rows remaining after cleaning: %d\n\n", s.CleanedRows)

	fmt.Fprintln(&b, "Extreme days:")
	fmt.Fprintln(&b, "  Hottest:")
	writeRankedDays(&b, s.Hottest)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "  Coldest:")
	writeRankedDays(&b, s.Coldest)
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "Results saved to:")
	fmt.Fprintf(&b, "  - %s\n", s.HottestPath)
	fmt.Fprintf(&b, "  - %s\n", s.ColdestPath)
	fmt.Fprintln(&b, reportRule)

	return b.String()
}

func writeRankedDays(b *strings.Builder, days []DailyAverage) {
	for i, d := range days {
		fmt.Fprintf(b, "    %d. %s: %.2f°C\n", i+1, d.Date.Format(DateFormat), d.AvgTemp)
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
