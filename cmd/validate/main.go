// Command validate checks a processed output directory against the
// pipeline's published invariants: extreme-day tables are well-formed and
// correctly ordered, and the report carries every required section.
//
// Usage:
//
//	go run ./cmd/validate -dir processed -top 5
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

type dayRow struct {
	date    time.Time
	avgTemp float64
}

func main() {
	dir := flag.String("dir", "processed", "pipeline output directory")
	top := flag.Int("top", 5, "maximum extreme-day list length")
	flag.Parse()

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	hottest := checkDaysCSV(filepath.Join(*dir, "hottest_days.csv"), *top, descending, report)
	coldest := checkDaysCSV(filepath.Join(*dir, "coldest_days.csv"), *top, ascending, report)
	checkReport(filepath.Join(*dir, "processing_report.txt"), hottest, coldest, report)

	if len(problems) > 0 {
		for _, p := range problems {
			log.Printf("FAIL: %s", p)
		}
		os.Exit(1)
	}
	log.Printf("OK: %d hottest days, %d coldest days, report complete", len(hottest), len(coldest))
}

type ordering int

const (
	descending ordering = iota
	ascending
)

// checkDaysCSV validates one extreme-day table: schema, list length,
// temperature ordering with date-ascending tie-break, and unique dates.
func checkDaysCSV(path string, top int, ord ordering, report func(string, ...any)) []dayRow {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		report("%s: %v", name, err)
		return nil
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		report("%s: %v", name, err)
		return nil
	}
	if len(records) == 0 || len(records[0]) < 2 || records[0][0] != "date" || records[0][1] != "avg_temp" {
		report("%s: missing date,avg_temp header", name)
		return nil
	}

	rows := make([]dayRow, 0, len(records)-1)
	seen := make(map[string]bool)
	for i, rec := range records[1:] {
		if len(rec) != 2 {
			report("%s row %d: expected 2 fields, got %d", name, i+1, len(rec))
			continue
		}
		date, err := time.Parse(domain.DateFormat, rec[0])
		if err != nil {
			report("%s row %d: bad date %q", name, i+1, rec[0])
			continue
		}
		temp, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			report("%s row %d: bad avg_temp %q", name, i+1, rec[1])
			continue
		}
		if seen[rec[0]] {
			report("%s: duplicate date %s", name, rec[0])
		}
		seen[rec[0]] = true
		rows = append(rows, dayRow{date: date, avgTemp: temp})
	}

	if len(rows) > top {
		report("%s: %d rows, expected at most %d", name, len(rows), top)
	}

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		switch {
		case prev.avgTemp == cur.avgTemp:
			if !prev.date.Before(cur.date) {
				report("%s: tied rows %d and %d not ordered by date", name, i, i+1)
			}
		case ord == descending && cur.avgTemp > prev.avgTemp:
			report("%s: rows %d and %d not in descending order", name, i, i+1)
		case ord == ascending && cur.avgTemp < prev.avgTemp:
			report("%s: rows %d and %d not in ascending order", name, i, i+1)
		}
	}

	return rows
}

// checkReport validates the text report structure and that each extreme day
// from the CSVs appears in it.
func checkReport(path string, hottest, coldest []dayRow, report func(string, ...any)) {
	data, err := os.ReadFile(path)
	if err != nil {
		report("report: %v", err)
		return
	}
	text := string(data)

	for _, want := range []string{
		"IOT TEMPERATURE PROCESSING REPORT",
		"Processed at:",
		"Source data:",
		"Total rows:",
		"Temperature cleaning:",
		"5th percentile:",
		"95th percentile:",
		"Extreme days:",
		"Hottest:",
		"Coldest:",
		"Results saved to:",
	} {
		if !strings.Contains(text, want) {
			report("report: missing %q", want)
		}
	}

	for _, d := range append(append([]dayRow{}, hottest...), coldest...) {
		line := fmt.Sprintf("%s: %.2f°C", d.date.Format(domain.DateFormat), d.avgTemp)
		if !strings.Contains(text, line) {
			report("report: missing extreme day entry %q", line)
		}
	}
}
