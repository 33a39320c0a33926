package domain

import (
	"strconv"
	"strings"
	"time"
)

// FilterIndoor selects rows whose out/in field equals "in", comparing
// lower-cased values so "In", "IN" and "in" all match.
func FilterIndoor(rows []RawReading) []RawReading {
	indoor := make([]RawReading, 0, len(rows))
	for _, r := range rows {
		if strings.ToLower(strings.TrimSpace(r.OutIn)) == "in" {
			indoor = append(indoor, r)
		}
	}
	return indoor
}

// DistinctOutIn returns the distinct out/in values present in rows, in
// first-seen order. Used to build NoMatchingRecordsError.
func DistinctOutIn(rows []RawReading) []string {
	seen := make(map[string]struct{}, 4)
	var values []string
	for _, r := range rows {
		v := strings.TrimSpace(r.OutIn)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// ParseReadings converts filtered raw rows into typed readings. Rows whose
// noted_date or temperature fails to parse are dropped silently; the caller
// counts filtered_rows after this drop.
func ParseReadings(rows []RawReading) []Reading {
	readings := make([]Reading, 0, len(rows))
	for _, r := range rows {
		notedAt, err := time.ParseInLocation(NotedDateFormat, strings.TrimSpace(r.NotedDate), time.UTC)
		if err != nil {
			continue
		}
		temp, err := strconv.ParseFloat(strings.TrimSpace(r.Temp), 64)
		if err != nil {
			continue
		}
		readings = append(readings, Reading{
			RoomID:  r.RoomID,
			NotedAt: notedAt,
			Date:    truncateToDate(notedAt),
			Temp:    temp,
		})
	}
	return readings
}

// truncateToDate strips the time-of-day component, keeping a UTC midnight.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
