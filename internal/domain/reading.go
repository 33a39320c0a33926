package domain

import "time"

// NotedDateFormat is the timestamp layout used by the source CSV.
const NotedDateFormat = "02-01-2006 15:04"

// DateFormat is the layout for calendar dates in outputs and reports.
const DateFormat = "2006-01-02"

// RawReading is one CSV row as read from the source file. All fields are
// kept as strings; parsing happens after the indoor filter.
type RawReading struct {
	ID        string // export row id, may be empty
	RoomID    string
	NotedDate string // DD-MM-YYYY HH:MM
	Temp      string // degrees Celsius
	OutIn     string // "In"/"Out" with varying casing
}

// Reading is an indoor reading with parsed timestamp and temperature.
// Date is NotedAt truncated to a UTC calendar date.
type Reading struct {
	RoomID  string
	NotedAt time.Time
	Date    time.Time
	Temp    float64
}

// DailyAverage is the mean temperature over all readings sharing a date.
type DailyAverage struct {
	Date    time.Time `json:"date"`
	AvgTemp float64   `json:"avg_temp"`
}

// StageEvent describes one completed pipeline stage. Published to the
// events topic when Kafka notifications are enabled.
type StageEvent struct {
	RunID       string         `json:"run_id"`
	Stage       string         `json:"stage"`
	CompletedAt time.Time      `json:"completed_at"`
	Facts       map[string]any `json:"facts,omitempty"`
}
