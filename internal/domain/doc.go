// Package domain models IoT room temperature readings and the pure
// transformations the batch pipeline applies to them.
//
// # Data Source
//
// Readings come from the "Temperature Readings: IoT Devices" CSV export.
// Each row carries a room identifier, a timestamp, a temperature in degrees
// Celsius, and an "out/in" marker telling whether the sensor sits outside
// or inside the room. The marker's casing varies in the wild ("In", "in",
// "OUT", ...), so the indoor filter compares lower-cased values.
//
// Timestamp format:
//
//	DD-MM-YYYY HH:MM, e.g. "08-12-2018 09:30".
//	Only the calendar date matters downstream; the time of day is kept on
//	the reading but aggregation is per date. Rows whose timestamp (or
//	temperature) fails to parse are dropped, never fatal on their own.
//
// # Outlier Cleaning
//
// The cleaner keeps readings whose temperature falls inside the inclusive
// [p5, p95] band of the filtered set. Percentiles use the linear
// interpolation definition: the value at fractional rank p*(n-1) in the
// sorted sample, interpolated between the two bracketing order statistics.
//
// # Extreme Days
//
// Daily averages are plain arithmetic means. Hottest days sort by average
// descending, coldest ascending; equal averages are ordered by date
// ascending so reruns produce identical output.
package domain
