package domain

import (
	"sort"
	"time"
)

// Quantile computes the p-quantile (0 <= p <= 1) of values using linear
// interpolation between order statistics: the value at fractional rank
// p*(n-1) in the sorted sample. The input slice is not modified.
// Returns 0 for an empty input; callers reject empty datasets first.
func Quantile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p * float64(n-1)
	lo := int(rank)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// CleanOutliers keeps readings whose temperature lies in [lo, hi] inclusive.
func CleanOutliers(readings []Reading, lo, hi float64) []Reading {
	cleaned := make([]Reading, 0, len(readings))
	for _, r := range readings {
		if r.Temp >= lo && r.Temp <= hi {
			cleaned = append(cleaned, r)
		}
	}
	return cleaned
}

// Temperatures extracts the temperature column from readings.
func Temperatures(readings []Reading) []float64 {
	temps := make([]float64, len(readings))
	for i, r := range readings {
		temps[i] = r.Temp
	}
	return temps
}

// DailyAverages groups readings by calendar date and computes the mean
// temperature per date. The result is sorted by date ascending.
func DailyAverages(readings []Reading) []DailyAverage {
	sums := make(map[int64]float64)
	counts := make(map[int64]int)
	for _, r := range readings {
		key := r.Date.Unix()
		sums[key] += r.Temp
		counts[key]++
	}

	days := make([]DailyAverage, 0, len(sums))
	for key, sum := range sums {
		days = append(days, DailyAverage{
			Date:    timeFromUnixUTC(key),
			AvgTemp: sum / float64(counts[key]),
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// HottestDays returns up to n days with the highest average temperature,
// ordered by average descending. Equal averages order by date ascending.
func HottestDays(days []DailyAverage, n int) []DailyAverage {
	ranked := rankDays(days, func(a, b DailyAverage) bool { return a.AvgTemp > b.AvgTemp })
	return ranked[:min(n, len(ranked))]
}

// ColdestDays returns up to n days with the lowest average temperature,
// ordered by average ascending. Equal averages order by date ascending.
func ColdestDays(days []DailyAverage, n int) []DailyAverage {
	ranked := rankDays(days, func(a, b DailyAverage) bool { return a.AvgTemp < b.AvgTemp })
	return ranked[:min(n, len(ranked))]
}

// rankDays sorts a copy of days by the given temperature ordering, falling
// back to date ascending on ties.
func rankDays(days []DailyAverage, hotter func(a, b DailyAverage) bool) []DailyAverage {
	ranked := make([]DailyAverage, len(days))
	copy(ranked, days)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AvgTemp != ranked[j].AvgTemp {
			return hotter(ranked[i], ranked[j])
		}
		return ranked[i].Date.Before(ranked[j].Date)
	})
	return ranked
}

func timeFromUnixUTC(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}
