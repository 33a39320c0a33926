package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func readingOn(date time.Time, temp float64) Reading {
	return Reading{RoomID: "Room Admin", NotedAt: date.Add(10 * time.Hour), Date: date, Temp: temp}
}

func TestQuantile(t *testing.T) {
	t.Run("uniform 0..99", func(t *testing.T) {
		values := make([]float64, 100)
		for i := range values {
			values[i] = float64(i)
		}

		assert.InDelta(t, 4.95, Quantile(values, 0.05), 1e-9)
		assert.InDelta(t, 94.05, Quantile(values, 0.95), 1e-9)
	})

	t.Run("interpolates between order statistics", func(t *testing.T) {
		// rank = 0.5*(4-1) = 1.5 → halfway between 20 and 30.
		assert.InDelta(t, 25.0, Quantile([]float64{10, 20, 30, 40}, 0.5), 1e-9)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		assert.Equal(t, Quantile([]float64{3, 1, 2}, 0.5), Quantile([]float64{1, 2, 3}, 0.5))
	})

	t.Run("input not mutated", func(t *testing.T) {
		values := []float64{3, 1, 2}
		Quantile(values, 0.95)
		assert.Equal(t, []float64{3, 1, 2}, values)
	})

	t.Run("single value", func(t *testing.T) {
		assert.Equal(t, 7.0, Quantile([]float64{7}, 0.05))
		assert.Equal(t, 7.0, Quantile([]float64{7}, 0.95))
	})

	t.Run("constant values degenerate band", func(t *testing.T) {
		values := []float64{5, 5, 5, 5}
		assert.Equal(t, Quantile(values, 0.05), Quantile(values, 0.95))
	})

	t.Run("p5 never exceeds p95", func(t *testing.T) {
		values := []float64{12.3, -4, 99, 30.5, 30.5, 18}
		assert.LessOrEqual(t, Quantile(values, 0.05), Quantile(values, 0.95))
	})

	t.Run("p=1 returns max", func(t *testing.T) {
		assert.Equal(t, 40.0, Quantile([]float64{10, 40, 20}, 1))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, 0.0, Quantile(nil, 0.5))
	})
}

func TestCleanOutliers(t *testing.T) {
	d := day(2026, 1, 1)
	readings := []Reading{
		readingOn(d, 10),
		readingOn(d, 20),
		readingOn(d, 30),
		readingOn(d, 40),
	}

	t.Run("band is inclusive", func(t *testing.T) {
		cleaned := CleanOutliers(readings, 20, 30)
		require.Len(t, cleaned, 2)
		assert.Equal(t, 20.0, cleaned[0].Temp)
		assert.Equal(t, 30.0, cleaned[1].Temp)
	})

	t.Run("uniform 0..99 retains about 90", func(t *testing.T) {
		many := make([]Reading, 100)
		temps := make([]float64, 100)
		for i := range many {
			many[i] = readingOn(d, float64(i))
			temps[i] = float64(i)
		}
		p5 := Quantile(temps, 0.05)
		p95 := Quantile(temps, 0.95)

		cleaned := CleanOutliers(many, p5, p95)
		assert.Equal(t, 90, len(cleaned)) // values 5..94 inclusive
		for _, r := range cleaned {
			assert.GreaterOrEqual(t, r.Temp, p5)
			assert.LessOrEqual(t, r.Temp, p95)
		}
	})

	t.Run("idempotent for a fixed input", func(t *testing.T) {
		first := CleanOutliers(readings, 15, 35)
		second := CleanOutliers(readings, 15, 35)
		assert.Equal(t, first, second)
	})
}

func TestDailyAverages(t *testing.T) {
	readings := []Reading{
		readingOn(day(2026, 1, 2), 30),
		readingOn(day(2026, 1, 1), 20),
		readingOn(day(2026, 1, 2), 34),
		readingOn(day(2026, 1, 1), 22),
		readingOn(day(2026, 1, 3), 25),
	}

	days := DailyAverages(readings)

	require.Len(t, days, 3)
	assert.Equal(t, DailyAverage{Date: day(2026, 1, 1), AvgTemp: 21}, days[0])
	assert.Equal(t, DailyAverage{Date: day(2026, 1, 2), AvgTemp: 32}, days[1])
	assert.Equal(t, DailyAverage{Date: day(2026, 1, 3), AvgTemp: 25}, days[2])
}

func TestExtremeDays(t *testing.T) {
	days := []DailyAverage{
		{Date: day(2026, 1, 1), AvgTemp: 25},
		{Date: day(2026, 1, 2), AvgTemp: 31},
		{Date: day(2026, 1, 3), AvgTemp: 28},
		{Date: day(2026, 1, 4), AvgTemp: 19},
		{Date: day(2026, 1, 5), AvgTemp: 35},
		{Date: day(2026, 1, 6), AvgTemp: 22},
		{Date: day(2026, 1, 7), AvgTemp: 30},
	}

	t.Run("hottest sorted descending", func(t *testing.T) {
		hottest := HottestDays(days, 5)
		require.Len(t, hottest, 5)
		temps := []float64{hottest[0].AvgTemp, hottest[1].AvgTemp, hottest[2].AvgTemp, hottest[3].AvgTemp, hottest[4].AvgTemp}
		assert.Equal(t, []float64{35, 31, 30, 28, 25}, temps)
	})

	t.Run("coldest sorted ascending", func(t *testing.T) {
		coldest := ColdestDays(days, 5)
		require.Len(t, coldest, 5)
		temps := []float64{coldest[0].AvgTemp, coldest[1].AvgTemp, coldest[2].AvgTemp, coldest[3].AvgTemp, coldest[4].AvgTemp}
		assert.Equal(t, []float64{19, 22, 25, 28, 30}, temps)
	})

	t.Run("fewer dates than requested", func(t *testing.T) {
		three := days[:3]
		assert.Len(t, HottestDays(three, 5), 3)
		assert.Len(t, ColdestDays(three, 5), 3)
	})

	t.Run("ties break by date ascending", func(t *testing.T) {
		tied := []DailyAverage{
			{Date: day(2026, 1, 3), AvgTemp: 30},
			{Date: day(2026, 1, 1), AvgTemp: 30},
			{Date: day(2026, 1, 2), AvgTemp: 30},
		}

		hottest := HottestDays(tied, 2)
		require.Len(t, hottest, 2)
		assert.Equal(t, day(2026, 1, 1), hottest[0].Date)
		assert.Equal(t, day(2026, 1, 2), hottest[1].Date)

		coldest := ColdestDays(tied, 2)
		assert.Equal(t, day(2026, 1, 1), coldest[0].Date)
		assert.Equal(t, day(2026, 1, 2), coldest[1].Date)
	})

	t.Run("input not mutated", func(t *testing.T) {
		before := make([]DailyAverage, len(days))
		copy(before, days)
		HottestDays(days, 5)
		ColdestDays(days, 5)
		assert.Equal(t, before, days)
	})
}
