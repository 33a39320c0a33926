// Command genmock generates a synthetic IoT temperature CSV with the same
// shape as the real "Temperature Readings: IoT Devices" export: mixed
// out/in casing, a handful of malformed timestamps, and a few extreme
// temperature outliers. Useful for local pipeline runs and fixtures.
//
// Usage:
//
//	go run ./cmd/genmock -out data/IOT-temp.csv -rows 5000 -days 30 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

var baseDate = time.Date(2018, time.December, 1, 0, 0, 0, 0, time.UTC)

// out/in casing variants seen in the real export.
var outInValues = []string{"In", "in", "IN", "Out", "out", "OUT"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/IOT-temp.csv", "output CSV path")
	rows := flag.Int("rows", 5000, "number of data rows")
	days := flag.Int("days", 30, "calendar span of noted_date values")
	seed := flag.Int64("seed", 42, "random seed for reproducible temperatures and dates")
	flag.Parse()

	if *rows <= 0 || *days <= 0 {
		flag.Usage()
		return fmt.Errorf("-rows and -days must be positive")
	}

	rng := rand.New(rand.NewSource(*seed))

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"id", "room_id", "noted_date", "temp", "out/in"}); err != nil {
		return err
	}

	var indoor, malformed, outliers int
	for i := 0; i < *rows; i++ {
		outIn := outInValues[rng.Intn(len(outInValues))]
		if len(outIn) == 2 {
			indoor++
		}

		notedAt := baseDate.
			AddDate(0, 0, rng.Intn(*days)).
			Add(time.Duration(rng.Intn(24*60)) * time.Minute)
		notedDate := notedAt.Format(domain.NotedDateFormat)
		// Roughly 1% malformed timestamps, as in the wild.
		if rng.Intn(100) == 0 {
			notedDate = notedAt.Format("2006/01/02 15:04")
			malformed++
		}

		// Indoor temps cluster around 31°C, outdoor runs hotter.
		temp := 31.0 + rng.NormFloat64()*3
		if len(outIn) == 3 {
			temp += 6
		}
		if rng.Intn(200) == 0 {
			temp = 99
			outliers++
		}

		record := []string{
			"__export__.temp_log_" + uuid.NewString()[:8],
			"Room Admin",
			notedDate,
			strconv.FormatFloat(temp, 'f', 1, 64),
			outIn,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Printf("wrote %s: %d rows (%d indoor, %d malformed dates, %d outliers)",
		*out, *rows, indoor, malformed, outliers)
	return nil
}
