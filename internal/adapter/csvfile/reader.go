// Package csvfile reads the raw IoT temperature CSV export.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

// Required source columns. Extra columns are ignored.
const (
	colID        = "id"
	colRoomID    = "room_id"
	colNotedDate = "noted_date"
	colTemp      = "temp"
	colOutIn     = "out/in"
)

// Reader reads raw readings from a CSV file with a header row.
// It implements pipeline.RawSource.
type Reader struct {
	path string
}

// NewReader creates a Reader for the given CSV path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// ReadAll parses the whole file into raw readings. The header row must
// contain noted_date, temp, and out/in; id and room_id are optional.
func (r *Reader) ReadAll(ctx context.Context) ([]domain.RawReading, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	return parse(ctx, f)
}

func parse(ctx context.Context, src io.Reader) ([]domain.RawReading, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; missing cells read as empty

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colNotedDate, colTemp, colOutIn} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("input is missing required column %q", required)
		}
	}

	var rows []domain.RawReading
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rows = append(rows, domain.RawReading{
			ID:        get(row, colIdx, colID),
			RoomID:    get(row, colIdx, colRoomID),
			NotedDate: get(row, colIdx, colNotedDate),
			Temp:      get(row, colIdx, colTemp),
			OutIn:     get(row, colIdx, colOutIn),
		})
	}

	return rows, nil
}

func get(row []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
