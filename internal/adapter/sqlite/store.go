// Package sqlite persists the intermediate pipeline artifacts.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/iot-temp-etl/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS filtered_readings (
	room_id  TEXT NOT NULL,
	noted_at TEXT NOT NULL,
	date     TEXT NOT NULL,
	temp     REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS cleaned_readings (
	room_id  TEXT NOT NULL,
	noted_at TEXT NOT NULL,
	date     TEXT NOT NULL,
	temp     REAL NOT NULL
);`

// Store keeps the filtered and cleaned datasets in a SQLite database, one
// table per artifact. It implements pipeline.ArtifactStore.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the artifact database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open artifact db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create artifact schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveFiltered replaces the filtered dataset.
func (s *Store) SaveFiltered(ctx context.Context, readings []domain.Reading) error {
	return s.save(ctx, "filtered_readings", readings)
}

// LoadFiltered returns the filtered dataset in insertion order.
func (s *Store) LoadFiltered(ctx context.Context) ([]domain.Reading, error) {
	return s.load(ctx, "filtered_readings")
}

// SaveCleaned replaces the cleaned dataset.
func (s *Store) SaveCleaned(ctx context.Context, readings []domain.Reading) error {
	return s.save(ctx, "cleaned_readings", readings)
}

// LoadCleaned returns the cleaned dataset in insertion order.
func (s *Store) LoadCleaned(ctx context.Context) ([]domain.Reading, error) {
	return s.load(ctx, "cleaned_readings")
}

// save deletes the previous artifact and inserts the new rows in one
// transaction, so a rerun of the producing stage is idempotent.
func (s *Store) save(ctx context.Context, table string, readings []domain.Reading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save %s: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO "+table+" (room_id, noted_at, date, temp) VALUES (?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", table, err)
	}
	defer stmt.Close()

	for _, r := range readings {
		_, err := stmt.ExecContext(ctx,
			r.RoomID,
			r.NotedAt.UTC().Format(time.RFC3339),
			r.Date.UTC().Format(domain.DateFormat),
			r.Temp,
		)
		if err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, table string) ([]domain.Reading, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT room_id, noted_at, date, temp FROM "+table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var readings []domain.Reading
	for rows.Next() {
		var (
			r        domain.Reading
			notedAt  string
			dateOnly string
		)
		if err := rows.Scan(&r.RoomID, &notedAt, &dateOnly, &r.Temp); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if r.NotedAt, err = time.Parse(time.RFC3339, notedAt); err != nil {
			return nil, fmt.Errorf("parse noted_at in %s: %w", table, err)
		}
		if r.Date, err = time.ParseInLocation(domain.DateFormat, dateOnly, time.UTC); err != nil {
			return nil, fmt.Errorf("parse date in %s: %w", table, err)
		}
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return readings, nil
}
