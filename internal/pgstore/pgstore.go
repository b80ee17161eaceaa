// Package pgstore keeps vendor rows in PostgreSQL.
//
// Rows are stored verbatim, one per record, in two tables that mirror the
// input and output files of the file backend. vendor_rows holds imported
// input rows and is what ReadLines returns. saved_vendor_rows receives rows
// appended through AppendLine. The two never mix: saved rows are encoded
// day-first and would not decode as input rows.
package pgstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

const (
	// InputTable holds rows loaded by ReadLines. Only Import writes to it.
	InputTable = "vendor_rows"
	// SavedTable holds rows written by AppendLine.
	SavedTable = "saved_vendor_rows"
)

var createTablesSQL = []string{
	`CREATE TABLE IF NOT EXISTS vendor_rows (
	id         uuid PRIMARY KEY,
	line       text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS saved_vendor_rows (
	id         uuid PRIMARY KEY,
	line       text NOT NULL,
	created_at timestamptz NOT NULL DEFAULT now()
)`,
}

const (
	selectInputSQL = `SELECT line FROM vendor_rows ORDER BY created_at, id`
	insertInputSQL = `INSERT INTO vendor_rows (id, line) VALUES ($1, $2)`
	insertSavedSQL = `INSERT INTO saved_vendor_rows (id, line) VALUES ($1, $2)`
	countRowsSQL   = `SELECT (SELECT count(*) FROM vendor_rows), (SELECT count(*) FROM saved_vendor_rows)`
	resetSQL       = `TRUNCATE vendor_rows, saved_vendor_rows`
)

// Beginner starts transactions. Satisfied by *pgxpool.Pool.
type Beginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// Counts holds the number of rows in each table.
type Counts struct {
	Input int64
	Saved int64
}

// Total returns the rows across both tables.
func (c Counts) Total() int64 {
	return c.Input + c.Saved
}

// Store reads input rows and appends saved rows in PostgreSQL.
type Store struct {
	db    DBTX
	newID func() uuid.UUID
}

// New returns a Store using db.
func New(db DBTX) *Store {
	return &Store{db: db, newID: uuid.New}
}

// EnsureSchema creates both tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createTablesSQL {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create vendor tables: %w", err)
		}
	}
	return nil
}

// ReadLines implements core.LineSource. Input rows come back in insertion
// order. Saved rows are not returned.
func (s *Store) ReadLines(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, selectInputSQL)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", InputTable, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan vendor row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", InputTable, err)
	}
	return lines, nil
}

// AppendLine implements core.LineSink by inserting into saved_vendor_rows.
func (s *Store) AppendLine(ctx context.Context, line string) error {
	if _, err := s.db.Exec(ctx, insertSavedSQL, s.newID(), line); err != nil {
		return fmt.Errorf("insert saved vendor row: %w", err)
	}
	return nil
}

// Count returns the number of stored rows per table.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var c Counts
	if err := s.db.QueryRow(ctx, countRowsSQL).Scan(&c.Input, &c.Saved); err != nil {
		return Counts{}, fmt.Errorf("count vendor rows: %w", err)
	}
	return c, nil
}

// Reset deletes every row in both tables. This is destructive.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, resetSQL); err != nil {
		return fmt.Errorf("reset vendor tables: %w", err)
	}
	return nil
}

// Import copies lines into vendor_rows inside a single transaction.
// It returns the number of rows inserted.
func Import(ctx context.Context, beginner Beginner, lines []string) (int, error) {
	tx, err := beginner.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	for i, line := range lines {
		if _, err := tx.Exec(ctx, insertInputSQL, uuid.New(), line); err != nil {
			return 0, fmt.Errorf("import line %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return len(lines), nil
}
