// Package history records an audit trail of completed export runs against
// result files: which file, which entity/attribute, which period range,
// how many rows, and when. It is provenance about invocations of the
// tool, not a cache of query results — every lookup against a Reader
// still re-seeks and re-reads the underlying file.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Run describes one completed export, as recorded by cmd/swmmdump.
type Run struct {
	ID            int64
	FilePath      string
	EntityKind    string
	Attribute     string
	EntityIndex   int
	StartPeriod   int
	EndPeriod     int
	RowCount      int
	RecordedAt    time.Time
}

// Log is a handle over the audit-log database. The zero value is not
// usable; obtain one with Open.
type Log struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures its schema exists.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: ping %s: %w", path, err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL,
	entity_kind TEXT NOT NULL,
	attribute TEXT NOT NULL,
	entity_index INTEGER NOT NULL,
	start_period INTEGER NOT NULL,
	end_period INTEGER NOT NULL,
	row_count INTEGER NOT NULL,
	recorded_at TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Log{db: db}, nil
}

// Close releases the underlying database handle.
func (l *Log) Close() error {
	return l.db.Close()
}

// Record inserts one completed run and returns its assigned ID.
func (l *Log) Record(run Run) (int64, error) {
	if run.RecordedAt.IsZero() {
		run.RecordedAt = time.Now().UTC()
	}
	res, err := l.db.Exec(`
		INSERT INTO runs (file_path, entity_kind, attribute, entity_index, start_period, end_period, row_count, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.FilePath, run.EntityKind, run.Attribute, run.EntityIndex,
		run.StartPeriod, run.EndPeriod, run.RowCount, run.RecordedAt.Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("history: record run: %w", err)
	}
	return res.LastInsertId()
}

// Recent returns the n most recently recorded runs, newest first.
func (l *Log) Recent(n int) ([]Run, error) {
	rows, err := l.db.Query(`
		SELECT id, file_path, entity_kind, attribute, entity_index, start_period, end_period, row_count, recorded_at
		FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var recordedAt string
		if err := rows.Scan(&r.ID, &r.FilePath, &r.EntityKind, &r.Attribute,
			&r.EntityIndex, &r.StartPeriod, &r.EndPeriod, &r.RowCount, &recordedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		r.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("history: parse recorded_at: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
