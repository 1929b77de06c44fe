// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot persists fetched laws in a local SQLite database with a
// full-text index on titles. A snapshot answers the same queries and
// category mutations as the law API, so the coordinator can run offline
// against it.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/law-monitor/pkg/types"
)

const (
	dbFile         = "laws.db"
	defaultDirName = "snapshot"
)

// Store manages the snapshot database.
type Store struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates the snapshot database at cfg.Dir/laws.db and
// creates the schema if it does not exist.
func Open(cfg types.SnapshotConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = defaultDirName
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS laws (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			file_id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			bucket_date TEXT NOT NULL DEFAULT '',
			status TEXT,
			category TEXT NOT NULL DEFAULT 'OPEN',
			likely_relevant INTEGER NOT NULL DEFAULT 0,
			document_type TEXT,
			journal_series TEXT,
			eurovoc TEXT,
			departments TEXT,
			data TEXT NOT NULL,
			saved_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_laws_bucket_date ON laws(bucket_date)`,
		`CREATE INDEX IF NOT EXISTS idx_laws_category ON laws(category)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='laws_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}
	if ftsExists > 0 {
		return nil
	}

	ftsStatements := []string{
		`CREATE VIRTUAL TABLE laws_fts USING fts5(title, content=laws, content_rowid=rowid)`,
		`CREATE TRIGGER laws_ai AFTER INSERT ON laws BEGIN
			INSERT INTO laws_fts(rowid, title) VALUES (new.rowid, new.title);
		END`,
		`CREATE TRIGGER laws_ad AFTER DELETE ON laws BEGIN
			INSERT INTO laws_fts(laws_fts, rowid, title) VALUES('delete', old.rowid, old.title);
		END`,
		`CREATE TRIGGER laws_au AFTER UPDATE OF title ON laws BEGIN
			INSERT INTO laws_fts(laws_fts, rowid, title) VALUES('delete', old.rowid, old.title);
			INSERT INTO laws_fts(rowid, title) VALUES (new.rowid, new.title);
		END`,
	}
	for _, stmt := range ftsStatements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("creating FTS infrastructure: %w", err)
		}
	}
	return nil
}

// SaveSummary counts the outcome of a Save.
type SaveSummary struct {
	Inserted int
	Updated  int
}

// Total returns the number of laws written.
func (s SaveSummary) Total() int {
	return s.Inserted + s.Updated
}

// Save upserts laws in one transaction. Laws without an id are rejected.
func (s *Store) Save(ctx context.Context, laws []types.Law) (SaveSummary, error) {
	var summary SaveSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := tx.PrepareContext(ctx, `SELECT count(*) FROM laws WHERE file_id = ?`)
	if err != nil {
		return summary, fmt.Errorf("preparing lookup: %w", err)
	}
	defer exists.Close()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO laws (file_id, title, bucket_date, status, category, likely_relevant,
			document_type, journal_series, eurovoc, departments, data, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(file_id) DO UPDATE SET
			title=excluded.title, bucket_date=excluded.bucket_date, status=excluded.status,
			category=excluded.category, likely_relevant=excluded.likely_relevant,
			document_type=excluded.document_type, journal_series=excluded.journal_series,
			eurovoc=excluded.eurovoc, departments=excluded.departments,
			data=excluded.data, saved_at=excluded.saved_at`)
	if err != nil {
		return summary, fmt.Errorf("preparing upsert: %w", err)
	}
	defer upsert.Close()

	savedAt := s.now().UTC().Format(time.RFC3339)
	for _, l := range laws {
		if l.ID == "" {
			return summary, fmt.Errorf("law %q has no file id", l.Title)
		}

		var n int
		if err := exists.QueryRowContext(ctx, l.ID).Scan(&n); err != nil {
			return summary, fmt.Errorf("looking up %s: %w", l.ID, err)
		}

		data, err := json.Marshal(l)
		if err != nil {
			return summary, fmt.Errorf("encoding %s: %w", l.ID, err)
		}
		eurovoc, _ := json.Marshal(nonNil(l.EurovocDescriptors))
		departments, _ := json.Marshal(nonNil(l.Departments))

		_, err = upsert.ExecContext(ctx,
			l.ID, l.Title, bucketDay(l), string(l.Status), string(l.ReviewCategory()),
			boolInt(l.LikelyRelevant()), l.DocumentType, l.JournalSeries,
			string(eurovoc), string(departments), string(data), savedAt,
		)
		if err != nil {
			return summary, fmt.Errorf("saving %s: %w", l.ID, err)
		}
		if n > 0 {
			summary.Updated++
		} else {
			summary.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing snapshot: %w", err)
	}
	return summary, nil
}

// Count returns the number of stored laws.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM laws`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting laws: %w", err)
	}
	return n, nil
}

// bucketDay is the calendar day a law is indexed under.
func bucketDay(l types.Law) string {
	d := l.BucketDate()
	if len(d) > len(types.DateLayout) {
		d = d[:len(types.DateLayout)]
	}
	return d
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
