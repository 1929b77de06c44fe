// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/law-monitor/internal/lawapi"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// ErrNotFound is returned when a mutation names a law the snapshot does
// not hold.
var ErrNotFound = errors.New("law not found in snapshot")

const lawColumns = `l.data, l.category`

// GetLawsByDateRange returns the laws whose bucket date lies in [start,
// end], newest first. An empty start or end leaves that side open.
func (s *Store) GetLawsByDateRange(ctx context.Context, start, end string) (lawapi.LawPage, error) {
	laws, err := s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l
		 WHERE l.bucket_date != ''
		   AND (? = '' OR l.bucket_date >= ?)
		   AND (? = '' OR l.bucket_date <= ?)
		 ORDER BY l.bucket_date DESC, l.file_id`,
		start, start, end, end)
	if err != nil {
		return lawapi.LawPage{}, err
	}
	return lawapi.LawPage{Laws: laws, Pagination: lawapi.Pagination{TotalItems: len(laws)}}, nil
}

// GetAllDatesWithLaws returns the distinct bucket dates, ascending.
func (s *Store) GetAllDatesWithLaws(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT bucket_date FROM laws WHERE bucket_date != '' ORDER BY bucket_date`)
	if err != nil {
		return nil, fmt.Errorf("querying dates: %w", err)
	}
	defer rows.Close()

	dates := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

// SearchLawsByTitle runs a full-text search over titles. Every word of
// title must prefix-match a title word; results are ranked by relevance.
func (s *Store) SearchLawsByTitle(ctx context.Context, title string) ([]types.Law, error) {
	match := ftsQuery(title)
	if match == "" {
		return []types.Law{}, nil
	}
	return s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws_fts
		 JOIN laws l ON l.rowid = laws_fts.rowid
		 WHERE laws_fts MATCH ?
		 ORDER BY laws_fts.rank`,
		match)
}

// SearchLawsByEurovoc returns laws carrying any of descriptors.
func (s *Store) SearchLawsByEurovoc(ctx context.Context, descriptors []string) ([]types.Law, error) {
	if len(descriptors) == 0 {
		return []types.Law{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(descriptors)), ",")
	args := make([]any, len(descriptors))
	for i, d := range descriptors {
		args[i] = d
	}
	return s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l
		 WHERE EXISTS (SELECT 1 FROM json_each(l.eurovoc) WHERE value IN (`+placeholders+`))
		 ORDER BY l.bucket_date DESC, l.file_id`,
		args...)
}

// SearchLawsByDocumentType returns laws of one document type.
func (s *Store) SearchLawsByDocumentType(ctx context.Context, docType string) ([]types.Law, error) {
	return s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l WHERE l.document_type = ?
		 ORDER BY l.bucket_date DESC, l.file_id`,
		docType)
}

// SearchLawsByJournalSeries returns laws published in one journal series.
func (s *Store) SearchLawsByJournalSeries(ctx context.Context, series string) ([]types.Law, error) {
	return s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l WHERE l.journal_series = ?
		 ORDER BY l.bucket_date DESC, l.file_id`,
		series)
}

// SearchLawsByDepartment returns laws assigned to department.
func (s *Store) SearchLawsByDepartment(ctx context.Context, department string) ([]types.Law, error) {
	return s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l
		 WHERE EXISTS (SELECT 1 FROM json_each(l.departments) WHERE value = ?)
		 ORDER BY l.bucket_date DESC, l.file_id`,
		department)
}

// UpdateLawCategory stores a new review category for a saved law.
func (s *Store) UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE laws SET category = ? WHERE file_id = ?`, string(category), lawID)
	if err != nil {
		return fmt.Errorf("updating category of %s: %w", lawID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating category of %s: %w", lawID, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", lawID, ErrNotFound)
	}
	return nil
}

// queryLaws runs a query selecting lawColumns and decodes each row. The
// category column overrides the category in the stored record.
func (s *Store) queryLaws(ctx context.Context, query string, args ...any) ([]types.Law, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	laws := []types.Law{}
	for rows.Next() {
		var (
			data     string
			category sql.NullString
		)
		if err := rows.Scan(&data, &category); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		var l types.Law
		if err := json.Unmarshal([]byte(data), &l); err != nil {
			return nil, fmt.Errorf("decoding stored law: %w", err)
		}
		if category.Valid {
			l.Category = types.Category(category.String)
		}
		laws = append(laws, l)
	}
	return laws, rows.Err()
}

// ftsQuery turns free text into an FTS5 query that prefix-matches every
// word. Quotes are escaped so user input cannot inject FTS syntax.
func ftsQuery(text string) string {
	var terms []string
	for _, w := range strings.Fields(text) {
		terms = append(terms, `"`+strings.ReplaceAll(w, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}
