// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/law-monitor/pkg/types"
)

// csvHeader is the column order of CSV exports.
var csvHeader = []string{"file_id", "title", "publication_date", "document_type", "category", "likely_relevant", "relevant_teams"}

// DownloadLawsCSV renders the laws selected by scope as CSV: every law the
// AI flagged for ALL_HITS, every law a reviewer categorized for
// ALL_EVALUATED.
func (s *Store) DownloadLawsCSV(ctx context.Context, scope types.CSVScope) (string, error) {
	var where string
	switch scope {
	case types.ScopeAllHits:
		where = `l.likely_relevant = 1`
	case types.ScopeAllEvaluated:
		where = `l.category != 'OPEN'`
	default:
		return "", fmt.Errorf("unknown export scope %q", scope)
	}

	laws, err := s.queryLaws(ctx,
		`SELECT `+lawColumns+` FROM laws l WHERE `+where+` ORDER BY l.bucket_date DESC, l.file_id`)
	if err != nil {
		return "", fmt.Errorf("querying for CSV export: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("writing CSV: %w", err)
	}
	for _, l := range laws {
		record := []string{
			l.ID, l.Title, l.PublicationDate, l.DocumentType,
			string(l.ReviewCategory()), fmt.Sprint(l.LikelyRelevant()), strings.Join(relevantTeams(l), "; "),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing CSV: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing CSV: %w", err)
	}
	return buf.String(), nil
}

func relevantTeams(l types.Law) []string {
	var teams []string
	for _, tr := range l.TeamRelevancies {
		if tr.IsRelevant && tr.Error == "" {
			teams = append(teams, tr.TeamName)
		}
	}
	return teams
}

// ExportYAML writes every stored law to <dir>/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	laws, err := s.all(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(laws)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every stored law to <dir>/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	laws, err := s.all(ctx)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(laws, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) all(ctx context.Context) ([]types.Law, error) {
	laws, err := s.queryLaws(ctx, `SELECT `+lawColumns+` FROM laws l ORDER BY l.bucket_date DESC, l.file_id`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	return laws, nil
}
