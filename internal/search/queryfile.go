// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/law-monitor/pkg/types"
)

// QueryFile is the on-disk form of a search and its results. A reviewer can
// save a search and rerun or inspect it later without retyping the query.
type QueryFile struct {
	Query   Request      `yaml:"query"`
	Label   string       `yaml:"label"`
	Results []types.Law  `yaml:"results"`
	Summary QuerySummary `yaml:"summary"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total          int       `yaml:"total"`
	LikelyRelevant int       `yaml:"likely_relevant"`
	Timestamp      time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves a request and its results to a YAML file.
func WriteQueryFile(path string, req Request, results []types.Law) error {
	req = req.Normalize()
	qf := QueryFile{
		Query:   req,
		Label:   req.Label(),
		Results: results,
		Summary: QuerySummary{
			Total:     len(results),
			Timestamp: time.Now().UTC(),
		},
	}
	for _, l := range results {
		if l.LikelyRelevant() {
			qf.Summary.LikelyRelevant++
		}
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file and checks that its
// request is runnable.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	switch qf.Query.Type {
	case types.SearchTitle, types.SearchEurovoc, types.SearchDocumentType,
		types.SearchJournalSeries, types.SearchDepartment:
	default:
		return nil, fmt.Errorf("query file %s: unknown search type %q", path, qf.Query.Type)
	}
	if qf.Query.IsEmpty() {
		return nil, fmt.Errorf("query file %s: search input is empty", path)
	}
	return &qf, nil
}
