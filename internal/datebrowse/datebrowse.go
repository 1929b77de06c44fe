// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package datebrowse serves date-indexed law reads from the data store's
// cache, fetching only when a date has not been loaded yet.
package datebrowse

import (
	"context"

	"github.com/pdiddy/law-monitor/pkg/types"
)

// Source is the part of the data store this package reads through.
type Source interface {
	LawsForDate(date string) ([]types.Law, bool)
	FetchLawsByDateRange(ctx context.Context, start, end string) ([]types.Law, error)
}

// Store is a read-through view over a Source.
type Store struct {
	src Source
}

// New returns a Store reading through src.
func New(src Source) *Store {
	return &Store{src: src}
}

// FetchLawsForDate returns the laws of one day, using the cached bucket when
// present and fetching the single-day range otherwise. The result may be empty.
func (s *Store) FetchLawsForDate(ctx context.Context, date string) []types.Law {
	if laws, ok := s.src.LawsForDate(date); ok {
		return laws
	}
	if _, err := s.src.FetchLawsByDateRange(ctx, date, date); err != nil {
		return []types.Law{}
	}
	laws, _ := s.src.LawsForDate(date)
	if laws == nil {
		return []types.Law{}
	}
	return laws
}

// FetchLawsForDateRange always fetches [start, end] and returns every law in
// it. Failures have been reported by the source and yield an empty list.
func (s *Store) FetchLawsForDateRange(ctx context.Context, start, end string) []types.Law {
	laws, err := s.src.FetchLawsByDateRange(ctx, start, end)
	if err != nil || laws == nil {
		return []types.Law{}
	}
	return laws
}
