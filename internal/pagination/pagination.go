// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pagination grows the default view's trailing day window until new
// laws appear. After a configured number of consecutive empty extension days
// it gives up on incremental growth and fetches the whole remaining history
// in one call.
package pagination

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/pdiddy/law-monitor/internal/flight"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// Fetcher loads the laws of an inclusive date range. An empty start means
// the whole history up to end.
type Fetcher interface {
	FetchLawsByDateRange(ctx context.Context, start, end string) ([]types.Law, error)
}

// Store holds the pagination window. It is safe for concurrent use.
type Store struct {
	fetch Fetcher
	cfg   types.PaginationConfig
	now   func() time.Time

	flights flight.Group[[]types.Law]

	mu          sync.Mutex
	daysLoaded  int
	emptyDays   int
	hasMore     bool
	loadingMore bool
	lastCount   int
}

// New returns a Store. Zero fields of cfg take their defaults; a nil now
// uses time.Now.
func New(fetch Fetcher, cfg types.PaginationConfig, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		fetch:   fetch,
		cfg:     cfg.WithDefaults(),
		now:     now,
		hasMore: true,
	}
}

// LoadDefaultLaws resets the window to days (the configured default when
// days <= 0) and loads it. An empty window enters the extension loop.
// Overlapping calls with the same days share one load; a caller whose ctx
// ends first gets no laws while the load continues for the others.
func (s *Store) LoadDefaultLaws(ctx context.Context, days int) []types.Law {
	if days <= 0 {
		days = s.cfg.DefaultWindowDays
	}
	shared, err := s.flights.Do(ctx, strconv.Itoa(days), func(ctx context.Context) ([]types.Law, error) {
		return s.loadDefault(ctx, days), nil
	})
	if err != nil {
		return []types.Law{}
	}
	out := make([]types.Law, len(shared))
	copy(out, shared)
	return out
}

func (s *Store) loadDefault(ctx context.Context, days int) []types.Law {
	s.mu.Lock()
	s.daysLoaded = days
	s.emptyDays = 0
	s.hasMore = true
	s.lastCount = 0
	s.mu.Unlock()

	laws, err := s.fetchWindow(ctx, days)
	if err != nil {
		return []types.Law{}
	}
	s.mu.Lock()
	s.lastCount = len(laws)
	s.mu.Unlock()
	if len(laws) > 0 {
		return laws
	}
	return s.extend(ctx, 0, s.cfg.ExtensionDays)
}

// LoadMoreDays grows the window by increment days (the configured extension
// when increment <= 0) until the fetch returns more laws than currentCount.
// It returns no laws when no more history is available or another
// LoadMoreDays is in flight.
func (s *Store) LoadMoreDays(ctx context.Context, currentCount, increment int) []types.Law {
	s.mu.Lock()
	if !s.hasMore || s.loadingMore {
		s.mu.Unlock()
		return []types.Law{}
	}
	s.loadingMore = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loadingMore = false
		s.mu.Unlock()
	}()

	if increment <= 0 {
		increment = s.cfg.ExtensionDays
	}
	return s.extend(ctx, currentCount, increment)
}

// extend runs the extension loop. The count to beat is the larger of
// baseline and the size of the last fetched window, so a caller passing a
// filtered count still converges on the give-up threshold once the history
// stops producing new laws.
func (s *Store) extend(ctx context.Context, baseline, increment int) []types.Law {
	s.mu.Lock()
	if s.lastCount > baseline {
		baseline = s.lastCount
	}
	window := s.daysLoaded
	s.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return []types.Law{}
		}
		window += increment
		laws, err := s.fetchWindow(ctx, window)
		if err != nil {
			return []types.Law{}
		}

		s.mu.Lock()
		s.daysLoaded = window
		s.lastCount = len(laws)
		if len(laws) > baseline {
			s.emptyDays = 0
			s.mu.Unlock()
			return laws
		}
		s.emptyDays += increment
		exhausted := s.emptyDays >= s.cfg.GiveUpDays
		s.mu.Unlock()

		if exhausted {
			return s.fetchAll(ctx)
		}
	}
}

// fetchAll loads the whole history up to today and disables further growth.
func (s *Store) fetchAll(ctx context.Context) []types.Law {
	laws, err := s.fetch.FetchLawsByDateRange(ctx, "", s.today())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasMore = false
	if err != nil {
		return []types.Law{}
	}
	s.lastCount = len(laws)
	if laws == nil {
		laws = []types.Law{}
	}
	return laws
}

func (s *Store) fetchWindow(ctx context.Context, days int) ([]types.Law, error) {
	now := s.now()
	start := types.FormatDate(now.AddDate(0, 0, -(days - 1)))
	laws, err := s.fetch.FetchLawsByDateRange(ctx, start, types.FormatDate(now))
	if err != nil {
		return nil, err
	}
	if laws == nil {
		laws = []types.Law{}
	}
	return laws, nil
}

func (s *Store) today() string {
	return types.FormatDate(s.now())
}

// DaysLoaded returns the current window size in days.
func (s *Store) DaysLoaded() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.daysLoaded
}

// ConsecutiveDaysWithoutLaws returns the cumulative empty extension days
// since the last extension that found new laws.
func (s *Store) ConsecutiveDaysWithoutLaws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emptyDays
}

// HasMoreLaws reports whether the window may still grow.
func (s *Store) HasMoreLaws() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasMore
}

// IsLoadingMore reports whether a LoadMoreDays call is in flight.
func (s *Store) IsLoadingMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingMore
}
