// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lawdata is the fetch and cache boundary between the stores and the
// law services. It owns the server-fetched law records, the list of dates
// that have laws, the category mutation call, and the CSV export.
package lawdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdiddy/law-monitor/internal/flight"
	"github.com/pdiddy/law-monitor/internal/lawapi"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// QueryService is the read side of the law services.
type QueryService interface {
	GetLawsByDateRange(ctx context.Context, start, end string) (lawapi.LawPage, error)
	GetAllDatesWithLaws(ctx context.Context) ([]string, error)
	DownloadLawsCSV(ctx context.Context, scope types.CSVScope) (string, error)
}

// MutationService is the write side of the law services.
type MutationService interface {
	UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error
}

// ErrUpdateInFlight is returned by UpdateLawCategory when a mutation for the
// same law is already running.
var ErrUpdateInFlight = errors.New("category update already in flight")

// Store caches law records by fetch range and by date. It is safe for
// concurrent use; identical overlapping fetches share one service call.
type Store struct {
	query  QueryService
	mutate MutationService
	notify notify.Sink
	log    io.Writer

	dateFlight  flight.Group[[]string]
	rangeFlight flight.Group[[]types.Law]

	mu         sync.Mutex
	dates      []string
	laws       []types.Law
	byDate     map[string][]types.Law
	totalItems int
	loading    int
	seq        uint64
	appliedSeq uint64
	updating   map[string]struct{}
}

// New returns an empty Store. A nil sink discards notifications and a nil
// log discards warnings.
func New(query QueryService, mutate MutationService, sink notify.Sink, log io.Writer) *Store {
	if sink == nil {
		sink = notify.Discard
	}
	if log == nil {
		log = io.Discard
	}
	return &Store{
		query:    query,
		mutate:   mutate,
		notify:   sink,
		log:      log,
		byDate:   map[string][]types.Law{},
		updating: map[string]struct{}{},
	}
}

// FetchAvailableDates returns the ascending list of dates that have laws.
// The first non-empty answer is memoized; an empty answer is fetched again
// next time. Failures are reported once per service call, however many
// callers shared it, and yield an empty list.
func (s *Store) FetchAvailableDates(ctx context.Context) []string {
	s.mu.Lock()
	if len(s.dates) > 0 {
		out := append([]string(nil), s.dates...)
		s.mu.Unlock()
		return out
	}
	s.mu.Unlock()

	dates, err := s.dateFlight.Do(ctx, "dates", func(ctx context.Context) ([]string, error) {
		dates, err := s.query.GetAllDatesWithLaws(ctx)
		if err != nil {
			fmt.Fprintf(s.log, "warning: fetching available dates: %v\n", err)
			s.notify.AddError("Could not load the dates with available laws.")
			return nil, err
		}
		sorted := append([]string(nil), dates...)
		sort.Strings(sorted)

		s.mu.Lock()
		s.dates = sorted
		s.mu.Unlock()
		return sorted, nil
	})
	if err != nil {
		return []string{}
	}
	return append([]string(nil), dates...)
}

// AvailableDates returns the cached dates without fetching.
func (s *Store) AvailableDates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.dates...)
}

// FetchLawsByDateRange fetches the laws in [start, end] and replaces the
// cached flat list and date index with them. An empty start fetches the
// whole history up to end. Identical overlapping calls share one service
// call; a caller whose ctx ends first stops waiting without affecting the
// others.
//
// A service failure is logged and reported to the notification sink once,
// then returned to every waiting caller so they can tell a failed fetch from
// an empty range. The cache keeps its previous contents in that case. A
// caller's own cancellation is returned without a report.
//
// A response that resolves after a newer fetch has been applied is returned
// to its callers but does not overwrite the cache.
func (s *Store) FetchLawsByDateRange(ctx context.Context, start, end string) ([]types.Law, error) {
	laws, err := s.rangeFlight.Do(ctx, "range:"+start+"|"+end, func(ctx context.Context) ([]types.Law, error) {
		s.mu.Lock()
		s.loading++
		s.seq++
		seq := s.seq
		s.mu.Unlock()

		page, err := s.query.GetLawsByDateRange(ctx, start, end)

		s.mu.Lock()
		s.loading--
		if err != nil {
			s.mu.Unlock()
			fmt.Fprintf(s.log, "warning: fetching laws %s..%s: %v\n", displayStart(start), end, err)
			s.notify.AddError("Could not load laws for the selected period.")
			return nil, err
		}
		if seq > s.appliedSeq {
			s.appliedSeq = seq
			s.apply(page)
		}
		s.mu.Unlock()
		return append([]types.Law(nil), page.Laws...), nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching laws %s..%s: %w", displayStart(start), end, err)
	}
	return append([]types.Law(nil), laws...), nil
}

func displayStart(start string) string {
	if start == "" {
		return "*"
	}
	return start
}

// apply replaces the cached laws. Callers hold s.mu.
func (s *Store) apply(page lawapi.LawPage) {
	s.laws = append([]types.Law(nil), page.Laws...)
	s.totalItems = page.Pagination.TotalItems
	s.byDate = make(map[string][]types.Law)
	for _, l := range s.laws {
		d := l.BucketDate()
		if d == "" {
			continue
		}
		if len(d) > len(types.DateLayout) {
			d = d[:len(types.DateLayout)]
		}
		s.byDate[d] = append(s.byDate[d], l)
	}
}

// Laws returns the flat list from the most recently applied fetch.
func (s *Store) Laws() []types.Law {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Law(nil), s.laws...)
}

// TotalItems returns the total reported by the most recently applied fetch.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// LawsForDate returns the cached bucket for date and whether one exists.
func (s *Store) LawsForDate(date string) ([]types.Law, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.byDate[date]
	if !ok {
		return nil, false
	}
	return append([]types.Law(nil), bucket...), true
}

// IsLoading reports whether a date-range fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

// UpdateLawCategory asks the mutation service to change a law's category.
// On success every cached copy of the law is patched in place; laws that are
// not cached are not added. The id is tracked as in flight for the duration
// of the call; a second call for the same id while it is tracked fails with
// ErrUpdateInFlight without reaching the service. Errors are returned to the
// caller.
func (s *Store) UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error {
	s.mu.Lock()
	if _, busy := s.updating[lawID]; busy {
		s.mu.Unlock()
		return fmt.Errorf("updating category of %s: %w", lawID, ErrUpdateInFlight)
	}
	s.updating[lawID] = struct{}{}
	s.mu.Unlock()

	err := s.mutate.UpdateLawCategory(ctx, lawID, category)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.updating, lawID)
	if err != nil {
		return fmt.Errorf("updating category of %s: %w", lawID, err)
	}

	for date, bucket := range s.byDate {
		if i := types.IndexByID(bucket, lawID); i >= 0 {
			bucket[i].Category = category
			s.byDate[date] = bucket
		}
	}
	if i := types.IndexByID(s.laws, lawID); i >= 0 {
		s.laws[i].Category = category
	}
	return nil
}

// IsUpdating reports whether a category mutation for lawID is in flight.
func (s *Store) IsUpdating(lawID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.updating[lawID]
	return ok
}

// DownloadRelevantCSV returns the raw CSV export for scope. It reports false
// after logging and notifying when the export fails.
func (s *Store) DownloadRelevantCSV(ctx context.Context, scope types.CSVScope) (string, bool) {
	csv, err := s.query.DownloadLawsCSV(ctx, scope)
	if err != nil {
		fmt.Fprintf(s.log, "warning: downloading %s CSV: %v\n", scope, err)
		s.notify.AddError("Could not download the CSV export.")
		return "", false
	}
	return csv, true
}
