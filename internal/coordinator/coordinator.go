// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package coordinator is the single entry point for the law view. It owns
// one instance of every store, routes user actions to them, and keeps the
// display collection consistent with the active display mode.
//
// Entering a mode always replaces the displayed collection. DEFAULT is the
// only mode that grows its window; when a filter leaves the DEFAULT view
// empty the coordinator keeps loading older days until something matches or
// the history is exhausted.
package coordinator

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pdiddy/law-monitor/internal/category"
	"github.com/pdiddy/law-monitor/internal/datebrowse"
	"github.com/pdiddy/law-monitor/internal/display"
	"github.com/pdiddy/law-monitor/internal/lawdata"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/internal/pagination"
	"github.com/pdiddy/law-monitor/internal/search"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// NoDataInRange is the inline date message shown when the selected range
// overlaps no date that has laws.
const NoDataInRange = "No laws are available in the selected period."

// Services are the collaborators behind the stores. The law API client and
// the snapshot store both satisfy every interface.
type Services struct {
	Query    lawdata.QueryService
	Mutation lawdata.MutationService
	Search   search.Service

	// Notify receives user-facing messages. Nil discards them.
	Notify notify.Sink
	// Log receives warnings. Nil discards them.
	Log io.Writer
}

// Options tune a Coordinator.
type Options struct {
	Pagination types.PaginationConfig

	// InitialFilter defers the first default load's display update to the
	// caller, which is expected to apply its own starting filter.
	InitialFilter bool

	// Now is the clock used for day windows and picker bounds.
	Now func() time.Time
}

// Coordinator composes the stores. Each Coordinator owns isolated store
// instances; it is safe for concurrent use.
type Coordinator struct {
	data       *lawdata.Store
	search     *search.Store
	dates      *datebrowse.Store
	pages      *pagination.Store
	categories *category.Store
	display    *display.Store
	now        func() time.Time

	mu            sync.Mutex
	initialFilter bool
	autoFetching  bool
}

// New builds a Coordinator and its stores.
func New(svc Services, opts Options) *Coordinator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	data := lawdata.New(svc.Query, svc.Mutation, svc.Notify, svc.Log)
	return &Coordinator{
		data:          data,
		search:        search.New(svc.Search, svc.Notify, svc.Log),
		dates:         datebrowse.New(data),
		pages:         pagination.New(data, opts.Pagination, now),
		categories:    category.New(data, svc.Notify, svc.Log),
		display:       display.New(),
		now:           now,
		initialFilter: opts.InitialFilter,
	}
}

// Search switches to SEARCH mode, resets the category filter and replaces
// the collection with the results of req.
func (c *Coordinator) Search(ctx context.Context, req search.Request) []types.Law {
	t := c.display.Begin()
	c.display.SetMode(types.ModeSearch)
	c.display.SetCategoryFilter(types.CategoryFilterAll)

	laws := c.search.Search(ctx, req)
	c.display.Replace(t, types.ModeSearch, laws)
	return laws
}

func (c *Coordinator) SearchByTitle(ctx context.Context, title string) []types.Law {
	return c.Search(ctx, search.Request{Type: types.SearchTitle, Text: title})
}

func (c *Coordinator) SearchByEurovoc(ctx context.Context, descriptors []string) []types.Law {
	return c.Search(ctx, search.Request{Type: types.SearchEurovoc, Descriptors: descriptors})
}

func (c *Coordinator) SearchByDocumentType(ctx context.Context, docType string) []types.Law {
	return c.Search(ctx, search.Request{Type: types.SearchDocumentType, Text: docType})
}

func (c *Coordinator) SearchByJournalSeries(ctx context.Context, series string) []types.Law {
	return c.Search(ctx, search.Request{Type: types.SearchJournalSeries, Text: series})
}

func (c *Coordinator) SearchByDepartment(ctx context.Context, department string) []types.Law {
	return c.Search(ctx, search.Request{Type: types.SearchDepartment, Text: department})
}

// ResetSearch clears the search query, returns to DEFAULT mode with the
// category filter at ALL and reloads the default window.
func (c *Coordinator) ResetSearch(ctx context.Context) []types.Law {
	c.search.Reset()
	c.display.SetMode(types.ModeDefault)
	c.display.SetCategoryFilter(types.CategoryFilterAll)
	return c.LoadDefaultLaws(ctx, 0)
}

// FetchLawsByDateRange switches to DATE mode and shows the laws of r.
//
// An invalid range, or one that overlaps none of the available dates, is
// rejected locally: the date message explains why, the collection is
// emptied and no laws are fetched.
func (c *Coordinator) FetchLawsByDateRange(ctx context.Context, r types.DateRange) []types.Law {
	t := c.display.Begin()
	c.display.SetDateRange(r)

	if err := r.Validate(); err != nil {
		c.display.SetDateMessage(err.Error())
		c.display.Replace(t, types.ModeDate, nil)
		return []types.Law{}
	}
	if !c.rangeHasData(ctx, r) {
		c.display.SetDateMessage(NoDataInRange)
		c.display.Replace(t, types.ModeDate, nil)
		return []types.Law{}
	}
	c.display.SetDateMessage("")
	c.display.SetMode(types.ModeDate)

	laws := c.dates.FetchLawsForDateRange(ctx, r.Start, r.End)
	types.SortByDateAndStatus(laws)
	c.display.Replace(t, types.ModeDate, laws)
	return laws
}

// FetchLawsForDate switches to DATE mode and shows the laws of one day,
// reading the cached day when present.
func (c *Coordinator) FetchLawsForDate(ctx context.Context, date string) []types.Law {
	r := types.DateRange{Start: date, End: date}
	t := c.display.Begin()
	c.display.SetDateRange(r)

	if err := r.Validate(); err != nil {
		c.display.SetDateMessage(err.Error())
		c.display.Replace(t, types.ModeDate, nil)
		return []types.Law{}
	}
	c.display.SetDateMessage("")
	c.display.SetMode(types.ModeDate)

	laws := c.dates.FetchLawsForDate(ctx, date)
	types.SortByDateAndStatus(laws)
	c.display.Replace(t, types.ModeDate, laws)
	return laws
}

// rangeHasData reports whether r overlaps an available date. Unknown
// availability does not block the fetch.
func (c *Coordinator) rangeHasData(ctx context.Context, r types.DateRange) bool {
	dates := c.data.FetchAvailableDates(ctx)
	if len(dates) == 0 {
		return true
	}
	for _, d := range dates {
		if r.Contains(d) {
			return true
		}
	}
	return false
}

// LoadDefaultLaws loads the default window of days (the configured default
// when days <= 0). Unless an initial filter is pending it switches to
// DEFAULT mode and shows the result.
func (c *Coordinator) LoadDefaultLaws(ctx context.Context, days int) []types.Law {
	t := c.display.Begin()
	laws := c.pages.LoadDefaultLaws(ctx, days)
	types.SortByDateAndStatus(laws)
	if !c.InitialFilter() {
		c.display.Replace(t, types.ModeDefault, laws)
	}
	return laws
}

// LoadMoreDays grows the DEFAULT window by increment days until more laws
// than are currently displayed come back. It does nothing outside DEFAULT
// mode or once the history is exhausted.
func (c *Coordinator) LoadMoreDays(ctx context.Context, increment int) []types.Law {
	if c.display.Mode() != types.ModeDefault || !c.pages.HasMoreLaws() {
		return []types.Law{}
	}
	baseline := len(c.display.DisplayedLaws())

	t := c.display.Begin()
	laws := c.pages.LoadMoreDays(ctx, baseline, increment)
	if len(laws) == 0 {
		return laws
	}
	types.SortByDateAndStatus(laws)
	c.display.Replace(t, types.ModeDefault, laws)
	return laws
}

// UpdateLawCategory shows category for the law immediately and persists it.
// It reports false when the change was rolled back.
func (c *Coordinator) UpdateLawCategory(ctx context.Context, lawID string, cat types.Category) bool {
	return c.categories.UpdateLawCategory(ctx, lawID, cat, category.Bindings{
		Current: c.display.DisplayedCategory,
		Apply: func(id string, v types.Category) {
			c.display.UpdateLawInCollection(id, display.LawPatch{Category: &v})
		},
	})
}

// SetCategoryFilter applies f and, in DEFAULT mode, loads older days until
// the filtered view is not empty.
func (c *Coordinator) SetCategoryFilter(ctx context.Context, f types.CategoryFilter) {
	c.display.SetCategoryFilter(f)
	c.autoLoad(ctx)
}

// SetAIFilter applies f and, in DEFAULT mode, loads older days until the
// filtered view is not empty.
func (c *Coordinator) SetAIFilter(ctx context.Context, f types.AIFilter) {
	c.display.SetAIFilter(f)
	c.autoLoad(ctx)
}

// autoLoad grows the DEFAULT window while the filtered view is empty. Only
// one loop runs at a time; the pagination give-up threshold bounds it.
func (c *Coordinator) autoLoad(ctx context.Context) {
	c.mu.Lock()
	if c.autoFetching || c.display.Mode() != types.ModeDefault {
		c.mu.Unlock()
		return
	}
	c.autoFetching = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.autoFetching = false
		c.mu.Unlock()
	}()

	for ctx.Err() == nil &&
		c.display.Mode() == types.ModeDefault &&
		c.pages.HasMoreLaws() &&
		len(c.display.DisplayedLaws()) == 0 {
		if len(c.LoadMoreDays(ctx, 0)) == 0 {
			return
		}
	}
}

// SetInitialFilter marks whether the caller will apply a starting filter
// after the next default load.
func (c *Coordinator) SetInitialFilter(pending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initialFilter = pending
}

func (c *Coordinator) InitialFilter() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialFilter
}

// ShowLaws replaces the displayed collection in the current mode. Callers
// that set an initial filter use it to publish their filtered load.
func (c *Coordinator) ShowLaws(laws []types.Law) {
	c.display.SetLaws(laws)
}

// DownloadRelevantCSV returns the CSV export for scope, or false when the
// export failed and the user was notified.
func (c *Coordinator) DownloadRelevantCSV(ctx context.Context, scope types.CSVScope) (string, bool) {
	return c.data.DownloadRelevantCSV(ctx, scope)
}

// AvailableDates returns the dates that have laws, fetching them once.
func (c *Coordinator) AvailableDates(ctx context.Context) []string {
	return c.data.FetchAvailableDates(ctx)
}

// DatePickerBounds returns the picker bounds for the available dates.
func (c *Coordinator) DatePickerBounds(ctx context.Context) lawdata.PickerBounds {
	c.data.FetchAvailableDates(ctx)
	return c.data.DatePickerBounds(c.now())
}

func (c *Coordinator) DisplayedLaws() []types.Law { return c.display.DisplayedLaws() }
func (c *Coordinator) Mode() types.DisplayMode { return c.display.Mode() }
func (c *Coordinator) CategoryFilter() types.CategoryFilter { return c.display.CategoryFilter() }
func (c *Coordinator) AIFilter() types.AIFilter { return c.display.AIFilter() }
func (c *Coordinator) DateRange() types.DateRange { return c.display.DateRange() }
func (c *Coordinator) DateMessage() string { return c.display.DateMessage() }
func (c *Coordinator) HasMoreLaws() bool { return c.pages.HasMoreLaws() }
func (c *Coordinator) DaysLoaded() int { return c.pages.DaysLoaded() }
func (c *Coordinator) IsLoadingMore() bool { return c.pages.IsLoadingMore() }
func (c *Coordinator) IsLoading() bool { return c.data.IsLoading() }
func (c *Coordinator) IsSearching() bool { return c.search.IsSearching() }
func (c *Coordinator) SearchQuery() string { return c.search.Query() }
func (c *Coordinator) IsCategoryLoading(lawID string) bool { return c.categories.IsCategoryLoading(lawID) }
func (c *Coordinator) ConsecutiveDaysWithoutLaws() int { return c.pages.ConsecutiveDaysWithoutLaws() }

// IsAutoFetching reports whether the filter auto-load loop is running.
func (c *Coordinator) IsAutoFetching() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.autoFetching
}
