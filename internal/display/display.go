// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display holds what is currently on screen: the display mode, the
// unfiltered law collection of that mode, the category and AI filters, and
// the selected date range. The visible laws are derived from these on every
// read and never cached.
package display

import (
	"sync"

	"github.com/pdiddy/law-monitor/pkg/types"
)

// LawPatch is a partial update of a law. Nil fields are left unchanged.
type LawPatch struct {
	Category *types.Category
	Status   *types.ProcessingStatus
}

// Apply returns a copy of l with the patch merged in.
func (p LawPatch) Apply(l types.Law) types.Law {
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Status != nil {
		l.Status = *p.Status
	}
	return l
}

// Ticket orders collection replacements. Take one with Begin before the
// fetch whose result will replace the collection.
type Ticket uint64

// Store is the display state. It is safe for concurrent use.
type Store struct {
	mu             sync.Mutex
	mode           types.DisplayMode
	laws           []types.Law
	categoryFilter types.CategoryFilter
	aiFilter       types.AIFilter
	dateRange      types.DateRange
	dateMessage    string

	issued  Ticket
	applied Ticket
}

// New returns a Store in DEFAULT mode with both filters at ALL.
func New() *Store {
	return &Store{
		mode:           types.ModeDefault,
		laws:           []types.Law{},
		categoryFilter: types.CategoryFilterAll,
		aiFilter:       types.AIFilterAll,
	}
}

// Filter returns the laws passing both filters, preserving order. ALL on
// either axis passes everything on that axis.
func Filter(laws []types.Law, cf types.CategoryFilter, af types.AIFilter) []types.Law {
	out := make([]types.Law, 0, len(laws))
	for _, l := range laws {
		if cf.Matches(l) && af.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// DisplayedLaws returns the current collection with the active filters
// applied.
func (s *Store) DisplayedLaws() []types.Law {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter(s.laws, s.categoryFilter, s.aiFilter)
}

// Laws returns the unfiltered collection.
func (s *Store) Laws() []types.Law {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Law{}, s.laws...)
}

// Begin issues a ticket for a replacement that is about to be fetched.
func (s *Store) Begin() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Replace switches to mode and replaces the whole collection with laws. A
// replacement whose ticket is older than one already applied is dropped and
// Replace reports false. The zero ticket always applies.
func (s *Store) Replace(t Ticket, mode types.DisplayMode, laws []types.Law) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t != 0 {
		if t < s.applied {
			return false
		}
		s.applied = t
	}
	s.mode = mode
	s.laws = append([]types.Law{}, laws...)
	return true
}

// SetLaws replaces the collection without changing the mode.
func (s *Store) SetLaws(laws []types.Law) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.laws = append([]types.Law{}, laws...)
}

// UpdateLawInCollection merges patch into the law with the given id. It does
// nothing when the law is not in the collection.
func (s *Store) UpdateLawInCollection(lawID string, patch LawPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := types.IndexByID(s.laws, lawID); i >= 0 {
		s.laws[i] = patch.Apply(s.laws[i])
	}
}

// DisplayedCategory returns the category of a visible law.
func (s *Store) DisplayedCategory(lawID string) (types.Category, bool) {
	for _, l := range s.DisplayedLaws() {
		if l.ID == lawID {
			return l.ReviewCategory(), true
		}
	}
	return "", false
}

func (s *Store) Mode() types.DisplayMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Store) SetMode(m types.DisplayMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}

func (s *Store) CategoryFilter() types.CategoryFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryFilter
}

func (s *Store) SetCategoryFilter(f types.CategoryFilter) {
	if f == "" {
		f = types.CategoryFilterAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryFilter = f
}

func (s *Store) AIFilter() types.AIFilter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiFilter
}

func (s *Store) SetAIFilter(f types.AIFilter) {
	if f == "" {
		f = types.AIFilterAll
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aiFilter = f
}

func (s *Store) DateRange() types.DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dateRange
}

func (s *Store) SetDateRange(r types.DateRange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateRange = r
}

// DateMessage is the inline validation message for the selected range.
// Empty means the range is fine.
func (s *Store) DateMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dateMessage
}

func (s *Store) SetDateMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dateMessage = msg
}
