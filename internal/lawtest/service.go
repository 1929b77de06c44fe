// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lawtest provides an in-memory law service and law builders for
// tests of the stores and the coordinator.
package lawtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/law-monitor/internal/lawapi"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// ErrUnavailable is returned by operations configured to fail.
var ErrUnavailable = errors.New("law service unavailable")

// Call records one service invocation.
type Call struct {
	Op   string
	Args []string
}

// Service is an in-memory law query and mutation service. Operation names
// listed in Fail return ErrUnavailable. It is safe for concurrent use.
type Service struct {
	mu    sync.Mutex
	laws  []types.Law
	calls []Call
	fail  map[string]bool

	// Gate, when set, is received from before each operation returns so
	// tests can hold calls in flight.
	Gate chan struct{}
}

// NewService returns a service holding laws.
func NewService(laws ...types.Law) *Service {
	return &Service{laws: append([]types.Law(nil), laws...), fail: map[string]bool{}}
}

// Fail makes the named operation return ErrUnavailable until Recover is called.
func (s *Service) Fail(op string) {
	s.mu.Lock()
	s.fail[op] = true
	s.mu.Unlock()
}

// Recover clears a Fail.
func (s *Service) Recover(op string) {
	s.mu.Lock()
	delete(s.fail, op)
	s.mu.Unlock()
}

// Add appends laws to the service.
func (s *Service) Add(laws ...types.Law) {
	s.mu.Lock()
	s.laws = append(s.laws, laws...)
	s.mu.Unlock()
}

// Law returns the stored copy of a law.
func (s *Service) Law(id string) (types.Law, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := types.IndexByID(s.laws, id); i >= 0 {
		return s.laws[i], true
	}
	return types.Law{}, false
}

// Calls returns the recorded invocations.
func (s *Service) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many times op was invoked.
func (s *Service) CallCount(op string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (s *Service) begin(op string, args ...string) error {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Op: op, Args: args})
	failing := s.fail[op]
	gate := s.Gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if failing {
		return fmt.Errorf("%s: %w", op, ErrUnavailable)
	}
	return nil
}

func (s *Service) match(keep func(types.Law) bool) []types.Law {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []types.Law
	for _, l := range s.laws {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// GetLawsByDateRange returns laws whose bucket date lies in [start, end].
func (s *Service) GetLawsByDateRange(ctx context.Context, start, end string) (lawapi.LawPage, error) {
	if err := s.begin("GetLawsByDateRange", start, end); err != nil {
		return lawapi.LawPage{}, err
	}
	laws := s.match(func(l types.Law) bool {
		d := l.BucketDate()
		return d != "" && (start == "" || d >= start) && (end == "" || d <= end)
	})
	return lawapi.LawPage{Laws: laws, Pagination: lawapi.Pagination{TotalItems: len(laws)}}, nil
}

// GetAllDatesWithLaws returns the distinct bucket dates, ascending.
func (s *Service) GetAllDatesWithLaws(ctx context.Context) ([]string, error) {
	if err := s.begin("GetAllDatesWithLaws"); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var dates []string
	for _, l := range s.match(func(types.Law) bool { return true }) {
		if d := l.BucketDate(); d != "" && !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// SearchLawsByTitle matches a case-insensitive title substring.
func (s *Service) SearchLawsByTitle(ctx context.Context, title string) ([]types.Law, error) {
	if err := s.begin("SearchLawsByTitle", title); err != nil {
		return nil, err
	}
	needle := strings.ToLower(title)
	return s.match(func(l types.Law) bool { return strings.Contains(strings.ToLower(l.Title), needle) }), nil
}

// SearchLawsByEurovoc matches laws carrying any descriptor.
func (s *Service) SearchLawsByEurovoc(ctx context.Context, descriptors []string) ([]types.Law, error) {
	if err := s.begin("SearchLawsByEurovoc", descriptors...); err != nil {
		return nil, err
	}
	return s.match(func(l types.Law) bool {
		for _, d := range l.EurovocDescriptors {
			for _, want := range descriptors {
				if d == want {
					return true
				}
			}
		}
		return false
	}), nil
}

// SearchLawsByDocumentType matches the document type exactly.
func (s *Service) SearchLawsByDocumentType(ctx context.Context, docType string) ([]types.Law, error) {
	if err := s.begin("SearchLawsByDocumentType", docType); err != nil {
		return nil, err
	}
	return s.match(func(l types.Law) bool { return l.DocumentType == docType }), nil
}

// SearchLawsByJournalSeries matches the journal series exactly.
func (s *Service) SearchLawsByJournalSeries(ctx context.Context, series string) ([]types.Law, error) {
	if err := s.begin("SearchLawsByJournalSeries", series); err != nil {
		return nil, err
	}
	return s.match(func(l types.Law) bool { return l.JournalSeries == series }), nil
}

// SearchLawsByDepartment matches laws assigned to the department.
func (s *Service) SearchLawsByDepartment(ctx context.Context, department string) ([]types.Law, error) {
	if err := s.begin("SearchLawsByDepartment", department); err != nil {
		return nil, err
	}
	return s.match(func(l types.Law) bool {
		for _, d := range l.Departments {
			if d == department {
				return true
			}
		}
		return false
	}), nil
}

// DownloadLawsCSV returns a minimal CSV of the matching laws.
func (s *Service) DownloadLawsCSV(ctx context.Context, scope types.CSVScope) (string, error) {
	if err := s.begin("DownloadLawsCSV", string(scope)); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("file_id,category\n")
	for _, l := range s.match(func(l types.Law) bool {
		if scope == types.ScopeAllHits {
			return l.LikelyRelevant()
		}
		return l.ReviewCategory() != types.CategoryOpen
	}) {
		fmt.Fprintf(&b, "%s,%s\n", l.ID, l.ReviewCategory())
	}
	return b.String(), nil
}

// UpdateLawCategory stores the new category.
func (s *Service) UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error {
	if err := s.begin("UpdateLawCategory", lawID, string(category)); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := types.IndexByID(s.laws, lawID)
	if i < 0 {
		return fmt.Errorf("law %s not found", lawID)
	}
	s.laws[i].Category = category
	return nil
}

// Law builds a processed law published on date.
func Law(id, date string) types.Law {
	return types.Law{
		ID:              id,
		Title:           "Law " + id,
		PublicationDate: date,
		Status:          types.StatusProcessed,
		Category:        types.CategoryOpen,
	}
}

// Relevant marks a law as flagged relevant for a team.
func Relevant(l types.Law) types.Law {
	l.TeamRelevancies = append(l.TeamRelevancies, types.TeamRelevancy{TeamName: "Compliance", IsRelevant: true})
	return l
}

// WithCategory sets a law's review category.
func WithCategory(l types.Law, c types.Category) types.Law {
	l.Category = c
	return l
}

// DaysAgo formats the date n days before now.
func DaysAgo(now time.Time, n int) string {
	return types.FormatDate(now.AddDate(0, 0, -n))
}

// Clock returns a fixed time source.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
