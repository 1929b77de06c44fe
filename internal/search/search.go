// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search runs one of the mutually exclusive law searches (title,
// EuroVoc descriptors, document type, journal series, department) and holds
// the transient query state for display.
package search

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pdiddy/law-monitor/internal/flight"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// Service runs searches against the law query service.
type Service interface {
	SearchLawsByTitle(ctx context.Context, title string) ([]types.Law, error)
	SearchLawsByEurovoc(ctx context.Context, descriptors []string) ([]types.Law, error)
	SearchLawsByDocumentType(ctx context.Context, docType string) ([]types.Law, error)
	SearchLawsByJournalSeries(ctx context.Context, series string) ([]types.Law, error)
	SearchLawsByDepartment(ctx context.Context, department string) ([]types.Law, error)
}

// Request is one search. Descriptors is used by EUROVOC searches, Text by
// every other type.
type Request struct {
	Type        types.SearchType `json:"type" yaml:"type"`
	Text        string           `json:"text,omitempty" yaml:"text,omitempty"`
	Descriptors []string         `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`
}

// Normalize trims the input and drops blank descriptors.
func (r Request) Normalize() Request {
	r.Text = strings.TrimSpace(r.Text)
	var kept []string
	for _, d := range r.Descriptors {
		if d = strings.TrimSpace(d); d != "" {
			kept = append(kept, d)
		}
	}
	r.Descriptors = kept
	return r
}

// IsEmpty reports whether the normalized request has no input for its type.
func (r Request) IsEmpty() bool {
	n := r.Normalize()
	if n.Type == types.SearchEurovoc {
		return len(n.Descriptors) == 0
	}
	return n.Text == ""
}

// Label is the human-readable form of the request shown next to results.
func (r Request) Label() string {
	n := r.Normalize()
	switch n.Type {
	case types.SearchTitle:
		return n.Text
	case types.SearchEurovoc:
		return "EuroVoc: " + strings.Join(n.Descriptors, ", ")
	case types.SearchDocumentType:
		return "Document type: " + n.Text
	case types.SearchJournalSeries:
		return "Journal series: " + n.Text
	case types.SearchDepartment:
		return "Department: " + n.Text
	}
	return n.Text
}

func (r Request) key() string {
	return string(r.Type) + "\x00" + r.Text + "\x00" + strings.Join(r.Descriptors, "\x00")
}

// Store executes searches and tracks the in-flight and query state. It is
// safe for concurrent use; identical overlapping searches share one call.
type Store struct {
	svc    Service
	notify notify.Sink
	log    io.Writer

	flights flight.Group[[]types.Law]

	mu        sync.Mutex
	searching int
	query     string
	lastType  types.SearchType
}

// New returns a Store. A nil sink discards notifications and a nil log
// discards warnings.
func New(svc Service, sink notify.Sink, log io.Writer) *Store {
	if sink == nil {
		sink = notify.Discard
	}
	if log == nil {
		log = io.Discard
	}
	return &Store{svc: svc, notify: sink, log: log}
}

// SearchByTitle searches law titles. Blank input returns no laws without a
// service call.
func (s *Store) SearchByTitle(ctx context.Context, title string) []types.Law {
	return s.Search(ctx, Request{Type: types.SearchTitle, Text: title})
}

// SearchByEurovoc searches by EuroVoc descriptors. At least one non-blank
// descriptor is required.
func (s *Store) SearchByEurovoc(ctx context.Context, descriptors []string) []types.Law {
	return s.Search(ctx, Request{Type: types.SearchEurovoc, Descriptors: descriptors})
}

// SearchByDocumentType searches by document type.
func (s *Store) SearchByDocumentType(ctx context.Context, docType string) []types.Law {
	return s.Search(ctx, Request{Type: types.SearchDocumentType, Text: docType})
}

// SearchByJournalSeries searches by journal series.
func (s *Store) SearchByJournalSeries(ctx context.Context, series string) []types.Law {
	return s.Search(ctx, Request{Type: types.SearchJournalSeries, Text: series})
}

// SearchByDepartment searches by department.
func (s *Store) SearchByDepartment(ctx context.Context, department string) []types.Law {
	return s.Search(ctx, Request{Type: types.SearchDepartment, Text: department})
}

// Search validates and runs req. Invalid input returns an empty result
// without touching any state. A service failure is logged and reported to
// the notification sink once, however many identical searches shared the
// call, and every waiting caller gets an empty result. A caller whose ctx
// ends first gets an empty result without a report. Search never fails.
func (s *Store) Search(ctx context.Context, req Request) []types.Law {
	req = req.Normalize()
	if req.IsEmpty() {
		return []types.Law{}
	}

	s.mu.Lock()
	s.searching++
	s.query = req.Label()
	s.lastType = req.Type
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.searching--
		s.mu.Unlock()
	}()

	laws, err := s.flights.Do(ctx, req.key(), func(ctx context.Context) ([]types.Law, error) {
		laws, err := s.run(ctx, req)
		if err != nil {
			fmt.Fprintf(s.log, "warning: %s search %q failed: %v\n", strings.ToLower(string(req.Type)), req.Label(), err)
			s.notify.AddError(fmt.Sprintf("Search failed: %s", req.Label()))
		}
		return laws, err
	})
	if err != nil {
		return []types.Law{}
	}

	out := make([]types.Law, len(laws))
	copy(out, laws)
	return out
}

func (s *Store) run(ctx context.Context, req Request) ([]types.Law, error) {
	var (
		laws []types.Law
		err  error
	)
	switch req.Type {
	case types.SearchTitle:
		laws, err = s.svc.SearchLawsByTitle(ctx, req.Text)
	case types.SearchEurovoc:
		laws, err = s.svc.SearchLawsByEurovoc(ctx, req.Descriptors)
	case types.SearchDocumentType:
		laws, err = s.svc.SearchLawsByDocumentType(ctx, req.Text)
	case types.SearchJournalSeries:
		laws, err = s.svc.SearchLawsByJournalSeries(ctx, req.Text)
	case types.SearchDepartment:
		laws, err = s.svc.SearchLawsByDepartment(ctx, req.Text)
	default:
		return nil, fmt.Errorf("unknown search type %q", req.Type)
	}
	if err != nil {
		return nil, err
	}
	return laws, nil
}

// IsSearching reports whether a search is in flight.
func (s *Store) IsSearching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searching > 0
}

// Query returns the label of the last submitted search, or "" after Reset.
func (s *Store) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// LastType returns the type of the last submitted search.
func (s *Store) LastType() types.SearchType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastType
}

// Reset clears the stored query text. Results are owned by the display
// store and are not touched.
func (s *Store) Reset() {
	s.mu.Lock()
	s.query = ""
	s.mu.Unlock()
}
