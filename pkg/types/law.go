// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for law-monitor: law records,
// review categories, display filters, and configuration.
package types

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO-8601 calendar date format used by the law services.
const DateLayout = "2006-01-02"

// noEndYear marks an end-of-validity date that means "in force indefinitely".
const noEndYear = 9999

// ProcessingStatus tracks a law through the summarization pipeline.
type ProcessingStatus string

const (
	StatusRaw        ProcessingStatus = "RAW"
	StatusProcessing ProcessingStatus = "PROCESSING"
	StatusProcessed  ProcessingStatus = "PROCESSED"
	StatusFailed     ProcessingStatus = "FAILED"
)

// CanTransitionTo reports whether the pipeline may move a law from s to next.
// The lifecycle is linear: RAW, then PROCESSING, then PROCESSED or FAILED.
func (s ProcessingStatus) CanTransitionTo(next ProcessingStatus) bool {
	switch s {
	case StatusRaw:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusProcessed || next == StatusFailed
	default:
		return false
	}
}

// Category is the human reviewer's verdict on a law. It is independent of
// the AI classification.
type Category string

const (
	CategoryOpen        Category = "OPEN"
	CategoryRelevant    Category = "RELEVANT"
	CategoryNotRelevant Category = "NOT_RELEVANT"
)

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryOpen, CategoryRelevant, CategoryNotRelevant:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q: use OPEN, RELEVANT, or NOT_RELEVANT", s)
}

// Citation is a passage of the law text quoted by a team relevancy assessment.
type Citation struct {
	// Chunk is the quoted text.
	Chunk string `json:"chunk" yaml:"chunk"`

	// IsFactual reports whether a verification pass found the chunk in the source.
	IsFactual bool `json:"is_factual" yaml:"is_factual"`

	// Reasoning explains why the chunk supports the assessment.
	Reasoning string `json:"reasoning" yaml:"reasoning"`
}

// TeamRelevancy is the automated assessment of a law for one team.
type TeamRelevancy struct {
	TeamName   string     `json:"team_name" yaml:"team_name"`
	IsRelevant bool       `json:"is_relevant" yaml:"is_relevant"`
	Reasoning  string     `json:"reasoning" yaml:"reasoning"`
	Citations  []Citation `json:"citations,omitempty" yaml:"citations,omitempty"`

	// Error is set when the assessment for this team failed. The other
	// teams' assessments remain valid.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Law is a processed legal-act summary as served by the law query service.
type Law struct {
	// ID is the stable file identifier shared by every cache that holds the law.
	ID string `json:"file_id" yaml:"file_id"`

	Title   string `json:"title" yaml:"title"`
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Celex   string `json:"celex,omitempty" yaml:"celex,omitempty"`

	PublicationDate  string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`
	DiscoveryDate    string `json:"discovery_date,omitempty" yaml:"discovery_date,omitempty"`
	DocumentDate     string `json:"document_date,omitempty" yaml:"document_date,omitempty"`
	EffectDate       string `json:"effect_date,omitempty" yaml:"effect_date,omitempty"`
	EndValidityDate  string `json:"end_validity_date,omitempty" yaml:"end_validity_date,omitempty"`
	NotificationDate string `json:"notification_date,omitempty" yaml:"notification_date,omitempty"`

	Status   ProcessingStatus `json:"status" yaml:"status"`
	Category Category         `json:"category" yaml:"category"`

	TeamRelevancies []TeamRelevancy `json:"team_relevancy_classification,omitempty" yaml:"team_relevancy_classification,omitempty"`

	EurovocDescriptors []string `json:"eurovoc_descriptors,omitempty" yaml:"eurovoc_descriptors,omitempty"`
	DocumentType       string   `json:"document_type,omitempty" yaml:"document_type,omitempty"`
	JournalSeries      string   `json:"journal_series,omitempty" yaml:"journal_series,omitempty"`
	Departments        []string `json:"departments,omitempty" yaml:"departments,omitempty"`
}

// ReviewCategory returns the law's category, treating an unset value as OPEN.
func (l Law) ReviewCategory() Category {
	if l.Category == "" {
		return CategoryOpen
	}
	return l.Category
}

// LikelyRelevant reports whether any team assessment flagged the law as
// relevant. Failed assessments do not count.
func (l Law) LikelyRelevant() bool {
	for _, tr := range l.TeamRelevancies {
		if tr.IsRelevant && tr.Error == "" {
			return true
		}
	}
	return false
}

// BucketDate is the date a law is indexed under: the publication date when
// known, otherwise the discovery date.
func (l Law) BucketDate() string {
	if l.PublicationDate != "" {
		return l.PublicationDate
	}
	return l.DiscoveryDate
}

// EndValidity returns the parsed end-of-validity date. It reports false when
// the date is missing, malformed, or the year-9999 "no end date" sentinel.
func (l Law) EndValidity() (time.Time, bool) {
	t, ok := parseDate(l.EndValidityDate)
	if !ok || t.Year() >= noEndYear {
		return time.Time{}, false
	}
	return t, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, dateOnly(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dateOnly cuts a timestamp down to its date part. Services sometimes send
// full timestamps where only the day matters.
func dateOnly(s string) string {
	if len(s) > len(DateLayout) {
		return s[:len(DateLayout)]
	}
	return s
}

// SortByDateAndStatus orders laws newest first by bucket date. Ties put
// processed laws ahead of the rest and then fall back to the file id.
func SortByDateAndStatus(laws []Law) {
	sort.SliceStable(laws, func(i, j int) bool {
		di, dj := laws[i].BucketDate(), laws[j].BucketDate()
		if di != dj {
			return di > dj
		}
		pi, pj := laws[i].Status == StatusProcessed, laws[j].Status == StatusProcessed
		if pi != pj {
			return pi
		}
		return laws[i].ID < laws[j].ID
	})
}

// IndexByID returns the position of the law with the given id, or -1.
func IndexByID(laws []Law, id string) int {
	for i := range laws {
		if laws[i].ID == id {
			return i
		}
	}
	return -1
}
