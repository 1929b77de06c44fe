// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
	"time"
)

// DisplayMode selects which strategy governs the visible law collection.
type DisplayMode string

const (
	ModeDefault DisplayMode = "DEFAULT"
	ModeDate    DisplayMode = "DATE"
	ModeSearch  DisplayMode = "SEARCH"
)

// CategoryFilter restricts the visible laws by review category.
type CategoryFilter string

const (
	CategoryFilterAll         CategoryFilter = "ALL"
	CategoryFilterOpen        CategoryFilter = "OPEN"
	CategoryFilterRelevant    CategoryFilter = "RELEVANT"
	CategoryFilterNotRelevant CategoryFilter = "NOT_RELEVANT"
)

// Matches reports whether a law passes the filter.
func (f CategoryFilter) Matches(l Law) bool {
	if f == CategoryFilterAll || f == "" {
		return true
	}
	return string(l.ReviewCategory()) == string(f)
}

// ParseCategoryFilter converts user input into a CategoryFilter.
func ParseCategoryFilter(s string) (CategoryFilter, error) {
	switch f := CategoryFilter(strings.ToUpper(s)); f {
	case "":
		return CategoryFilterAll, nil
	case CategoryFilterAll, CategoryFilterOpen, CategoryFilterRelevant, CategoryFilterNotRelevant:
		return f, nil
	}
	return "", fmt.Errorf("unknown category filter %q: use ALL, OPEN, RELEVANT, or NOT_RELEVANT", s)
}

// AIFilter restricts the visible laws by the automated team classification.
type AIFilter string

const (
	AIFilterAll              AIFilter = "ALL"
	AIFilterLikelyRelevant   AIFilter = "LIKELY_RELEVANT"
	AIFilterLikelyIrrelevant AIFilter = "LIKELY_IRRELEVANT"
)

// Matches reports whether a law passes the filter.
func (f AIFilter) Matches(l Law) bool {
	switch f {
	case AIFilterLikelyRelevant:
		return l.LikelyRelevant()
	case AIFilterLikelyIrrelevant:
		return !l.LikelyRelevant()
	default:
		return true
	}
}

// ParseAIFilter converts user input into an AIFilter.
func ParseAIFilter(s string) (AIFilter, error) {
	switch f := AIFilter(strings.ToUpper(s)); f {
	case "":
		return AIFilterAll, nil
	case AIFilterAll, AIFilterLikelyRelevant, AIFilterLikelyIrrelevant:
		return f, nil
	}
	return "", fmt.Errorf("unknown AI filter %q: use ALL, LIKELY_RELEVANT, or LIKELY_IRRELEVANT", s)
}

// CSVScope selects which laws the CSV export includes.
type CSVScope string

const (
	// ScopeAllHits exports every law the AI flagged for at least one team.
	ScopeAllHits CSVScope = "all_hits"
	// ScopeAllEvaluated exports every law a reviewer has categorized.
	ScopeAllEvaluated CSVScope = "all_evaluated"
)

// ParseCSVScope converts user input into a CSVScope.
func ParseCSVScope(s string) (CSVScope, error) {
	switch sc := CSVScope(strings.ToLower(strings.ReplaceAll(s, "-", "_"))); sc {
	case ScopeAllHits, ScopeAllEvaluated:
		return sc, nil
	}
	return "", fmt.Errorf("unknown export scope %q: use all-hits or all-evaluated", s)
}

// SearchType identifies one of the mutually exclusive search strategies.
type SearchType string

const (
	SearchTitle         SearchType = "TITLE"
	SearchEurovoc       SearchType = "EUROVOC"
	SearchDocumentType  SearchType = "DOCUMENT_TYPE"
	SearchJournalSeries SearchType = "JOURNAL_SERIES"
	SearchDepartment    SearchType = "DEPARTMENT"
)

// DateRange is an inclusive range of ISO calendar dates.
type DateRange struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Validate checks that both ends parse and Start is not after End.
func (r DateRange) Validate() error {
	start, ok := parseDate(r.Start)
	if !ok {
		return fmt.Errorf("invalid start date %q: want YYYY-MM-DD", r.Start)
	}
	end, ok := parseDate(r.End)
	if !ok {
		return fmt.Errorf("invalid end date %q: want YYYY-MM-DD", r.End)
	}
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s", r.Start, r.End)
	}
	return nil
}

// Contains reports whether the ISO date d falls inside the range. Timestamps
// on either side are compared by their date part. The range is assumed valid.
func (r DateRange) Contains(d string) bool {
	d = dateOnly(d)
	return d >= dateOnly(r.Start) && d <= dateOnly(r.End)
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO calendar date. Timestamps are truncated to their
// date part.
func ParseDate(s string) (time.Time, bool) {
	return parseDate(s)
}
