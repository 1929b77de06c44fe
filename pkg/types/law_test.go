// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ProcessingStatus
		want     bool
	}{
		{StatusRaw, StatusProcessing, true},
		{StatusRaw, StatusProcessed, false},
		{StatusProcessing, StatusProcessed, true},
		{StatusProcessing, StatusFailed, true},
		{StatusProcessing, StatusRaw, false},
		{StatusProcessed, StatusProcessing, false},
		{StatusFailed, StatusProcessing, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("NOT_RELEVANT")
	require.NoError(t, err)
	assert.Equal(t, CategoryNotRelevant, c)

	_, err = ParseCategory("maybe")
	assert.ErrorContains(t, err, "unknown category")
}

func TestReviewCategoryDefaultsToOpen(t *testing.T) {
	assert.Equal(t, CategoryOpen, Law{}.ReviewCategory())
	assert.Equal(t, CategoryRelevant, Law{Category: CategoryRelevant}.ReviewCategory())
}

func TestLikelyRelevant(t *testing.T) {
	tests := []struct {
		name  string
		teams []TeamRelevancy
		want  bool
	}{
		{"unclassified", nil, false},
		{"no team flagged", []TeamRelevancy{{TeamName: "Tax"}, {TeamName: "Legal"}}, false},
		{"one team flagged", []TeamRelevancy{{TeamName: "Tax"}, {TeamName: "Legal", IsRelevant: true}}, true},
		{"failed assessment ignored", []TeamRelevancy{{TeamName: "Tax", IsRelevant: true, Error: "timeout"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Law{TeamRelevancies: tt.teams}.LikelyRelevant())
		})
	}
}

func TestBucketDatePrefersPublication(t *testing.T) {
	assert.Equal(t, "2024-03-01", Law{PublicationDate: "2024-03-01", DiscoveryDate: "2024-03-05"}.BucketDate())
	assert.Equal(t, "2024-03-05", Law{DiscoveryDate: "2024-03-05"}.BucketDate())
}

func TestEndValidity(t *testing.T) {
	_, ok := Law{EndValidityDate: "9999-12-31"}.EndValidity()
	assert.False(t, ok, "year 9999 means in force indefinitely")

	_, ok = Law{}.EndValidity()
	assert.False(t, ok)

	_, ok = Law{EndValidityDate: "soon"}.EndValidity()
	assert.False(t, ok)

	end, ok := Law{EndValidityDate: "2030-06-30T00:00:00Z"}.EndValidity()
	require.True(t, ok)
	assert.Equal(t, "2030-06-30", FormatDate(end))
}

func TestSortByDateAndStatus(t *testing.T) {
	laws := []Law{
		{ID: "b", PublicationDate: "2024-01-01", Status: StatusProcessed},
		{ID: "c", PublicationDate: "2024-01-02", Status: StatusRaw},
		{ID: "a", PublicationDate: "2024-01-02", Status: StatusRaw},
		{ID: "d", PublicationDate: "2024-01-02", Status: StatusProcessed},
		{ID: "e", DiscoveryDate: "2024-01-03"},
	}
	SortByDateAndStatus(laws)

	ids := make([]string, len(laws))
	for i, l := range laws {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"e", "d", "a", "c", "b"}, ids)
}

func TestIndexByID(t *testing.T) {
	laws := []Law{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, IndexByID(laws, "b"))
	assert.Equal(t, -1, IndexByID(laws, "z"))
}
