// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/law-monitor/internal/lawtest"
	"github.com/pdiddy/law-monitor/pkg/types"
)

func ids(laws []types.Law) []string {
	out := []string{}
	for _, l := range laws {
		out = append(out, l.ID)
	}
	return out
}

// mixed covers every category crossed with both AI outcomes, plus an
// unclassified law and one whose only relevant assessment failed.
func mixed() []types.Law {
	failed := lawtest.Law("failed", "2024-01-01")
	failed.TeamRelevancies = []types.TeamRelevancy{{TeamName: "Tax", IsRelevant: true, Error: "timeout"}}

	return []types.Law{
		lawtest.Law("open", "2024-01-01"),
		lawtest.Relevant(lawtest.Law("open-ai", "2024-01-01")),
		lawtest.WithCategory(lawtest.Law("rel", "2024-01-01"), types.CategoryRelevant),
		lawtest.Relevant(lawtest.WithCategory(lawtest.Law("rel-ai", "2024-01-01"), types.CategoryRelevant)),
		lawtest.WithCategory(lawtest.Law("not", "2024-01-01"), types.CategoryNotRelevant),
		lawtest.Relevant(lawtest.WithCategory(lawtest.Law("not-ai", "2024-01-01"), types.CategoryNotRelevant)),
		lawtest.WithCategory(lawtest.Law("blank", "2024-01-01"), ""),
		failed,
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		cf   types.CategoryFilter
		af   types.AIFilter
		want []string
	}{
		{types.CategoryFilterAll, types.AIFilterAll, []string{"open", "open-ai", "rel", "rel-ai", "not", "not-ai", "blank", "failed"}},
		{types.CategoryFilterOpen, types.AIFilterAll, []string{"open", "open-ai", "blank", "failed"}},
		{types.CategoryFilterRelevant, types.AIFilterAll, []string{"rel", "rel-ai"}},
		{types.CategoryFilterNotRelevant, types.AIFilterAll, []string{"not", "not-ai"}},
		{types.CategoryFilterAll, types.AIFilterLikelyRelevant, []string{"open-ai", "rel-ai", "not-ai"}},
		{types.CategoryFilterAll, types.AIFilterLikelyIrrelevant, []string{"open", "rel", "not", "blank", "failed"}},
		{types.CategoryFilterNotRelevant, types.AIFilterLikelyRelevant, []string{"not-ai"}},
		{types.CategoryFilterRelevant, types.AIFilterLikelyIrrelevant, []string{"rel"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.cf)+"/"+string(tt.af), func(t *testing.T) {
			got := Filter(mixed(), tt.cf, tt.af)
			assert.Equal(t, tt.want, ids(got))
			for _, l := range got {
				assert.True(t, tt.cf.Matches(l) && tt.af.Matches(l))
			}
		})
	}
}

func TestFilterEmpty(t *testing.T) {
	got := Filter(nil, types.CategoryFilterRelevant, types.AIFilterAll)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDisplayedLawsRecomputedOnRead(t *testing.T) {
	s := New()
	s.Replace(0, types.ModeDefault, mixed())
	s.SetCategoryFilter(types.CategoryFilterRelevant)
	require.Equal(t, []string{"rel", "rel-ai"}, ids(s.DisplayedLaws()))

	relevant := types.CategoryRelevant
	s.UpdateLawInCollection("open", LawPatch{Category: &relevant})
	assert.Equal(t, []string{"open", "rel", "rel-ai"}, ids(s.DisplayedLaws()))

	s.SetCategoryFilter("")
	assert.Equal(t, types.CategoryFilterAll, s.CategoryFilter())
	assert.Len(t, s.DisplayedLaws(), 8)
}

func TestReplaceDiscardsPreviousMode(t *testing.T) {
	s := New()
	s.Replace(0, types.ModeSearch, []types.Law{lawtest.Law("s1", "2024-01-01"), lawtest.Law("shared", "2024-01-02")})
	s.Replace(0, types.ModeDate, []types.Law{lawtest.Law("shared", "2024-01-02"), lawtest.Law("d1", "2024-01-03")})

	assert.Equal(t, types.ModeDate, s.Mode())
	assert.Equal(t, []string{"shared", "d1"}, ids(s.DisplayedLaws()))
}

func TestReplaceDropsStaleTickets(t *testing.T) {
	s := New()
	early := s.Begin()
	late := s.Begin()

	require.True(t, s.Replace(late, types.ModeSearch, []types.Law{lawtest.Law("fresh", "2024-01-01")}))
	assert.False(t, s.Replace(early, types.ModeDate, []types.Law{lawtest.Law("stale", "2024-01-01")}))

	assert.Equal(t, types.ModeSearch, s.Mode())
	assert.Equal(t, []string{"fresh"}, ids(s.Laws()))
}

func TestReplaceInIssueOrder(t *testing.T) {
	s := New()
	first := s.Begin()
	second := s.Begin()

	assert.True(t, s.Replace(first, types.ModeDate, []types.Law{lawtest.Law("a", "2024-01-01")}))
	assert.True(t, s.Replace(second, types.ModeDefault, []types.Law{lawtest.Law("b", "2024-01-01")}))
	assert.Equal(t, []string{"b"}, ids(s.Laws()))
}

func TestUpdateLawInCollection(t *testing.T) {
	s := New()
	s.Replace(0, types.ModeDefault, mixed())
	before := s.Laws()

	notRelevant := types.CategoryNotRelevant
	failed := types.StatusFailed
	s.UpdateLawInCollection("open-ai", LawPatch{Category: &notRelevant, Status: &failed})
	s.UpdateLawInCollection("missing", LawPatch{Category: &notRelevant})

	after := s.Laws()
	require.Len(t, after, len(before))
	assert.Equal(t, types.CategoryNotRelevant, after[1].Category)
	assert.Equal(t, types.StatusFailed, after[1].Status)
	assert.Equal(t, before[1].TeamRelevancies, after[1].TeamRelevancies, "unpatched fields are kept")
	assert.Equal(t, types.CategoryOpen, before[1].Category, "earlier snapshots are not aliased")
}

func TestDisplayedCategory(t *testing.T) {
	s := New()
	s.Replace(0, types.ModeDefault, mixed())

	c, ok := s.DisplayedCategory("blank")
	assert.True(t, ok)
	assert.Equal(t, types.CategoryOpen, c)

	s.SetAIFilter(types.AIFilterLikelyRelevant)
	_, ok = s.DisplayedCategory("blank")
	assert.False(t, ok, "filtered-out laws are not displayed")
}

func TestDateState(t *testing.T) {
	s := New()
	r := types.DateRange{Start: "2024-01-01", End: "2024-01-31"}
	s.SetDateRange(r)
	s.SetDateMessage("No laws in the selected period.")

	assert.Equal(t, r, s.DateRange())
	assert.Equal(t, "No laws in the selected period.", s.DateMessage())
	assert.Equal(t, types.AIFilterAll, s.AIFilter())
}
