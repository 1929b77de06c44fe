// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package category

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/law-monitor/internal/lawdata"
	"github.com/pdiddy/law-monitor/internal/lawtest"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// shown is a minimal displayed collection keyed by law id.
type shown struct {
	mu      sync.Mutex
	byID    map[string]types.Category
	applied []types.Category
}

func newShown(pairs map[string]types.Category) *shown {
	return &shown{byID: pairs}
}

func (s *shown) bindings() Bindings {
	return Bindings{
		Current: func(id string) (types.Category, bool) {
			s.mu.Lock()
			defer s.mu.Unlock()
			c, ok := s.byID[id]
			return c, ok
		},
		Apply: func(id string, c types.Category) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.byID[id] = c
			s.applied = append(s.applied, c)
		},
	}
}

func (s *shown) get(id string) types.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byID[id]
}

func setup(t *testing.T) (*Store, *lawtest.Service, *notify.Center) {
	t.Helper()
	svc := lawtest.NewService(lawtest.Law("a", "2024-01-02"), lawtest.Law("b", "2024-01-03"))
	center := notify.NewCenter(nil)
	data := lawdata.New(svc, svc, center, nil)
	return New(data, center, nil), svc, center
}

func TestUpdateLawCategorySuccess(t *testing.T) {
	s, svc, center := setup(t)
	view := newShown(map[string]types.Category{"a": types.CategoryOpen})

	ok := s.UpdateLawCategory(context.Background(), "a", types.CategoryRelevant, view.bindings())
	require.True(t, ok)
	assert.Equal(t, types.CategoryRelevant, view.get("a"))
	assert.Equal(t, []types.Category{types.CategoryRelevant}, view.applied)

	stored, _ := svc.Law("a")
	assert.Equal(t, types.CategoryRelevant, stored.Category)
	assert.Equal(t, []string{"Law marked as relevant."}, center.Successes())
	assert.Empty(t, center.Errors())
}

func TestUpdateLawCategoryRollsBack(t *testing.T) {
	for _, before := range []types.Category{types.CategoryOpen, types.CategoryRelevant, types.CategoryNotRelevant} {
		t.Run(string(before), func(t *testing.T) {
			s, svc, center := setup(t)
			svc.Fail("UpdateLawCategory")
			view := newShown(map[string]types.Category{"a": before})

			ok := s.UpdateLawCategory(context.Background(), "a", types.CategoryNotRelevant, view.bindings())
			assert.False(t, ok)
			assert.Equal(t, before, view.get("a"), "displayed category must equal the pre-call value")
			assert.Equal(t, []types.Category{types.CategoryNotRelevant, before}, view.applied)
			assert.Equal(t, []string{"Could not mark law as not relevant."}, center.Errors())
			assert.Empty(t, center.Successes())
		})
	}
}

func TestUpdateLawCategoryUnknownDefaultsToOpen(t *testing.T) {
	s, svc, _ := setup(t)
	svc.Fail("UpdateLawCategory")
	view := newShown(map[string]types.Category{})

	s.UpdateLawCategory(context.Background(), "b", types.CategoryRelevant, view.bindings())
	assert.Equal(t, types.CategoryOpen, view.get("b"))
}

func TestUpdateLawCategoryUsesRollbackBinding(t *testing.T) {
	s, svc, _ := setup(t)
	svc.Fail("UpdateLawCategory")
	view := newShown(map[string]types.Category{"a": types.CategoryRelevant})

	var rolledBack []types.Category
	b := view.bindings()
	b.Rollback = func(id string, c types.Category) { rolledBack = append(rolledBack, c) }

	s.UpdateLawCategory(context.Background(), "a", types.CategoryOpen, b)
	assert.Equal(t, []types.Category{types.CategoryRelevant}, rolledBack)
	assert.Equal(t, types.CategoryOpen, view.get("a"), "Apply is not used to undo when Rollback is set")
}

func TestUpdateLawCategoryLogsWarning(t *testing.T) {
	svc := lawtest.NewService(lawtest.Law("a", "2024-01-02"))
	svc.Fail("UpdateLawCategory")
	var log strings.Builder
	s := New(lawdata.New(svc, svc, nil, nil), nil, &log)

	s.UpdateLawCategory(context.Background(), "a", types.CategoryRelevant, Bindings{})
	assert.Contains(t, log.String(), "warning: category update for a reverted")
}

func TestIsCategoryLoading(t *testing.T) {
	svc := lawtest.NewService(lawtest.Law("a", "2024-01-02"))
	svc.Gate = make(chan struct{})
	s := New(lawdata.New(svc, svc, nil, nil), nil, nil)
	view := newShown(map[string]types.Category{"a": types.CategoryOpen})

	done := make(chan bool)
	go func() {
		done <- s.UpdateLawCategory(context.Background(), "a", types.CategoryRelevant, view.bindings())
	}()

	require.Eventually(t, func() bool { return s.IsCategoryLoading("a") }, time.Second, time.Millisecond)
	assert.False(t, s.IsCategoryLoading("b"))
	assert.Equal(t, types.CategoryRelevant, view.get("a"), "applied before the mutation returns")

	close(svc.Gate)
	assert.True(t, <-done)
	assert.False(t, s.IsCategoryLoading("a"))
}

func TestUpdateLawCategoryRefusesOverlappingSameID(t *testing.T) {
	for _, firstFails := range []bool{false, true} {
		name := "first succeeds"
		if firstFails {
			name = "first fails"
		}
		t.Run(name, func(t *testing.T) {
			svc := lawtest.NewService(lawtest.Law("a", "2024-01-02"))
			if firstFails {
				svc.Fail("UpdateLawCategory")
			}
			svc.Gate = make(chan struct{})
			center := notify.NewCenter(nil)
			var log strings.Builder
			s := New(lawdata.New(svc, svc, nil, nil), center, &log)
			view := newShown(map[string]types.Category{"a": types.CategoryOpen})

			done := make(chan bool, 1)
			go func() {
				done <- s.UpdateLawCategory(context.Background(), "a", types.CategoryRelevant, view.bindings())
			}()
			require.Eventually(t, func() bool { return s.IsCategoryLoading("a") }, time.Second, time.Millisecond)

			assert.False(t, s.UpdateLawCategory(context.Background(), "a", types.CategoryNotRelevant, view.bindings()))
			assert.Equal(t, types.CategoryRelevant, view.get("a"), "the refused update is never applied")
			assert.True(t, s.IsCategoryLoading("a"))

			close(svc.Gate)
			assert.Equal(t, !firstFails, <-done)
			assert.False(t, s.IsCategoryLoading("a"))
			assert.Equal(t, 1, svc.CallCount("UpdateLawCategory"))

			want := types.CategoryRelevant
			if firstFails {
				want = types.CategoryOpen
			}
			assert.Equal(t, want, view.get("a"))
			assert.LessOrEqual(t, len(center.Errors())+len(center.Successes()), 1, "the refused update does not notify")
			assert.Contains(t, log.String(), "ignored: previous update still running")
		})
	}
}

func TestOptimisticGeneric(t *testing.T) {
	values := map[int]string{1: "draft"}
	op := Optimistic[int, string]{
		Read:    func(k int) (string, bool) { v, ok := values[k]; return v, ok },
		Apply:   func(k int, v string) { values[k] = v },
		Default: "none",
	}

	err := op.Run(context.Background(), 1, "final", func(context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, "final", values[1])

	boom := errors.New("boom")
	err = op.Run(context.Background(), 1, "broken", func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "final", values[1])

	err = op.Run(context.Background(), 2, "new", func(context.Context) error { return boom })
	assert.Error(t, err)
	assert.Equal(t, "none", values[2])
}
