// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lawdata

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/law-monitor/internal/lawtest"
	"github.com/pdiddy/law-monitor/pkg/types"
)

func day(s string) time.Time {
	t, _ := types.ParseDate(s)
	return t
}

func TestBoundsForEmpty(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := BoundsFor(nil, now)
	assert.Equal(t, now, b.First)
	assert.Equal(t, now, b.Last)
	assert.NotNil(t, b.Disabled)
	assert.Empty(t, b.Disabled)
}

func TestBoundsForGaps(t *testing.T) {
	b := BoundsFor([]string{"2024-01-01", "2024-01-02", "2024-01-05", "garbage"}, time.Now())
	assert.Equal(t, day("2024-01-01"), b.First)
	assert.Equal(t, day("2024-01-05"), b.Last)
	assert.Equal(t, []time.Time{day("2024-01-03"), day("2024-01-04")}, b.Disabled)
}

func TestBoundsForSingleDate(t *testing.T) {
	b := BoundsFor([]string{"2024-01-01", "2024-01-01"}, time.Now())
	assert.Equal(t, b.First, b.Last)
	assert.Empty(t, b.Disabled)
}

func TestDatePickerBoundsUsesCache(t *testing.T) {
	s := New(lawtest.NewService(
		lawtest.Law("a", "2024-01-01"),
		lawtest.Law("b", "2024-01-03"),
	), nil, nil, nil)
	now := time.Now()

	before := s.DatePickerBounds(now)
	assert.Equal(t, now, before.First, "nothing cached yet")

	s.FetchAvailableDates(context.Background())
	after := s.DatePickerBounds(now)
	assert.Equal(t, day("2024-01-01"), after.First)
	assert.Equal(t, day("2024-01-03"), after.Last)
	assert.Equal(t, []time.Time{day("2024-01-02")}, after.Disabled)
}
