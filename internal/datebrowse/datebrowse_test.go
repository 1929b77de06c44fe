// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package datebrowse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/law-monitor/internal/lawdata"
	"github.com/pdiddy/law-monitor/internal/lawtest"
)

func setup(t *testing.T) (*Store, *lawtest.Service) {
	t.Helper()
	svc := lawtest.NewService(
		lawtest.Law("a", "2024-01-02"),
		lawtest.Law("b", "2024-01-02"),
		lawtest.Law("c", "2024-01-04"),
	)
	return New(lawdata.New(svc, svc, nil, nil)), svc
}

func TestFetchLawsForDateUsesCache(t *testing.T) {
	s, svc := setup(t)

	laws := s.FetchLawsForDateRange(context.Background(), "2024-01-01", "2024-01-31")
	require.Len(t, laws, 3)

	day := s.FetchLawsForDate(context.Background(), "2024-01-02")
	assert.Len(t, day, 2)
	assert.Equal(t, 1, svc.CallCount("GetLawsByDateRange"), "cached bucket must not refetch")
}

func TestFetchLawsForDateFetchesMissingDay(t *testing.T) {
	s, svc := setup(t)

	day := s.FetchLawsForDate(context.Background(), "2024-01-04")
	require.Len(t, day, 1)
	assert.Equal(t, "c", day[0].ID)

	calls := svc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"2024-01-04", "2024-01-04"}, calls[0].Args)
}

func TestFetchLawsForDateEmptyDay(t *testing.T) {
	s, _ := setup(t)

	day := s.FetchLawsForDate(context.Background(), "2024-01-03")
	assert.NotNil(t, day)
	assert.Empty(t, day)
}

func TestFetchLawsForDateRangeAlwaysFetches(t *testing.T) {
	s, svc := setup(t)

	s.FetchLawsForDateRange(context.Background(), "2024-01-01", "2024-01-03")
	s.FetchLawsForDateRange(context.Background(), "2024-01-01", "2024-01-03")
	assert.Equal(t, 2, svc.CallCount("GetLawsByDateRange"))
}

func TestFetchFailureYieldsEmpty(t *testing.T) {
	s, svc := setup(t)
	svc.Fail("GetLawsByDateRange")

	assert.Empty(t, s.FetchLawsForDateRange(context.Background(), "2024-01-01", "2024-01-03"))
	assert.Empty(t, s.FetchLawsForDate(context.Background(), "2024-01-02"))
}
