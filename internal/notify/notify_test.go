// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notify

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCenterRecordsInOrder(t *testing.T) {
	var buf strings.Builder
	c := NewCenter(&buf)

	c.AddError("could not load laws")
	c.AddSuccess("category updated")

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, LevelError, all[0].Level)
	assert.Equal(t, "could not load laws", all[0].Message)
	assert.Equal(t, LevelSuccess, all[1].Level)
	assert.NotEmpty(t, all[0].ID)
	assert.NotEqual(t, all[0].ID, all[1].ID)
	assert.False(t, all[0].At.IsZero())

	assert.Equal(t, []string{"could not load laws"}, c.Errors())
	assert.Equal(t, []string{"category updated"}, c.Successes())
	assert.Contains(t, buf.String(), "error   could not load laws\n")
	assert.Contains(t, buf.String(), "success category updated\n")
}

func TestCenterNilWriter(t *testing.T) {
	c := NewCenter(nil)
	c.AddError("boom")
	assert.Equal(t, []string{"boom"}, c.Errors())

	c.Clear()
	assert.Empty(t, c.All())
}

func TestCenterConcurrentUse(t *testing.T) {
	c := NewCenter(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.AddSuccess("ok")
		}()
	}
	wg.Wait()
	assert.Len(t, c.Successes(), 50)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.AddError("x")
		Discard.AddSuccess("y")
	})
}
