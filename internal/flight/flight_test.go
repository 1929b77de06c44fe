// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package flight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSharesOneCall(t *testing.T) {
	var g Group[int]
	var calls atomic.Int32
	gate := make(chan struct{})
	started := make(chan struct{})

	fn := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-gate
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 3)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = g.Do(context.Background(), "k", fn)
		}(i)
	}
	<-started
	// Let the other callers join the running call.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, []int{42, 42, 42}, results)
}

func TestDoCallerCancelDoesNotFailOthers(t *testing.T) {
	var g Group[string]
	gate := make(chan struct{})
	started := make(chan struct{})
	var sawCancel atomic.Bool

	fn := func(ctx context.Context) (string, error) {
		close(started)
		<-gate
		sawCancel.Store(ctx.Err() != nil)
		return "done", nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := g.Do(ctxA, "k", fn)
		errA <- err
	}()
	<-started

	resB := make(chan string, 1)
	errB := make(chan error, 1)
	go func() {
		v, err := g.Do(context.Background(), "k", fn)
		resB <- v
		errB <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)

	close(gate)
	require.NoError(t, <-errB)
	assert.Equal(t, "done", <-resB)
	assert.False(t, sawCancel.Load(), "the shared call must not see a caller's cancellation")
}

func TestDoReturnsSharedError(t *testing.T) {
	var g Group[[]string]
	boom := errors.New("boom")

	v, err := g.Do(context.Background(), "k", func(context.Context) ([]string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, v)
}

func TestDoCancelledBeforeStart(t *testing.T) {
	var g Group[int]
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := g.Do(ctx, "k", func(context.Context) (int, error) { called = true; return 1, nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
