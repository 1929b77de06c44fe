// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flight coalesces identical concurrent calls on top of
// golang.org/x/sync/singleflight. The shared call is detached from any one
// caller's cancellation; each caller stops waiting when its own context is
// done.
package flight

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group runs at most one call per key at a time and hands its result to
// every caller that asked for the key while it ran. The zero value is ready
// to use.
type Group[T any] struct {
	g singleflight.Group
}

// Do runs fn once for all concurrent callers of key and returns its result.
//
// fn receives ctx stripped of its cancellation and deadline, so a caller
// that gives up does not fail the others. A call abandoned by every caller
// still runs to completion, bounded by the timeouts of the services it
// calls. When ctx is done before the result arrives, Do returns ctx.Err().
func (g *Group[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	detached := context.WithoutCancel(ctx)
	ch := g.g.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(T)
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
