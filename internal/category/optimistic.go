// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package category

import "context"

// Optimistic applies a local change to the value held for key before a
// remote call confirms it, and restores the previously observed value when
// the call fails.
type Optimistic[K comparable, V any] struct {
	// Read returns the current local value and whether one is known.
	Read func(key K) (V, bool)
	// Apply installs v as the local value.
	Apply func(key K, v V)
	// Rollback reinstalls the value observed before Apply. When nil, Apply
	// is used.
	Rollback func(key K, v V)
	// Default stands in for the previous value when Read knows none.
	Default V
}

// Run reads the previous value, applies next locally, and calls commit. When
// commit fails the previous value is restored and the error is returned.
func (o Optimistic[K, V]) Run(ctx context.Context, key K, next V, commit func(context.Context) error) error {
	prev := o.Default
	if o.Read != nil {
		if v, ok := o.Read(key); ok {
			prev = v
		}
	}
	if o.Apply != nil {
		o.Apply(key, next)
	}

	err := commit(ctx)
	if err == nil {
		return nil
	}

	undo := o.Rollback
	if undo == nil {
		undo = o.Apply
	}
	if undo != nil {
		undo(key, prev)
	}
	return err
}
