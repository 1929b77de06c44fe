// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package category changes a law's review category optimistically: the new
// value is shown before the mutation service confirms it and reverted when
// the mutation fails.
package category

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/law-monitor/internal/lawdata"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// Mutator performs the remote category change and tracks which ids are in
// flight. The data store implements it; a second mutation for an id that is
// in flight must fail with lawdata.ErrUpdateInFlight.
type Mutator interface {
	UpdateLawCategory(ctx context.Context, lawID string, category types.Category) error
	IsUpdating(lawID string) bool
}

// Bindings connect a category update to wherever the law is displayed.
type Bindings struct {
	// Current returns the displayed category of a law, if the law is shown.
	Current func(lawID string) (types.Category, bool)
	// Apply shows category for the law.
	Apply func(lawID string, category types.Category)
	// Rollback restores the category shown before the update. Apply is used
	// when nil.
	Rollback func(lawID string, category types.Category)
}

// Store wraps a Mutator with optimistic apply and rollback.
type Store struct {
	mutator Mutator
	notify  notify.Sink
	log     io.Writer
}

// New returns a Store. A nil sink or log discards.
func New(mutator Mutator, sink notify.Sink, log io.Writer) *Store {
	if sink == nil {
		sink = notify.Discard
	}
	if log == nil {
		log = io.Discard
	}
	return &Store{mutator: mutator, notify: sink, log: log}
}

// UpdateLawCategory shows category for lawID at once and asks the mutator to
// persist it. On failure the previously shown category (OPEN when none was
// shown) is restored, the user is notified and false is returned. Errors do
// not escape this call.
//
// While a mutation for lawID is in flight further updates are refused: they
// return false without touching the displayed value or notifying.
func (s *Store) UpdateLawCategory(ctx context.Context, lawID string, category types.Category, b Bindings) bool {
	if s.mutator.IsUpdating(lawID) {
		fmt.Fprintf(s.log, "warning: category update for %s ignored: previous update still running\n", lawID)
		return false
	}
	op := Optimistic[string, types.Category]{
		Read:     b.Current,
		Apply:    b.Apply,
		Rollback: b.Rollback,
		Default:  types.CategoryOpen,
	}
	err := op.Run(ctx, lawID, category, func(ctx context.Context) error {
		return s.mutator.UpdateLawCategory(ctx, lawID, category)
	})
	if errors.Is(err, lawdata.ErrUpdateInFlight) {
		// Lost the race with an update started after the check above. The
		// rollback restored that update's optimistic value.
		fmt.Fprintf(s.log, "warning: category update for %s ignored: previous update still running\n", lawID)
		return false
	}
	if err != nil {
		fmt.Fprintf(s.log, "warning: category update for %s reverted: %v\n", lawID, err)
		s.notify.AddError(fmt.Sprintf("Could not mark law as %s.", label(category)))
		return false
	}
	s.notify.AddSuccess(fmt.Sprintf("Law marked as %s.", label(category)))
	return true
}

// IsCategoryLoading reports whether a mutation for lawID is in flight.
func (s *Store) IsCategoryLoading(lawID string) bool {
	return s.mutator.IsUpdating(lawID)
}

func label(c types.Category) string {
	switch c {
	case types.CategoryRelevant:
		return "relevant"
	case types.CategoryNotRelevant:
		return "not relevant"
	default:
		return "open"
	}
}
