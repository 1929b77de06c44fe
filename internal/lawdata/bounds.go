// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lawdata

import (
	"time"

	"github.com/pdiddy/law-monitor/pkg/types"
)

// PickerBounds limits a date picker to the dates that have laws.
type PickerBounds struct {
	First time.Time
	Last  time.Time

	// Disabled lists the calendar days between First and Last that have no laws.
	Disabled []time.Time
}

// DatePickerBounds derives picker bounds from the cached available dates.
// With no cached dates both bounds are now and nothing is disabled.
func (s *Store) DatePickerBounds(now time.Time) PickerBounds {
	return BoundsFor(s.AvailableDates(), now)
}

// BoundsFor derives picker bounds from an ascending list of ISO dates.
// Unparsable entries are ignored.
func BoundsFor(dates []string, now time.Time) PickerBounds {
	available := make(map[string]bool, len(dates))
	var parsed []time.Time
	for _, d := range dates {
		t, ok := types.ParseDate(d)
		if !ok {
			continue
		}
		key := types.FormatDate(t)
		if available[key] {
			continue
		}
		available[key] = true
		parsed = append(parsed, t)
	}
	if len(parsed) == 0 {
		return PickerBounds{First: now, Last: now, Disabled: []time.Time{}}
	}

	first, last := parsed[0], parsed[0]
	for _, t := range parsed[1:] {
		if t.Before(first) {
			first = t
		}
		if t.After(last) {
			last = t
		}
	}

	disabled := []time.Time{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if !available[types.FormatDate(d)] {
			disabled = append(disabled, d)
		}
	}
	return PickerBounds{First: first, Last: last, Disabled: disabled}
}
