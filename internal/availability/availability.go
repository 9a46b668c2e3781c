// Package availability computes bookable time slots by subtracting a day's
// busy intervals from the working window, and searches forward across days
// when a date is fully booked.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/medibook-ai/booking-assistant/internal/calendar"
)

// ErrInconsistentBusySet reports a busy interval walk where a region's start
// exceeded its end. Busy intervals are merged before the walk, so this can
// only fire on an internal bug; the engine fails fast rather than emitting
// wrong slots.
var ErrInconsistentBusySet = errors.New("availability: busy intervals produce an inverted free region")

// WorkingWindow is the doctor's bookable hours for one calendar day.
// Invariant: Start < End, both timezone-aware.
type WorkingWindow struct {
	Start time.Time
	End   time.Time
}

// BusyInterval is a time range already occupied by an existing event,
// clamped to the working window.
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// FreeSlot is a fixed-duration bookable interval. End - Start always equals
// the requested slot duration exactly; slots are never partial.
type FreeSlot struct {
	Start time.Time
	End   time.Time
}

// WorkHours is a working-day clock window, e.g. {"09:00", "18:00"}.
type WorkHours struct {
	Start string
	End   string
}

// WindowFor materializes the clock spec on a specific calendar day in loc.
func (h WorkHours) WindowFor(date time.Time, loc *time.Location) (WorkingWindow, error) {
	sh, sm, err := parseClock(h.Start)
	if err != nil {
		return WorkingWindow{}, err
	}
	eh, em, err := parseClock(h.End)
	if err != nil {
		return WorkingWindow{}, err
	}

	w := WorkingWindow{
		Start: time.Date(date.Year(), date.Month(), date.Day(), sh, sm, 0, 0, loc),
		End:   time.Date(date.Year(), date.Month(), date.Day(), eh, em, 0, 0, loc),
	}
	if !w.Start.Before(w.End) {
		return WorkingWindow{}, fmt.Errorf("availability: working window %s-%s is empty", h.Start, h.End)
	}
	return w, nil
}

func parseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("availability: malformed clock time %q", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("availability: malformed clock time %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("availability: malformed clock time %q", s)
	}
	return hour, minute, nil
}

// ComputeFreeSlots subtracts busy intervals from the working window and
// greedily fills each free region with consecutive slots of exactly
// slotDuration, in chronological order. Busy intervals may arrive unsorted
// and overlapping; they are clamped and merged first.
func ComputeFreeSlots(window WorkingWindow, busy []BusyInterval, slotDuration time.Duration) ([]FreeSlot, error) {
	if !window.Start.Before(window.End) {
		return nil, fmt.Errorf("availability: working window start %s is not before end %s", window.Start, window.End)
	}
	if slotDuration <= 0 {
		return nil, fmt.Errorf("availability: slot duration %s must be positive", slotDuration)
	}

	merged := MergeBusyIntervals(clampToWindow(busy, window))

	var slots []FreeSlot
	cursor := window.Start
	for _, iv := range merged {
		if cursor.After(iv.Start) {
			return nil, fmt.Errorf("%w: region start %s after %s", ErrInconsistentBusySet, cursor, iv.Start)
		}
		slots = fillRegion(slots, cursor, iv.Start, slotDuration)
		cursor = iv.End
	}
	if cursor.After(window.End) {
		return nil, fmt.Errorf("%w: region start %s after window end %s", ErrInconsistentBusySet, cursor, window.End)
	}
	slots = fillRegion(slots, cursor, window.End, slotDuration)

	return slots, nil
}

// fillRegion appends full-duration slots from start until the remainder of
// the region is shorter than one slot.
func fillRegion(slots []FreeSlot, start, end time.Time, d time.Duration) []FreeSlot {
	for !start.Add(d).After(end) {
		slots = append(slots, FreeSlot{Start: start, End: start.Add(d)})
		start = start.Add(d)
	}
	return slots
}

// MergeBusyIntervals sorts intervals by start and coalesces any that overlap
// or touch, so downstream region walks see a disjoint ordered set. Two
// concurrent calendar bookings therefore block their union, not garbage.
func MergeBusyIntervals(busy []BusyInterval) []BusyInterval {
	if len(busy) == 0 {
		return nil
	}

	sorted := make([]BusyInterval, len(busy))
	copy(sorted, busy)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// clampToWindow restricts intervals to the window and drops any that
// collapse to zero or negative length; those block nothing.
func clampToWindow(busy []BusyInterval, window WorkingWindow) []BusyInterval {
	out := make([]BusyInterval, 0, len(busy))
	for _, iv := range busy {
		if iv.Start.Before(window.Start) {
			iv.Start = window.Start
		}
		if iv.End.After(window.End) {
			iv.End = window.End
		}
		if iv.Start.Before(iv.End) {
			out = append(out, iv)
		}
	}
	return out
}

// EventsToBusyIntervals converts calendar events into busy intervals for one
// working window. Explicit instants are normalized to the window's location;
// an all-day event occupies the entire window. Everything is clamped, and
// empty results are discarded.
func EventsToBusyIntervals(events []calendar.Event, window WorkingWindow) []BusyInterval {
	loc := window.Start.Location()

	intervals := make([]BusyInterval, 0, len(events))
	for _, ev := range events {
		var iv BusyInterval
		if ev.AllDay {
			iv = BusyInterval{Start: window.Start, End: window.End}
		} else {
			iv = BusyInterval{Start: ev.Start.In(loc), End: ev.End.In(loc)}
		}
		intervals = append(intervals, iv)
	}
	return clampToWindow(intervals, window)
}
