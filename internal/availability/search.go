package availability

import (
	"context"
	"time"

	"github.com/medibook-ai/booking-assistant/internal/calendar"
)

// BusySource is the slice of the calendar collaborator the search needs.
type BusySource interface {
	ListBusyEvents(ctx context.Context, calendarID string, date time.Time) ([]calendar.Event, error)
}

// SearchResult is the outcome of a forward slot search. Found is false when
// the whole range was exhausted without a single free slot.
type SearchResult struct {
	Date   time.Time
	Window WorkingWindow
	Slots  []FreeSlot
	Found  bool
}

// FindFreeSlotsFromDate tries startDate and then advances one calendar day
// at a time, with the same working-hours clock times, until a day yields at
// least one slot or maxDaysAhead extra days are exhausted. Each day's busy
// events are read fresh from the calendar; nothing is cached across days.
// A fully booked day is a normal outcome, not an error.
func FindFreeSlotsFromDate(
	ctx context.Context,
	src BusySource,
	calendarID string,
	startDate time.Time,
	hours WorkHours,
	slotDuration time.Duration,
	maxDaysAhead int,
	loc *time.Location,
) (SearchResult, error) {
	if loc == nil {
		loc = startDate.Location()
	}
	if maxDaysAhead < 0 {
		maxDaysAhead = 0
	}

	for offset := 0; offset <= maxDaysAhead; offset++ {
		day := startDate.AddDate(0, 0, offset)

		window, err := hours.WindowFor(day, loc)
		if err != nil {
			return SearchResult{}, err
		}

		events, err := src.ListBusyEvents(ctx, calendarID, day)
		if err != nil {
			return SearchResult{}, err
		}

		slots, err := ComputeFreeSlots(window, EventsToBusyIntervals(events, window), slotDuration)
		if err != nil {
			return SearchResult{}, err
		}

		if len(slots) > 0 {
			date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
			return SearchResult{Date: date, Window: window, Slots: slots, Found: true}, nil
		}
	}

	return SearchResult{}, nil
}
