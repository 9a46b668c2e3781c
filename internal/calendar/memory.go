package calendar

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryService is an in-memory Service used by tests and the demo CLI.
// It keeps events per calendar ID and serves day queries by overlap with
// the date's midnight-to-midnight window.
type MemoryService struct {
	mu        sync.Mutex
	events    map[string][]Event
	insertErr error
}

// NewMemoryService creates an empty in-memory calendar.
func NewMemoryService() *MemoryService {
	return &MemoryService{events: make(map[string][]Event)}
}

// Seed adds events directly, bypassing InsertEvent.
func (m *MemoryService) Seed(calendarID string, events ...Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range events {
		if ev.ID == "" {
			ev.ID = uuid.NewString()
		}
		m.events[calendarID] = append(m.events[calendarID], ev)
	}
}

// SetInsertErr forces subsequent InsertEvent calls to fail with err.
// Pass nil to clear.
func (m *MemoryService) SetInsertErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertErr = err
}

func (m *MemoryService) ListBusyEvents(ctx context.Context, calendarID string, date time.Time) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loc := date.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Event
	for _, ev := range m.events[calendarID] {
		if ev.AllDay {
			// All-day seeds use Start's date to pick their day.
			if sameDay(ev.Start, dayStart) {
				out = append(out, ev)
			}
			continue
		}
		if ev.Start.Before(dayEnd) && ev.End.After(dayStart) {
			out = append(out, ev)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (m *MemoryService) InsertEvent(ctx context.Context, req InsertRequest) (*Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.insertErr != nil {
		return nil, m.insertErr
	}

	ev := Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
	}
	m.events[req.CalendarID] = append(m.events[req.CalendarID], ev)
	return &ev, nil
}

// EventsFor returns a copy of everything stored for a calendar.
func (m *MemoryService) EventsFor(calendarID string) []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events[calendarID]))
	copy(out, m.events[calendarID])
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
