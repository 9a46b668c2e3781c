// Package calendar defines the boundary to the external calendar backing
// store: listing the events that occupy a day and inserting a booked
// appointment. The booking core treats both as synchronous calls that may
// fail.
package calendar

import (
	"context"
	"time"
)

// Event is one existing calendar entry. AllDay events carry no instants and
// block the entire working day.
type Event struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	AllDay      bool
}

// InsertRequest describes an appointment to write to the calendar.
type InsertRequest struct {
	CalendarID  string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// Service is the calendar collaborator contract.
type Service interface {
	// ListBusyEvents returns the events occupying the given calendar date.
	// The date's clock component is ignored; its location decides where the
	// day boundaries fall.
	ListBusyEvents(ctx context.Context, calendarID string, date time.Time) ([]Event, error)

	// InsertEvent writes an appointment and returns the created record.
	InsertEvent(ctx context.Context, req InsertRequest) (*Event, error)
}
