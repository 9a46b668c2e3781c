package calendar

import (
	"context"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleService implements Service against the Google Calendar API.
// One authenticated handle is built at startup and reused for every call.
type GoogleService struct {
	svc *gcal.Service
	loc *time.Location
}

// NewGoogleService builds a calendar client from a service-account or OAuth
// credentials file. Event instants are normalized to loc before they are
// handed to the availability engine.
func NewGoogleService(ctx context.Context, credentialsFile string, loc *time.Location) (*GoogleService, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("calendar: credentials file is required")
	}
	if loc == nil {
		loc = time.UTC
	}

	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create google calendar service: %w", err)
	}

	return &GoogleService{svc: svc, loc: loc}, nil
}

// ListBusyEvents fetches the single-event expansion of everything on the
// calendar between the date's midnight and the next, ordered by start time.
func (g *GoogleService) ListBusyEvents(ctx context.Context, calendarID string, date time.Time) ([]Event, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, g.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	res, err := g.svc.Events.List(calendarID).
		TimeMin(dayStart.Format(time.RFC3339)).
		TimeMax(dayEnd.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to list events for %s: %w", dayStart.Format("2006-01-02"), err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		ev, err := convertGoogleEvent(item, g.loc)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// InsertEvent writes the appointment and returns the stored record.
func (g *GoogleService) InsertEvent(ctx context.Context, req InsertRequest) (*Event, error) {
	body := &gcal.Event{
		Summary:     req.Title,
		Description: req.Description,
		Start: &gcal.EventDateTime{
			DateTime: req.Start.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &gcal.EventDateTime{
			DateTime: req.End.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
	}

	created, err := g.svc.Events.Insert(req.CalendarID, body).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to insert event: %w", err)
	}

	return &Event{
		ID:          created.Id,
		Title:       created.Summary,
		Description: created.Description,
		Start:       req.Start,
		End:         req.End,
	}, nil
}

// convertGoogleEvent maps an API item to our Event. Date-only start/end
// marks an all-day event; explicit instants are normalized to loc.
func convertGoogleEvent(item *gcal.Event, loc *time.Location) (Event, error) {
	ev := Event{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
	}

	if item.Start == nil || item.Start.DateTime == "" {
		ev.AllDay = true
		return ev, nil
	}

	start, err := time.Parse(time.RFC3339, item.Start.DateTime)
	if err != nil {
		return Event{}, fmt.Errorf("calendar: malformed event start %q: %w", item.Start.DateTime, err)
	}
	ev.Start = start.In(loc)

	if item.End != nil && item.End.DateTime != "" {
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return Event{}, fmt.Errorf("calendar: malformed event end %q: %w", item.End.DateTime, err)
		}
		ev.End = end.In(loc)
	} else {
		// Start instant with a date-only end: treat the tail as all-day.
		ev.AllDay = true
	}

	return ev, nil
}
