package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/medibook-ai/booking-assistant/internal/availability"
	"github.com/medibook-ai/booking-assistant/internal/calendar"
	"github.com/medibook-ai/booking-assistant/internal/dateparse"
	"github.com/medibook-ai/booking-assistant/internal/extractor"
	"github.com/medibook-ai/booking-assistant/internal/observability/metrics"
	"github.com/medibook-ai/booking-assistant/pkg/logging"
)

const defaultDescription = "Appointment booked via MediBook"

// ControllerConfig wires the controller's collaborators and scheduling
// policy. Calendar and Extractor are required.
type ControllerConfig struct {
	Calendar  calendar.Service
	Extractor *extractor.Extractor
	Logger    *logging.Logger
	Metrics   *metrics.ConversationMetrics

	CalendarID    string
	Hours         availability.WorkHours
	SlotDuration  time.Duration
	MaxDaysAhead  int
	MaxSlotsShown int
	Location      *time.Location

	// Now supplies the reference date for relative phrases; tests pin it.
	Now func() time.Time
}

// Controller is the finite-state dialogue engine. It holds no per-session
// state itself; the Context travels in and out of every call, so one
// controller serves any number of isolated sessions.
type Controller struct {
	cal     calendar.Service
	ext     *extractor.Extractor
	logger  *logging.Logger
	metrics *metrics.ConversationMetrics

	calendarID    string
	hours         availability.WorkHours
	slotDuration  time.Duration
	maxDaysAhead  int
	maxSlotsShown int
	loc           *time.Location
	now           func() time.Time
}

// NewController builds a controller from the supplied configuration.
func NewController(cfg ControllerConfig) *Controller {
	if cfg.Calendar == nil {
		panic("dialogue: calendar service cannot be nil")
	}
	if cfg.Extractor == nil {
		panic("dialogue: extractor cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CalendarID == "" {
		cfg.CalendarID = "primary"
	}
	if cfg.Hours.Start == "" {
		cfg.Hours = availability.WorkHours{Start: "09:00", End: "18:00"}
	}
	if cfg.SlotDuration <= 0 {
		cfg.SlotDuration = 30 * time.Minute
	}
	if cfg.MaxDaysAhead < 0 {
		cfg.MaxDaysAhead = 0
	}
	if cfg.MaxSlotsShown <= 0 {
		cfg.MaxSlotsShown = 8
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Controller{
		cal:           cfg.Calendar,
		ext:           cfg.Extractor,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		calendarID:    cfg.CalendarID,
		hours:         cfg.Hours,
		slotDuration:  cfg.SlotDuration,
		maxDaysAhead:  cfg.MaxDaysAhead,
		maxSlotsShown: cfg.MaxSlotsShown,
		loc:           cfg.Location,
		now:           cfg.Now,
	}
}

// ProcessUserInput advances the conversation one turn and returns the reply
// to surface. Every recognized failure mode recovers into a usable state;
// nothing here escalates into an error for the caller.
func (c *Controller) ProcessUserInput(ctx context.Context, sess *Context, text string) string {
	entryState := sess.State
	c.logger.Debug("processing turn", "state", entryState)

	var reply string
	switch sess.State {
	case StateIdle:
		reply = c.handleIdle(ctx, sess, text)
	case StateAwaitingDate:
		reply = c.handleAwaitingDate(ctx, sess, text)
	case StateSlotsFound:
		reply = c.handleSlotsFound(ctx, sess, text)
	case StateBookingDetails:
		reply = c.handleBookingDetails(ctx, sess, text)
	case StateCompleted:
		// Completed is terminal and self-resets; a context should never
		// arrive here, but recover by starting over.
		sess.Reset()
		reply = c.handleIdle(ctx, sess, text)
	default:
		reply = "I'm not sure how to process that request."
	}

	c.metrics.ObserveTurn(string(entryState), string(sess.State))
	return reply
}

func (c *Controller) handleIdle(ctx context.Context, sess *Context, text string) string {
	if isSchedulingRequest(text) {
		// Scheduling intent: re-dispatch the same text straight into date
		// handling so "book me in for tomorrow" needs no second turn.
		sess.State = StateAwaitingDate
		return c.handleAwaitingDate(ctx, sess, text)
	}

	outcome, err := c.classifyDate(ctx, text, "")
	if err != nil {
		c.logger.Error("extractor unavailable in idle", "error", err)
		return "Hello! I can help you book an appointment with the doctor. What day works for you?"
	}

	switch o := outcome.(type) {
	case extractor.Reply:
		return c.converse(ctx, text, "", o.Text)
	case extractor.ParseDate:
		if d, ok := dateparse.Resolve(o.Text, c.today()); ok {
			hint := fmt.Sprintf("The user mentioned date %s. Provide a helpful response.", isoDate(d))
			return c.converse(ctx, text, hint, "")
		}
		return c.converse(ctx, text, "", "")
	default:
		return "I'm not sure how to process that request."
	}
}

func (c *Controller) handleAwaitingDate(ctx context.Context, sess *Context, text string) string {
	// Deterministic rules first; the extractor is the fallback, not the
	// front door.
	if d, ok := heuristicDate(text, c.today()); ok {
		return c.findSlots(ctx, sess, text, d)
	}

	outcome, err := c.classifyDate(ctx, text, "User is providing a date for scheduling an appointment")
	if err != nil {
		c.logger.Error("extractor unavailable in awaiting_date", "error", err)
		return `I'm having a little trouble right now. Could you give me the date as something like "tomorrow" or "26/11"?`
	}

	switch o := outcome.(type) {
	case extractor.Reply:
		return o.Text
	case extractor.ParseDate:
		// The extractor supplies only the phrase; the reference date is
		// ours to inject.
		if d, ok := dateparse.Resolve(o.Text, c.today()); ok {
			return c.findSlots(ctx, sess, text, d)
		}
		return c.converse(ctx, text,
			"The user didn't provide a clear date. Gently ask for a specific date or time frame.",
			"I couldn't work out the date. Could you give me something like \"tomorrow\" or \"26/11\"?")
	default:
		return "I'm not sure how to process that date."
	}
}

func (c *Controller) findSlots(ctx context.Context, sess *Context, text string, date time.Time) string {
	hours, slotDuration := c.searchParams(ctx, text, date)

	searchStart := time.Now()
	result, err := availability.FindFreeSlotsFromDate(ctx, c.cal, c.calendarID, date,
		hours, slotDuration, c.maxDaysAhead, c.loc)
	c.metrics.ObserveCalendarLatency("availability_search", time.Since(searchStart).Seconds())
	if err != nil {
		c.logger.Error("slot search failed", "date", isoDate(date), "error", err)
		sess.State = StateAwaitingDate
		return "I'm having trouble reaching the calendar right now. Could you try that date again in a moment?"
	}

	if !result.Found {
		// A fully booked range is a normal outcome: ask for another date.
		sess.State = StateAwaitingDate
		sess.Date = ""
		sess.Slots = nil
		return fmt.Sprintf(
			"I'm sorry, but there are no available slots on %s or the %d day(s) after it. Would you like to try a different date?",
			isoDate(date), c.maxDaysAhead)
	}

	sess.Date = isoDate(result.Date)
	sess.Time = ""
	sess.Slots = slotsToRanges(result.Slots)
	sess.State = StateSlotsFound

	var b strings.Builder
	if !sameDate(result.Date, date) {
		fmt.Fprintf(&b, "%s is fully booked, but %s has openings. ", isoDate(date), sess.Date)
	}
	fmt.Fprintf(&b, "Here are the available time slots on %s: %s. Which time would you prefer?",
		sess.Date, formatSlots(sess.Slots, c.maxSlotsShown))
	return b.String()
}

// searchParams lets the extractor suggest work-window or slot-length
// overrides ("next Monday morning", "1 hour appointments") and validates
// them before use. Anything unusable quietly falls back to the defaults.
func (c *Controller) searchParams(ctx context.Context, text string, date time.Time) (availability.WorkHours, time.Duration) {
	hours := c.hours
	slotDuration := c.slotDuration

	start := time.Now()
	outcome, err := c.ext.PlanSlotSearch(ctx, text, isoDate(date))
	c.metrics.ObserveExtractorLatency("plan_slot_search", time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn("slot search planning unavailable, using defaults", "error", err)
		return hours, slotDuration
	}

	plan, ok := outcome.(extractor.FindSlots)
	if !ok {
		return hours, slotDuration
	}

	if plan.WorkStart != "" && plan.WorkEnd != "" {
		candidate := availability.WorkHours{Start: plan.WorkStart, End: plan.WorkEnd}
		if _, err := candidate.WindowFor(date, c.loc); err == nil {
			hours = candidate
		} else {
			c.logger.Warn("ignoring invalid work window from extractor", "start", plan.WorkStart, "end", plan.WorkEnd)
		}
	}
	if plan.SlotMinutes >= 5 && plan.SlotMinutes <= 240 {
		slotDuration = time.Duration(plan.SlotMinutes) * time.Minute
	}
	return hours, slotDuration
}

func (c *Controller) handleSlotsFound(ctx context.Context, sess *Context, text string) string {
	if sess.Time != "" {
		sess.State = StateBookingDetails
		return c.handleBookingDetails(ctx, sess, text)
	}

	idx, ok := DetectSlotSelection(text, sess.Slots)
	if !ok {
		return fmt.Sprintf("Please pick a time slot from the available options: %s.",
			formatSlots(sess.Slots, c.maxSlotsShown))
	}

	chosen := sess.Slots[idx]
	sess.Time = chosen.Start + "-" + chosen.End
	sess.Slots = nil
	sess.State = StateBookingDetails
	return fmt.Sprintf("Great, %s it is. Could I have the patient's name to finish the booking?", chosen.Start)
}

func (c *Controller) handleBookingDetails(ctx context.Context, sess *Context, text string) string {
	if sess.Date == "" || sess.Time == "" {
		// Should not happen; recover by asking for the date again.
		sess.State = StateAwaitingDate
		return "I need both a date and a time to book. What day works for you?"
	}

	if sess.PatientName != "" {
		return c.book(ctx, sess, defaultDescription)
	}

	start := time.Now()
	outcome, err := c.ext.ExtractBookingDetails(ctx, text)
	c.metrics.ObserveExtractorLatency("extract_booking_details", time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("booking detail extraction failed", "error", err)
		return "Sorry, I didn't catch that. Could you tell me the patient's name?"
	}

	details, ok := outcome.(extractor.CreateAppointment)
	if !ok {
		return "To complete your booking, I need the patient's name. Could you please provide it?"
	}
	if details.Name == "" {
		return "I didn't catch the patient's name. Could you please tell me the name for the booking?"
	}

	sess.PatientName = details.Name
	description := details.Description
	if description == "" {
		description = defaultDescription
	}
	return c.book(ctx, sess, description)
}

func (c *Controller) book(ctx context.Context, sess *Context, description string) string {
	// A chosen slot may still be a range; only its start time is booked.
	startStr := sess.Time
	if i := strings.Index(startStr, "-"); i >= 0 {
		startStr = startStr[:i]
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", sess.Date+" "+startStr, c.loc)
	if err != nil {
		c.logger.Error("unbookable context", "date", sess.Date, "time", sess.Time, "error", err)
		sess.State = StateAwaitingDate
		sess.Time = ""
		return "Something went wrong with the chosen time. What day works for you?"
	}

	insertStart := time.Now()
	_, err = c.cal.InsertEvent(ctx, calendar.InsertRequest{
		CalendarID:  c.calendarID,
		Title:       "Appointment: " + sess.PatientName,
		Description: description,
		Start:       start,
		End:         start.Add(c.slotDuration),
	})
	c.metrics.ObserveCalendarLatency("insert_event", time.Since(insertStart).Seconds())
	if err != nil {
		// The write failed but everything collected survives: the user
		// stays in booking_details and can simply retry.
		c.logger.Error("calendar write failed", "error", err)
		c.metrics.ObserveBooking("failure")
		return fmt.Sprintf("❌ Failed to create appointment: %v", err)
	}

	c.metrics.ObserveBooking("success")
	c.logger.Info("appointment booked", "date", sess.Date, "time", startStr)

	msg := fmt.Sprintf("✅ Appointment successfully booked for %s on %s at %s!",
		sess.PatientName, sess.Date, startStr)
	sess.State = StateCompleted
	sess.Reset()
	return msg
}

func (c *Controller) classifyDate(ctx context.Context, text, hint string) (extractor.Outcome, error) {
	start := time.Now()
	outcome, err := c.ext.ClassifyDate(ctx, text, hint)
	c.metrics.ObserveExtractorLatency("classify_date", time.Since(start).Seconds())
	return outcome, err
}

// converse generates a prose reply through the extractor, falling back to
// the supplied text when the model is unreachable.
func (c *Controller) converse(ctx context.Context, text, hint, fallback string) string {
	start := time.Now()
	reply, err := c.ext.ConversationalReply(ctx, text, hint)
	c.metrics.ObserveExtractorLatency("conversational_reply", time.Since(start).Seconds())
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			c.logger.Warn("conversational reply failed", "error", err)
		}
		if fallback != "" {
			return fallback
		}
		return "I can help you book an appointment with the doctor. What day works for you?"
	}
	return reply
}

func (c *Controller) today() time.Time {
	n := c.now().In(c.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, c.loc)
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func slotsToRanges(slots []availability.FreeSlot) []SlotRange {
	out := make([]SlotRange, len(slots))
	for i, s := range slots {
		out[i] = SlotRange{Start: s.Start.Format("15:04"), End: s.End.Format("15:04")}
	}
	return out
}

func formatSlots(slots []SlotRange, max int) string {
	if len(slots) < max {
		max = len(slots)
	}
	parts := make([]string, 0, max)
	for _, s := range slots[:max] {
		parts = append(parts, s.Start+"-"+s.End)
	}
	return strings.Join(parts, ", ")
}
