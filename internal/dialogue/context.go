// Package dialogue drives the booking conversation: a finite-state
// controller that sequences date resolution, slot discovery, slot selection
// and patient-detail collection, falling back to the intent extractor only
// when its own deterministic rules are inconclusive.
package dialogue

// State names the controller's position in the booking flow.
type State string

const (
	StateIdle           State = "idle"
	StateAwaitingDate   State = "awaiting_date"
	StateSlotsFound     State = "slots_found"
	StateBookingDetails State = "booking_details"
	StateCompleted      State = "completed"
)

// SlotRange is one bookable slot presented to the user, as wall-clock
// strings. The date lives in Context.Date, so only times are kept here.
type SlotRange struct {
	Start string `json:"start"` // "HH:MM", 24h
	End   string `json:"end"`
}

// Context is the per-session booking state. Fields accumulate over the
// multi-turn exchange and are mutated exclusively by the Controller.
type Context struct {
	State State `json:"state"`

	// PatientName is set once and never overwritten within a session.
	PatientName string `json:"patient_name,omitempty"`

	// Date is the resolved appointment day, "YYYY-MM-DD".
	Date string `json:"date,omitempty"`

	// Time is the chosen slot: "HH:MM", or "HH:MM-HH:MM" before a single
	// start time has been extracted.
	Time string `json:"time,omitempty"`

	// Slots are the discovered free slots for Date, cleared whenever the
	// date changes or a slot is chosen.
	Slots []SlotRange `json:"slots,omitempty"`
}

// NewContext returns a fresh idle context.
func NewContext() *Context {
	return &Context{State: StateIdle}
}

// Reset returns the context to its initial values. A reset context is
// indistinguishable from a freshly created one.
func (c *Context) Reset() {
	*c = Context{State: StateIdle}
}
