package extractor

import (
	"encoding/json"
	"strings"
)

// Outcome is the decoded result of an extractor call: either a plain
// conversational Reply or one of the closed set of structured actions.
// The switch over Outcome in the controller is exhaustive; a new action
// means a new variant here, not a runtime lookup table.
type Outcome interface{ isOutcome() }

// Reply is a direct conversational response to surface to the user.
type Reply struct {
	Text string
}

// ParseDate asks the core to resolve the extracted date phrase. The
// controller supplies the reference date.
type ParseDate struct {
	Text string
}

// FindSlots carries optional overrides for the slot search. Empty fields
// mean "use the configured defaults".
type FindSlots struct {
	Date        string // "YYYY-MM-DD"
	WorkStart   string // "HH:MM"
	WorkEnd     string // "HH:MM"
	SlotMinutes int
}

// CreateAppointment carries the extracted patient details for the booking
// write. Name may be empty when the model found none.
type CreateAppointment struct {
	Name        string
	Description string
}

func (Reply) isOutcome()             {}
func (ParseDate) isOutcome()         {}
func (FindSlots) isOutcome()         {}
func (CreateAppointment) isOutcome() {}

// ExtractJSON lifts the first-to-last brace span out of free text, tolerating
// models that wrap their JSON in prose or fencing.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// rawPayload accepts both structured shapes the extractor may produce:
//
//	{"response": "..."}
//	{"action": {"name": "...", "args": {...}}}
//	{"action": "...", "params": {...}} / {"action": "...", "args": {...}}
type rawPayload struct {
	Response *string         `json:"response"`
	Action   json.RawMessage `json:"action"`
	Params   map[string]any  `json:"params"`
	Args     map[string]any  `json:"args"`
}

type rawAction struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// DecodeOutcome parses a raw model reply into an Outcome. Anything that is
// not one of the two recognized shapes, or that names an unknown action,
// degrades to a Reply carrying the raw text; malformed extractor output is
// never an error.
func DecodeOutcome(raw string) Outcome {
	blob, ok := ExtractJSON(raw)
	if !ok {
		return Reply{Text: raw}
	}

	var payload rawPayload
	if err := json.Unmarshal([]byte(blob), &payload); err != nil {
		return Reply{Text: raw}
	}

	if payload.Response != nil {
		return Reply{Text: *payload.Response}
	}

	if len(payload.Action) == 0 {
		return Reply{Text: raw}
	}

	// The action is either a bare name with sibling params/args, or a
	// nested {"name": ..., "args": ...} object.
	var name string
	args := payload.Params
	if args == nil {
		args = payload.Args
	}

	if err := json.Unmarshal(payload.Action, &name); err != nil {
		var nested rawAction
		if err := json.Unmarshal(payload.Action, &nested); err != nil || nested.Name == "" {
			return Reply{Text: raw}
		}
		name = nested.Name
		if nested.Args != nil {
			args = nested.Args
		}
	}

	switch name {
	case "parse_date":
		return ParseDate{Text: stringArg(args, "text")}
	case "find_free_slots_for_date":
		return FindSlots{
			Date:        stringArg(args, "date_str"),
			WorkStart:   stringArg(args, "work_start"),
			WorkEnd:     stringArg(args, "work_end"),
			SlotMinutes: intArg(args, "slot_minutes"),
		}
	case "create_appointment_event":
		return CreateAppointment{
			Name:        strings.TrimSpace(stringArg(args, "name")),
			Description: stringArg(args, "description"),
		}
	default:
		return Reply{Text: raw}
	}
}

func stringArg(args map[string]any, key string) string {
	if args == nil {
		return ""
	}
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]any, key string) int {
	if args == nil {
		return 0
	}
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}
