package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOK bool
	}{
		{name: "bare object", in: `{"response": "hi"}`, want: `{"response": "hi"}`, wantOK: true},
		{name: "wrapped in prose", in: "Sure! {\"response\": \"hi\"} hope that helps", want: `{"response": "hi"}`, wantOK: true},
		{name: "fenced", in: "```json\n{\"a\": 1}\n```", want: `{"a": 1}`, wantOK: true},
		{name: "nested braces", in: `{"action": {"name": "parse_date"}}`, want: `{"action": {"name": "parse_date"}}`, wantOK: true},
		{name: "no braces", in: "just words", wantOK: false},
		{name: "empty", in: "", wantOK: false},
		{name: "only open brace", in: "oops {", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeOutcomeReply(t *testing.T) {
	out := DecodeOutcome(`{"response": "Hello! How can I help you today?"}`)
	reply, ok := out.(Reply)
	require.True(t, ok)
	assert.Equal(t, "Hello! How can I help you today?", reply.Text)
}

func TestDecodeOutcomeParseDateNested(t *testing.T) {
	out := DecodeOutcome(`{"action": {"name": "parse_date", "args": {"text": "next Friday"}}}`)
	pd, ok := out.(ParseDate)
	require.True(t, ok)
	assert.Equal(t, "next Friday", pd.Text)
}

func TestDecodeOutcomeFindSlotsFlat(t *testing.T) {
	out := DecodeOutcome(`{"action": "find_free_slots_for_date", "params": {"date_str": "2025-11-26", "work_start": "09:00", "work_end": "12:00", "slot_minutes": 60}}`)
	fs, ok := out.(FindSlots)
	require.True(t, ok)
	assert.Equal(t, "2025-11-26", fs.Date)
	assert.Equal(t, "09:00", fs.WorkStart)
	assert.Equal(t, "12:00", fs.WorkEnd)
	assert.Equal(t, 60, fs.SlotMinutes)
}

func TestDecodeOutcomeFindSlotsDefaults(t *testing.T) {
	out := DecodeOutcome(`{"action": "find_free_slots_for_date", "params": {"date_str": "2025-11-26"}}`)
	fs, ok := out.(FindSlots)
	require.True(t, ok)
	assert.Equal(t, "2025-11-26", fs.Date)
	assert.Empty(t, fs.WorkStart)
	assert.Zero(t, fs.SlotMinutes)
}

func TestDecodeOutcomeCreateAppointment(t *testing.T) {
	out := DecodeOutcome(`{"action": "create_appointment_event", "args": {"name": "  Joyce Kim ", "description": "fever"}}`)
	ca, ok := out.(CreateAppointment)
	require.True(t, ok)
	assert.Equal(t, "Joyce Kim", ca.Name)
	assert.Equal(t, "fever", ca.Description)
}

func TestDecodeOutcomeCreateAppointmentEmptyName(t *testing.T) {
	out := DecodeOutcome(`{"action": "create_appointment_event", "args": {"name": ""}}`)
	ca, ok := out.(CreateAppointment)
	require.True(t, ok)
	assert.Empty(t, ca.Name)
}

func TestDecodeOutcomeFlatActionWithArgsKey(t *testing.T) {
	// Some replies use "args" instead of "params" alongside a flat action.
	out := DecodeOutcome(`{"action": "parse_date", "args": {"text": "tomorrow"}}`)
	pd, ok := out.(ParseDate)
	require.True(t, ok)
	assert.Equal(t, "tomorrow", pd.Text)
}

func TestDecodeOutcomeDegradesToReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "plain text", in: "I'd be happy to help with that!"},
		{name: "broken json", in: `{"action": "parse_date",`},
		{name: "unknown action flat", in: `{"action": "delete_all_events", "params": {}}`},
		{name: "unknown action nested", in: `{"action": {"name": "launch_rockets", "args": {}}}`},
		{name: "action without name", in: `{"action": {"args": {"text": "x"}}}`},
		{name: "irrelevant object", in: `{"weather": "sunny"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := DecodeOutcome(tt.in)
			reply, ok := out.(Reply)
			require.True(t, ok, "expected Reply, got %T", out)
			assert.Equal(t, tt.in, reply.Text)
		})
	}
}

func TestDecodeOutcomeSurroundingProse(t *testing.T) {
	out := DecodeOutcome("Here you go: {\"action\": {\"name\": \"parse_date\", \"args\": {\"text\": \"26/11\"}}}")
	pd, ok := out.(ParseDate)
	require.True(t, ok)
	assert.Equal(t, "26/11", pd.Text)
}
