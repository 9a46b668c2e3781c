package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSlotSelection(t *testing.T) {
	slots := []SlotRange{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
		{Start: "14:00", End: "14:30"},
		{Start: "16:30", End: "17:00"},
	}

	tests := []struct {
		name string
		in   string
		want int
		ok   bool
	}{
		{"bare number", "2", 1, true},
		{"option phrase", "option 3", 2, true},
		{"slot phrase", "slot 1 please", 0, true},
		{"hash", "#4", 3, true},
		{"ordinal word", "the first one", 0, true},
		{"ordinal suffix", "3rd", 2, true},
		{"exact 24h time", "09:30", 1, true},
		{"time in sentence", "can I get 14:00?", 2, true},
		{"12h with meridiem", "2pm works", 2, true},
		{"12h with dots", "4.30 p.m. please", 3, true},
		{"morning with am", "9:00 am", 0, true},
		{"substring match", "the 16:30 one", 3, true},

		{"index out of range", "9", 0, false},
		{"option out of range", "option 5", 0, false},
		{"time not offered", "11:00", 0, false},
		{"meridiem not offered", "10am", 0, false},
		{"bare hour ambiguous", "around 14 maybe", 0, false},
		{"no selection at all", "what do you recommend?", 0, false},
		{"empty", "", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := DetectSlotSelection(tc.in, slots)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestDetectSlotSelectionIndexBeatsTime(t *testing.T) {
	slots := []SlotRange{
		{Start: "09:00", End: "09:30"},
		{Start: "09:30", End: "10:00"},
	}

	// "option 1" wins over the embedded time mention.
	got, ok := DetectSlotSelection("option 1, the 09:30 one", slots)
	assert.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestDetectSlotSelectionNoSlots(t *testing.T) {
	_, ok := DetectSlotSelection("1", nil)
	assert.False(t, ok)
}
