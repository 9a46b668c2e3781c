package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSchedulingRequest(t *testing.T) {
	positives := []string{
		"I want to book an appointment",
		"what slots are available?",
		"check availability please",
		"do you have any free time on monday",
		"show me the schedule",
		"can we set up a meeting",
		"look for an opening",
	}
	for _, in := range positives {
		assert.True(t, isSchedulingRequest(in), "expected scheduling intent: %q", in)
	}

	negatives := []string{
		"hello",
		"thank you so much",
		"what are your opening hours on the website?", // no keyword
		"my knee hurts",
	}
	for _, in := range negatives {
		assert.False(t, isSchedulingRequest(in), "unexpected scheduling intent: %q", in)
	}
}

func TestHeuristicDate(t *testing.T) {
	// Thursday.
	base := time.Date(2025, time.November, 20, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"book me in for tomorrow", "2025-11-21"},
		{"tomorow would be great", "2025-11-21"},
		{"how about the day after tomorrow", "2025-11-22"},
		{"today if possible", "2025-11-20"},
		{"next monday", "2025-11-24"},
		{"this friday", "2025-11-21"},
		{"friday", "2025-11-21"},
		{"an appointment on 26/11", "2025-11-26"},
		{"maybe 2025-11-26?", "2025-11-26"},
		{"the 26th of november", "2025-11-26"},
		{"dec 5 works", "2025-12-05"},
	}
	for _, tc := range tests {
		got, ok := heuristicDate(tc.in, base)
		require.True(t, ok, "expected a date from %q", tc.in)
		assert.Equal(t, tc.want, got.Format("2006-01-02"), "input %q", tc.in)
	}
}

func TestHeuristicDateNoMatch(t *testing.T) {
	base := time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"",
		"whenever suits you",
		"I have a headache",
		"as soon as possible",
	} {
		_, ok := heuristicDate(in, base)
		assert.False(t, ok, "unexpected date from %q", in)
	}
}
