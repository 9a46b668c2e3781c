package dialogue

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Slot selection precedence: explicit index first, then an exact start-time
// match, then a raw substring match against the presented labels. The first
// rule that produces a hit wins.

var (
	bareIndexRE  = regexp.MustCompile(`^\d{1,2}$`)
	optionRE     = regexp.MustCompile(`(?i)(?:\b(?:option|number|choice|slot)|#)\s*(\d{1,2})\b`)
	clockTokenRE = regexp.MustCompile(`(\d{1,2})(?:[:.](\d{2}))?\s*(a\.?m\.?|p\.?m\.?)?`)
)

var ordinalWords = map[string]int{
	"first": 1, "1st": 1,
	"second": 2, "2nd": 2,
	"third": 3, "3rd": 3,
	"fourth": 4, "4th": 4,
	"fifth": 5, "5th": 5,
	"sixth": 6, "6th": 6,
	"seventh": 7, "7th": 7,
	"eighth": 8, "8th": 8,
}

// DetectSlotSelection maps a raw selection message onto one of the
// presented slots. It returns the zero-based slot index, or ok=false when
// the message is not a recognizable selection.
func DetectSlotSelection(text string, slots []SlotRange) (int, bool) {
	msg := strings.ToLower(strings.TrimSpace(text))
	if msg == "" || len(slots) == 0 {
		return 0, false
	}

	// 1. Explicit index: a bare number, "option N", "#N", or an ordinal.
	if bareIndexRE.MatchString(msg) {
		if n, err := strconv.Atoi(msg); err == nil && n >= 1 && n <= len(slots) {
			return n - 1, true
		}
		// A bare number that is not a valid index may still be an hour;
		// fall through to the time rules.
	}
	if m := optionRE.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= len(slots) {
			return n - 1, true
		}
	}
	for _, word := range strings.Fields(msg) {
		if n, ok := ordinalWords[strings.Trim(word, ".,!?")]; ok && n <= len(slots) {
			return n - 1, true
		}
	}

	// 2. Exact start-time match, accepting 12h forms with am/pm.
	if hhmm, ok := clockFromMessage(msg); ok {
		for i, s := range slots {
			if s.Start == hhmm {
				return i, true
			}
		}
		return 0, false
	}

	// 3. Substring: the message contains a presented start time verbatim.
	for i, s := range slots {
		if strings.Contains(msg, s.Start) {
			return i, true
		}
	}

	return 0, false
}

// clockFromMessage extracts the first clock-like token and normalizes it to
// "HH:MM" 24h. Bare numbers without minutes or meridiem are rejected; they
// are too ambiguous against slot indices.
func clockFromMessage(msg string) (string, bool) {
	m := clockTokenRE.FindStringSubmatch(msg)
	if m == nil {
		return "", false
	}

	hasMinutes := m[2] != ""
	meridiem := strings.ReplaceAll(m[3], ".", "")
	if !hasMinutes && meridiem == "" {
		return "", false
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if hasMinutes {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return "", false
	}

	switch meridiem {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
