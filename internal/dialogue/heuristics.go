package dialogue

import (
	"regexp"
	"strings"
	"time"

	"github.com/medibook-ai/booking-assistant/internal/dateparse"
)

// schedulingIntentRE detects messages that are about booking or
// availability, so the controller can skip the extractor entirely.
var schedulingIntentRE = regexp.MustCompile(`(?i)\b(?:available|availability|slots?|schedule|book|appointment|meeting|time|free|check|find|look\s+for|show\s+me)\b`)

// isSchedulingRequest reports whether the text carries scheduling intent.
func isSchedulingRequest(text string) bool {
	return schedulingIntentRE.MatchString(text)
}

var (
	heuristicWeekdayRE = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thu|fri|sat|sun)\b`)
	heuristicNumericRE = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?`)
	heuristicMonthRE   = regexp.MustCompile(`(?i)(?:\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?)?(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s*\d{0,2}`)
	heuristicISORE     = regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`)
	heuristicPrefixRE  = regexp.MustCompile(`(?i)\b(?:next|this)\s+[a-z]+\b`)
)

// heuristicDate is the deterministic pre-pass tried before the extractor:
// common keywords (including frequent misspellings of "tomorrow"), weekday
// names, and liftable date patterns. Returns midnight in base's location.
func heuristicDate(text string, base time.Time) (time.Time, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return time.Time{}, false
	}

	// Keyword passes reuse the resolver so the arithmetic lives in one
	// place. Day-after phrases are checked first; they contain "tomorrow".
	if strings.Contains(t, "day after") || strings.Contains(t, "after tomorrow") {
		return dateparse.Resolve("day after tomorrow", base)
	}
	for _, k := range []string{"today", "tomorrow", "tomorow", "tomoro", "tomoz"} {
		if strings.Contains(t, k) {
			return dateparse.Resolve(k, base)
		}
	}

	// "next <day>" / "this <day>" / bare weekday.
	if m := heuristicPrefixRE.FindString(t); m != "" {
		if d, ok := dateparse.Resolve(m, base); ok {
			return d, true
		}
	}
	if m := heuristicWeekdayRE.FindString(t); m != "" {
		return dateparse.Resolve(m, base)
	}

	// Liftable patterns: ISO, numeric dd/mm, month-name dates.
	for _, re := range []*regexp.Regexp{heuristicISORE, heuristicNumericRE, heuristicMonthRE} {
		if m := re.FindString(t); m != "" {
			if d, ok := dateparse.Resolve(m, base); ok {
				return d, true
			}
		}
	}

	return time.Time{}, false
}
