// Package dateparse resolves conversational date phrases ("tomorrow",
// "next friday", "26/11") into calendar dates. Resolution is deterministic:
// the same text and reference date always produce the same result, and
// malformed input yields ok=false rather than an error.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday, "thurs": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// months is keyed by 3-letter prefix; longer names resolve through the
// prefix, so "november", "nov" and even "novem" all hit the same entry.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

var (
	ordinalRE  = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)
	todayRE    = regexp.MustCompile(`\btoday\b`)
	tomorrowRE = regexp.MustCompile(`\b(?:tomorrow|tomorow|tomoro|tomoz)\b`)
	// "day after tomorrow" and clipped variants. Checked before the bare
	// "tomorrow" rule, which would otherwise swallow the phrase.
	dayAfterRE = regexp.MustCompile(`\b(?:day\s+)?after\s+(?:tomorrow|tomorow|tomoro|tomoz)\b`)

	weekdayRE = regexp.MustCompile(`\b(?:(next|this)\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thu|fri|sat|sun)\b`)

	dayMonthRE = regexp.MustCompile(`\b(\d{1,2})\s+(?:of\s+)?([a-z]{3,9})(?:\s+(\d{4}|\d{2}))?\b`)
	monthDayRE = regexp.MustCompile(`\b([a-z]{3,9})\s+(\d{1,2})(?:\s+(\d{4}|\d{2}))?\b`)

	numericRE = regexp.MustCompile(`\b(\d{1,2})[/\-. ](\d{1,2})(?:[/\-. ](\d{2,4}))?\b`)
	isoRE     = regexp.MustCompile(`(\d{4})[/\-. ](\d{1,2})[/\-. ](\d{1,2})`)
)

// StripOrdinals removes ordinal suffixes: "26th" -> "26".
func StripOrdinals(s string) string {
	return ordinalRE.ReplaceAllString(s, "$1")
}

// Resolve maps a free-text date phrase to a calendar date relative to base.
// The returned time is midnight in base's location. The second return value
// reports whether any rule matched; no input causes an error or panic.
//
// Numeric dates like 26/11 are interpreted day-first. When a year is
// omitted, the nearest future occurrence is chosen (same year or next), so
// the resolver never schedules into the past.
func Resolve(text string, base time.Time) (time.Time, bool) {
	if strings.TrimSpace(text) == "" {
		return time.Time{}, false
	}

	loc := base.Location()
	baseDate := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, loc)

	s := StripOrdinals(strings.ToLower(text))
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", " "))

	// Relative keywords.
	if todayRE.MatchString(s) {
		return baseDate, true
	}
	if dayAfterRE.MatchString(s) {
		return baseDate.AddDate(0, 0, 2), true
	}
	if tomorrowRE.MatchString(s) {
		return baseDate.AddDate(0, 0, 1), true
	}

	// Weekday handling: "next monday", "this fri", "monday".
	if m := weekdayRE.FindStringSubmatch(s); m != nil {
		prefix, token := m[1], m[2]
		target := weekdays[token]
		daysAhead := (int(target) - int(baseDate.Weekday()) + 7) % 7
		// "next <day>" skips today even when today is the named weekday;
		// bare and "this <day>" take the nearest occurrence including today.
		if prefix == "next" && daysAhead == 0 {
			daysAhead = 7
		}
		return baseDate.AddDate(0, 0, daysAhead), true
	}

	// Month-name dates: "26 november", "nov 26", "26 nov 2026".
	if d, ok := resolveMonthName(s, baseDate, loc); ok {
		return d, true
	}

	// Numeric day/month[/year], day-first.
	if m := numericRE.FindStringSubmatch(s); m != nil {
		if d, ok := resolveNumeric(m, baseDate, loc); ok {
			return d, true
		}
	}

	// ISO-like year-month-day anywhere in the raw text.
	if m := isoRE.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		da, _ := strconv.Atoi(m[3])
		return makeDate(y, time.Month(mo), da, loc)
	}

	return time.Time{}, false
}

func resolveMonthName(s string, baseDate time.Time, loc *time.Location) (time.Time, bool) {
	for i, re := range []*regexp.Regexp{dayMonthRE, monthDayRE} {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		var daySt, monSt, yearSt string
		if i == 0 {
			daySt, monSt, yearSt = m[1], m[2], m[3]
		} else {
			monSt, daySt, yearSt = m[1], m[2], m[3]
		}

		mon, ok := monthFromToken(monSt)
		if !ok {
			continue
		}
		day, err := strconv.Atoi(daySt)
		if err != nil || day < 1 || day > 31 {
			continue
		}

		if yearSt != "" {
			y, _ := strconv.Atoi(yearSt)
			if len(yearSt) == 2 {
				y += 2000
			}
			if d, ok := makeDate(y, mon, day, loc); ok {
				return d, true
			}
			continue
		}

		// Year omitted: nearest future occurrence. An invalid day for this
		// month (e.g. 31 Nov) fails the rule entirely.
		y := baseDate.Year()
		candidate, ok := makeDate(y, mon, day, loc)
		if !ok {
			continue
		}
		if candidate.Before(baseDate) {
			candidate, ok = makeDate(y+1, mon, day, loc)
			if !ok {
				continue
			}
		}
		return candidate, true
	}
	return time.Time{}, false
}

func resolveNumeric(m []string, baseDate time.Time, loc *time.Location) (time.Time, bool) {
	day, _ := strconv.Atoi(m[1])
	mon, _ := strconv.Atoi(m[2])
	yearSt := m[3]

	if mon < 1 || mon > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	if yearSt != "" {
		y, _ := strconv.Atoi(yearSt)
		if len(yearSt) == 2 {
			y += 2000
		}
		return makeDate(y, time.Month(mon), day, loc)
	}

	y := baseDate.Year()
	candidate, ok := makeDate(y, time.Month(mon), day, loc)
	if !ok {
		// Invalid for this year (e.g. 29/02 off a leap year); the rule
		// fails rather than swapping day and month.
		return time.Time{}, false
	}
	if candidate.Before(baseDate) {
		return makeDate(y+1, time.Month(mon), day, loc)
	}
	return candidate, true
}

func monthFromToken(token string) (time.Month, bool) {
	if len(token) < 3 {
		return 0, false
	}
	mon, ok := months[token[:3]]
	return mon, ok
}

// makeDate builds a date and verifies the components survived, rejecting
// values time.Date would silently normalize (e.g. Feb 30 -> Mar 2).
func makeDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
