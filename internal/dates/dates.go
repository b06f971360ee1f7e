// Package dates parses, formats and range-tests the date strings that appear
// in Canvas API responses and in search arguments.
//
// Two kinds of input are accepted and must never be confused. A bare
// calendar date ("2024-03-01") means local midnight on that day; anything
// carrying a time or zone ("2024-03-01T23:59:00Z") is an absolute instant.
// Treating a bare date as UTC would shift date-range filters by the local
// offset.
package dates

import (
	"regexp"
	"strconv"
	"time"
)

// Mode selects how much of a date Format renders.
type Mode int

const (
	// Full renders date, time and zone abbreviation.
	Full Mode = iota
	// DateOnly renders the calendar date.
	DateOnly
)

// Placeholders returned by Format for missing or unreadable input.
const (
	NoDate      = "No date set"
	InvalidDate = "Invalid date"
)

const (
	dateOnlyLayout = "Jan 2, 2006"
	fullLayout     = "Jan 2, 2006 3:04 PM MST"
)

var bareDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// localLayouts carry no zone and are interpreted in local time.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Parse converts s into a time. Bare YYYY-MM-DD input yields local midnight
// on that day; timestamps yield the instant they describe. The second return
// is false when s cannot be parsed or names an impossible calendar date.
func Parse(s string) (time.Time, bool) {
	if m := bareDate.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.Local)
		// time.Date normalises 2024-02-30 to March 1st; reject instead.
		if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
			return time.Time{}, false
		}
		return t, true
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders an optional date string for display in local time.
func Format(s *string, mode Mode) string {
	if s == nil || *s == "" {
		return NoDate
	}
	t, ok := Parse(*s)
	if !ok {
		return InvalidDate
	}
	t = t.In(time.Local)
	if mode == DateOnly {
		return t.Format(dateOnlyLayout)
	}
	return t.Format(fullLayout)
}

// InRange reports whether date falls within [after, before], both bounds
// inclusive of their whole calendar day. Empty or unparseable bounds are
// ignored.
//
// A missing or unparseable date is always in range. Search results lean
// towards including an assignment rather than hiding it because Canvas
// returned a date we could not read.
func InRange(date *string, before, after string) bool {
	if date == nil || *date == "" {
		return true
	}
	t, ok := Parse(*date)
	if !ok {
		return true
	}

	if b, ok := Parse(before); ok {
		if t.After(EndOfDay(b)) {
			return false
		}
	}
	if a, ok := Parse(after); ok {
		if t.Before(StartOfDay(a)) {
			return false
		}
	}
	return true
}

// StartOfDay returns 00:00:00.000 local time on t's local calendar day.
func StartOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// EndOfDay returns 23:59:59.999 local time on t's local calendar day.
func EndOfDay(t time.Time) time.Time {
	t = t.In(time.Local)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.Local)
}
