package claims

import (
	"fmt"
	"time"
)

// DateFormat is the canonical wire and display format for claim dates.
const DateFormat = "2006-01-02"

var acceptedDateFormats = []string{
	DateFormat,
	"2006.01.02",
	"2006/01/02",
}

// ParseDate accepts a date in any supported input format and returns it
// truncated to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range acceptedDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ValidationError{
		Field:  "date",
		Reason: fmt.Sprintf("%q is not a valid date (expected YYYY-MM-DD, YYYY.MM.DD or YYYY/MM/DD)", s),
	}
}

// NormalizeDate reformats any accepted date string into canonical form.
func NormalizeDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateFormat), nil
}

// Monday returns the Monday of the week containing t, at midnight in t's
// location. Sunday belongs to the preceding week.
func Monday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// IsWorkingDay reports whether t falls on Monday through Friday.
func IsWorkingDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// WorkingDates returns n consecutive working days starting at start,
// skipping weekends. If start itself falls on a weekend the series begins
// on the following Monday.
func WorkingDates(start time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	d := start
	for len(out) < n {
		if IsWorkingDay(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

// FormatHours renders an hour count the way the board displays it, with
// trailing zeros trimmed ("8", "7.5", "0.25").
func FormatHours(h float64) string {
	s := fmt.Sprintf("%.2f", h)
	for len(s) > 0 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}
