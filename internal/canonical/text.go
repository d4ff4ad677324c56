package canonical

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

const dateLayout = "2006-01-02"

// payload dates are accepted in any of these layouts; the calendar date is
// taken as written, without converting between zones.
var dateLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// Text trims surrounding whitespace and applies Unicode NFC.
func Text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// ParseDate parses a payload date-like string. ok is false for empty or
// unrecognised input.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// CalendarDate truncates t to midnight UTC of the date it shows in its own
// location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date renders a payload date as YYYY-MM-DD. Unrecognised input is kept
// trimmed so that it still compares deterministically.
func Date(s string) string {
	if t, ok := ParseDate(s); ok {
		return t.Format(dateLayout)
	}
	return Text(s)
}

// DateOf renders a stored date as YYYY-MM-DD, or "" when absent.
func DateOf(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
