package utils

import "time"

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDate accepts ISO (YYYY-MM-DD) then European (DD/MM/YYYY) input.
// The boolean is false when neither layout matches; callers fall back to
// their defaults instead of failing the request.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDateDefault parses like ParseDate but substitutes def on failure
// (including the empty string).
func ParseDateDefault(s string, def time.Time) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return def
}

// Today truncates now to a date in local time.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// StartOfWeek returns the Monday of t's week (Monday–Sunday weeks).
func StartOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return t.AddDate(0, 0, -(weekday - 1))
}
