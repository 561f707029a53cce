// Package timezone provides location helpers for reading "now" and parsing
// configured limit dates.
package timezone

import (
	"fmt"
	"time"
)

// Layouts accepted for configured limit dates.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
)

// ParseTimezone parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// An empty identifier or "Local" selects the process location. If the
// timezone is invalid, returns time.Local and an error.
func ParseTimezone(tz string) (*time.Location, error) {
	switch tz {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}

	return loc, nil
}

// ParseLimit parses a configured limit date in loc. It accepts
// DateTimeLayout and DateLayout; a bare date means the start of that day.
func ParseLimit(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range []string{DateTimeLayout, DateLayout} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid limit %q: want %q or %q", value, DateTimeLayout, DateLayout)
}

// NowInTimezone returns the current time in the given timezone.
func NowInTimezone(tz *time.Location) time.Time {
	if tz == nil {
		tz = time.Local
	}
	return time.Now().In(tz)
}
