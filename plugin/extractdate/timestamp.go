package extractdate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// canonicalLayout is the shape of the string assembled from the normalized fields.
	canonicalLayout = "2006-01-02 15:04:05"
	// displayLayout renders month, day, hour and minute.
	displayLayout = "01月02日 15:04"
)

var canonicalPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) (\d{2}):(\d{2}):(\d{2})$`)

// canonicalString assembles "yyyy-MM-dd HH:mm:00" from the normalized fields of m.
func canonicalString(year int, m *TimeMode) string {
	return fmt.Sprintf("%04d-%s-%s %s:%s:00", year, m.Month, m.Day, m.Hour, m.Minute)
}

// ParseCanonical parses a canonical date-time string in loc and returns Unix
// milliseconds. Fields outside their calendar range roll over ("2026-02-31"
// is March 3). A string not shaped like canonicalLayout silently yields 0.
func ParseCanonical(value string, loc *time.Location) int64 {
	parts := canonicalPattern.FindStringSubmatch(value)
	if parts == nil {
		return 0
	}
	fields := make([]int, 6)
	for i := range fields {
		n, err := strconv.Atoi(parts[i+1])
		if err != nil {
			return 0
		}
		fields[i] = n
	}
	if loc == nil {
		loc = time.Local
	}
	t := time.Date(fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5], 0, loc)
	return t.UnixMilli()
}

// FormatDisplay renders a Unix millisecond timestamp with displayLayout.
func FormatDisplay(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ts).In(loc).Format(displayLayout)
}

// buildTimestamp fills Canonical, Timestamp and Display on m.
func buildTimestamp(m *TimeMode, year int, loc *time.Location) {
	m.Canonical = canonicalString(year, m)
	m.Timestamp = ParseCanonical(m.Canonical, loc)
	m.Display = FormatDisplay(m.Timestamp, loc)
}

// Window bounds the instants an extraction may produce. A nil bound is open.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Unbounded accepts every instant.
func Unbounded() Window {
	return Window{}
}

// DaysFrom starts at start and ends days days later.
func DaysFrom(start time.Time, days int) Window {
	end := start.AddDate(0, 0, days)
	return Window{Start: &start, End: &end}
}

// From starts at start and has no end.
func From(start time.Time) Window {
	return Window{Start: &start}
}

// Between spans start to end, both inclusive.
func Between(start, end time.Time) Window {
	return Window{Start: &start, End: &end}
}

// Contains reports whether the Unix millisecond instant ts lies inside w.
func (w Window) Contains(ts int64) bool {
	if w.Start != nil && ts < w.Start.UnixMilli() {
		return false
	}
	return w.End == nil || ts <= w.End.UnixMilli()
}

// clone returns a Window whose bounds share no memory with w.
func (w Window) clone() Window {
	var c Window
	if w.Start != nil {
		start := *w.Start
		c.Start = &start
	}
	if w.End != nil {
		end := *w.End
		c.End = &end
	}
	return c
}

// IsUnbounded reports whether neither bound is set.
func (w Window) IsUnbounded() bool {
	return w.Start == nil && w.End == nil
}
