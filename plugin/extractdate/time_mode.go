package extractdate

import (
	"fmt"
	"time"
)

// FailureReason explains why an extraction did not succeed.
type FailureReason string

const (
	// ReasonNone marks a successful extraction.
	ReasonNone FailureReason = "none"
	// ReasonNoTimeMention means the text has no hour-minute mention.
	ReasonNoTimeMention FailureReason = "no_time_mention"
	// ReasonMalformedHourMinute means the hour or minute is not a readable number.
	ReasonMalformedHourMinute FailureReason = "malformed_hour_minute"
	// ReasonHourMinuteOutOfRange means the hour exceeds 24 or the minute exceeds 60.
	ReasonHourMinuteOutOfRange FailureReason = "hour_minute_out_of_range"
	// ReasonMonthOutOfRange means the month exceeds 12.
	ReasonMonthOutOfRange FailureReason = "month_out_of_range"
	// ReasonDayOutOfRange means the day exceeds 31.
	ReasonDayOutOfRange FailureReason = "day_out_of_range"
	// ReasonOutOfWindow means the instant lies outside the configured window.
	ReasonOutOfWindow FailureReason = "out_of_window"
)

// TimeMode is the result of one extraction attempt.
//
// Month, Day and HourMinute first hold the raw substrings matched in the
// input. As the pipeline runs, Month and Day are overwritten with their
// normalized two-digit values. Timestamp and Display are only meaningful
// when Successful is true.
type TimeMode struct {
	Month      string `json:"month"`
	Day        string `json:"day"`
	HourMinute string `json:"hour_minute"`

	Hour   string `json:"hour"`
	Minute string `json:"minute"`

	// Timestamp is the extracted instant in Unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// Display renders month, day, hour and minute as "01月02日 15:04".
	Display string `json:"display"`
	// Canonical is the "2006-01-02 15:04:05" string the timestamp was parsed from.
	Canonical string `json:"canonical"`

	Successful bool          `json:"successful"`
	Reason     FailureReason `json:"reason"`

	loc *time.Location
}

// Time returns Timestamp as a time.Time in the session's location.
func (m *TimeMode) Time() time.Time {
	t := time.UnixMilli(m.Timestamp)
	if m.loc != nil {
		t = t.In(m.loc)
	}
	return t
}

func (m *TimeMode) fail(reason FailureReason) *TimeMode {
	m.Successful = false
	m.Reason = reason
	return m
}

func (m *TimeMode) String() string {
	return fmt.Sprintf("TimeMode{month=%q, day=%q, hm=%q}", m.Month, m.Day, m.HourMinute)
}
