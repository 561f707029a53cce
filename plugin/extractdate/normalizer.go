package extractdate

import (
	"strconv"
	"strings"
)

// Upper bounds of each field, inclusive. Hour 24 and minute 60 are accepted
// and roll over to the next day/hour when the timestamp is built.
const (
	maxMonth  = 12
	maxDay    = 31
	maxHour   = 24
	maxMinute = 60
)

// normalizeMonth resolves the month token on m to a two-digit month.
// An absent or unreadable token falls back to the current month.
func normalizeMonth(m *TimeMode, currentMonth int) bool {
	value := strconv.Itoa(currentMonth)
	if m.Month != "" {
		raw := m.Month
		if i := strings.Index(raw, monthMarker); i >= 0 {
			raw = raw[:i]
		}
		value = resolveNumber(raw, currentMonth)
	}
	m.Month = PadZero(value)
	return withinBound(m.Month, maxMonth)
}

// normalizeDay resolves the day token on m to a two-digit day.
// An absent or unreadable token falls back to the current day.
func normalizeDay(m *TimeMode, currentDay int) bool {
	value := strconv.Itoa(currentDay)
	if m.Day != "" {
		value = resolveNumber(m.Day, currentDay)
	}
	m.Day = PadZero(value)
	return withinBound(m.Day, maxDay)
}

// resolveNumber reads the first Arabic number of raw, then the first Chinese
// numeral, and falls back to fallback when neither yields a positive value.
func resolveNumber(raw string, fallback int) string {
	if n, ok := findFirst(numberPattern, raw); ok {
		return n
	}
	if cn, ok := findFirst(chineseNumPattern, raw); ok {
		if v := ChineseNumToInt(cn); v > 0 {
			return strconv.Itoa(v)
		}
	}
	return strconv.Itoa(fallback)
}

// normalizeHourMinute resolves the hour-minute token on m into m.Hour and
// m.Minute on the 24-hour clock.
func normalizeHourMinute(m *TimeMode) FailureReason {
	token := m.HourMinute
	if token == "" {
		return ReasonNoTimeMention
	}

	period, _ := findFirst(periodPattern, token)

	hour, minute := 0, 0
	if n, ok := findFirst(numberPattern, token); ok {
		if strings.Contains(token, colon) {
			parts := strings.Split(token, colon)
			if len(parts) < 2 {
				return ReasonMalformedHourMinute
			}
			h, err := strconv.Atoi(parts[0])
			if err != nil {
				return ReasonMalformedHourMinute
			}
			mm, err := strconv.Atoi(parts[1])
			if err != nil {
				return ReasonMalformedHourMinute
			}
			hour, minute = h, mm
		} else {
			h, err := strconv.Atoi(n)
			if err != nil {
				return ReasonMalformedHourMinute
			}
			hour = h
		}
	} else if cn, ok := findFirst(chineseHourPattern, token); ok && strings.Contains(cn, clockMarker) {
		left, _, _ := strings.Cut(cn, clockMarker)
		hour = ChineseNumToInt(left)
		if hour < 0 {
			return ReasonMalformedHourMinute
		}
	}

	m.Hour = padInt(promoteHour(period, hour))
	m.Minute = padInt(minute)
	if !withinBound(m.Hour, maxHour) || !withinBound(m.Minute, maxMinute) {
		return ReasonHourMinuteOutOfRange
	}
	return ReasonNone
}

// promoteHour converts a 12-hour clock value to the 24-hour clock when period
// marks the afternoon or evening. Morning markers never demote.
func promoteHour(period string, hour int) int {
	if (strings.Contains(period, "下午") || strings.Contains(period, "晚")) && hour < 12 {
		return hour + 12
	}
	return hour
}

// withinBound reports whether the two-digit field lies in [0, limit].
func withinBound(field string, limit int) bool {
	if field == "" {
		return false
	}
	n, err := strconv.Atoi(field)
	return err == nil && n >= 0 && n <= limit
}
