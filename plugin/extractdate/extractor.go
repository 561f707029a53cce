package extractdate

import (
	"regexp"
)

// Markers recognized in the input text.
const (
	monthMarker = "月"
	clockMarker = "点"
	colon       = ":"
)

// Pre-compiled patterns, shared read-only by every session.
var (
	// monthPattern matches "8月", "十二月".
	monthPattern = regexp.MustCompile(`(\d{1,2}|[一二三四五六七八九十][一二]?)月`)
	// dayPattern matches "5日", "五号".
	dayPattern = regexp.MustCompile(`(\d{1,2}|[一二三四五六七八九十][一二]?)[号日]`)
	// hourMinutePattern matches "下午3点", "晚上八点", "10:30", "早8点15".
	hourMinutePattern = regexp.MustCompile(`(([上下]午)?|([早晚]上?))?(\d{1,2}|[一二三四五六七八九十][一二]?)[:点](\d{1,2})?`)
	// periodPattern matches the morning/afternoon/evening marker of an hour-minute token.
	periodPattern = regexp.MustCompile(`([上下]午)|([早晚]上?)`)
	// numberPattern matches the first Arabic number of a token.
	numberPattern = regexp.MustCompile(`\d{1,2}`)
	// chineseNumPattern matches the first Chinese numeral of a token.
	chineseNumPattern = regexp.MustCompile(`[一二三四五六七八九十][一二]?`)
	// chineseHourPattern matches a Chinese hour followed by its separator.
	chineseHourPattern = regexp.MustCompile(`[一二三四五六七八九十][一二]?[:点](\d{1,2})?`)
)

// extractHourMinute returns the leftmost hour-minute mention of text.
func extractHourMinute(text string) (string, bool) {
	return findFirst(hourMinutePattern, text)
}

// extractMonth returns the leftmost month mention of text.
func extractMonth(text string) (string, bool) {
	return findFirst(monthPattern, text)
}

// extractDay returns the leftmost day mention of text.
func extractDay(text string) (string, bool) {
	return findFirst(dayPattern, text)
}

func findFirst(re *regexp.Regexp, s string) (string, bool) {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return "", false
	}
	return s[loc[0]:loc[1]], true
}
