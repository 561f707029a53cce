package extractdate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantHM    string
		wantMonth string
		wantDay   string
	}{
		{"full mention", "8月5日下午3点半", "下午3点", "8月", "5日"},
		{"chinese numerals", "十二月三号晚上八点见", "晚上八点", "十二月", "三号"},
		{"colon", "明天10:30开会", "10:30", "", ""},
		{"evening short marker", "晚8点", "晚8点", "", ""},
		{"morning", "早上9点15出发", "早上9点15", "", ""},
		{"leftmost month wins", "3月还是4月的5号2点", "2点", "3月", "5号"},
		{"no time", "随便聊聊", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hm, _ := extractHourMinute(tt.input)
			month, _ := extractMonth(tt.input)
			day, _ := extractDay(tt.input)
			assert.Equal(t, tt.wantHM, hm)
			assert.Equal(t, tt.wantMonth, month)
			assert.Equal(t, tt.wantDay, day)
		})
	}
}

func TestNormalizeHourMinute(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		wantHour   string
		wantMinute string
		wantReason FailureReason
	}{
		{"arabic hour", "3点", "03", "00", ReasonNone},
		{"afternoon promotes", "下午3点", "15", "00", ReasonNone},
		{"evening promotes", "晚上8点", "20", "00", ReasonNone},
		{"short evening promotes", "晚8点", "20", "00", ReasonNone},
		{"morning keeps", "上午9点", "09", "00", ReasonNone},
		{"early morning keeps", "早上9点", "09", "00", ReasonNone},
		{"afternoon twelve stays", "下午12点", "12", "00", ReasonNone},
		{"morning never demotes", "上午15点", "15", "00", ReasonNone},
		{"chinese hour", "三点", "03", "00", ReasonNone},
		{"chinese eleven afternoon", "下午十一点", "23", "00", ReasonNone},
		{"chinese twelve", "十二点", "12", "00", ReasonNone},
		{"colon", "10:30", "10", "30", ReasonNone},
		{"minute after clock marker ignored", "10点30", "10", "00", ReasonNone},
		{"hour upper bound accepted", "24点", "24", "00", ReasonNone},
		{"minute upper bound accepted", "10:60", "10", "60", ReasonNone},
		{"hour out of range", "25点", "25", "00", ReasonHourMinuteOutOfRange},
		{"minute out of range", "10:61", "10", "61", ReasonHourMinuteOutOfRange},
		{"marker before colon is malformed", "下午3:30", "", "", ReasonMalformedHourMinute},
		{"missing minute after colon", "3:", "", "", ReasonMalformedHourMinute},
		{"unknown chinese numeral", "三一点", "", "", ReasonMalformedHourMinute},
		{"empty", "", "", "", ReasonNoTimeMention},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &TimeMode{HourMinute: tt.token}
			reason := normalizeHourMinute(m)
			require.Equal(t, tt.wantReason, reason)
			assert.Equal(t, tt.wantHour, m.Hour)
			assert.Equal(t, tt.wantMinute, m.Minute)
		})
	}
}

func TestPromoteHour(t *testing.T) {
	for h := 0; h < 12; h++ {
		assert.Equal(t, h+12, promoteHour("下午", h))
		assert.Equal(t, h+12, promoteHour("晚上", h))
		assert.Equal(t, h+12, promoteHour("晚", h))
		assert.Equal(t, h, promoteHour("上午", h))
		assert.Equal(t, h, promoteHour("早上", h))
		assert.Equal(t, h, promoteHour("", h))
	}
	assert.Equal(t, 13, promoteHour("下午", 13))
}

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"absent uses current month", "", "01", true},
		{"arabic", "8月", "08", true},
		{"two digits", "12月", "12", true},
		{"chinese", "十二月", "12", true},
		{"chinese single", "三月", "03", true},
		{"unknown chinese falls back", "二一月", "01", true},
		{"zero accepted", "0月", "00", true},
		{"thirteen rejected", "13月", "13", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &TimeMode{Month: tt.token}
			assert.Equal(t, tt.ok, normalizeMonth(m, 1))
			assert.Equal(t, tt.want, m.Month)
		})
	}
}

func TestNormalizeDay(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"absent uses current day", "", "27", true},
		{"arabic", "5日", "05", true},
		{"hao marker", "5号", "05", true},
		{"chinese", "三号", "03", true},
		{"chinese twelve", "十二日", "12", true},
		{"thirty one accepted", "31日", "31", true},
		{"thirty two rejected", "32日", "32", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &TimeMode{Day: tt.token}
			assert.Equal(t, tt.ok, normalizeDay(m, 27))
			assert.Equal(t, tt.want, m.Day)
		})
	}
}
