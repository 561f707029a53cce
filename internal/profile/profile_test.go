package profile

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/extractdate/plugin/extractdate"
)

func TestDefault(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())

	assert.Equal(t, "dev", p.Mode)
	assert.True(t, p.IsDev())
	assert.Equal(t, time.Local, p.Location())
	assert.Len(t, p.ExtractorOptions(), 2)

	level, err := p.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestValidate_Mode(t *testing.T) {
	p := Default()
	p.Mode = "staging"
	require.NoError(t, p.Validate())
	assert.Equal(t, "demo", p.Mode)

	p.Mode = "prod"
	require.NoError(t, p.Validate())
	assert.False(t, p.IsDev())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		apply func(p *Profile)
	}{
		{"bad timezone", func(p *Profile) { p.Timezone = "Invalid/Timezone" }},
		{"bad log level", func(p *Profile) { p.LogLevel = "verbose" }},
		{"bad start limit", func(p *Profile) { p.StartLimit = "01/03/2026" }},
		{"bad end limit", func(p *Profile) { p.StartLimit = "2026-03-01"; p.EndLimit = "soon" }},
		{"day range with start", func(p *Profile) { p.DayRange = 3; p.StartLimit = "2026-03-01" }},
		{"day count without start", func(p *Profile) { p.DayCount = 3 }},
		{"day count with end", func(p *Profile) {
			p.StartLimit = "2026-03-01"
			p.EndLimit = "2026-03-05"
			p.DayCount = 3
		}},
		{"end without start", func(p *Profile) { p.EndLimit = "2026-03-05" }},
		{"end before start", func(p *Profile) { p.StartLimit = "2026-03-05"; p.EndLimit = "2026-03-01" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.apply(p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestExtractorOptions(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, loc)

	tests := []struct {
		name      string
		apply     func(p *Profile)
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{
			name:  "no range",
			apply: func(p *Profile) {},
		},
		{
			name:      "start only",
			apply:     func(p *Profile) { p.StartLimit = "2026-03-01" },
			wantStart: &start,
		},
		{
			name:      "start with day count",
			apply:     func(p *Profile) { p.StartLimit = "2026-03-01 00:00:00"; p.DayCount = 7 },
			wantStart: &start,
			wantEnd:   func() *time.Time { t := start.AddDate(0, 0, 7); return &t }(),
		},
		{
			name:      "explicit window",
			apply:     func(p *Profile) { p.StartLimit = "2026-03-01"; p.EndLimit = "2026-03-02 18:00:00" },
			wantStart: &start,
			wantEnd:   func() *time.Time { t := time.Date(2026, 3, 2, 18, 0, 0, 0, loc); return &t }(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			p.Timezone = "Asia/Shanghai"
			tt.apply(p)
			require.NoError(t, p.Validate())

			w := extractdate.New(p.ExtractorOptions()...).Window()
			if tt.wantStart == nil {
				assert.Nil(t, w.Start)
			} else {
				require.NotNil(t, w.Start)
				assert.True(t, tt.wantStart.Equal(*w.Start))
			}
			if tt.wantEnd == nil {
				assert.Nil(t, w.End)
			} else {
				require.NotNil(t, w.End)
				assert.True(t, tt.wantEnd.Equal(*w.End))
			}
		})
	}
}

func TestExtractorOptions_DayRange(t *testing.T) {
	p := Default()
	p.DayRange = 2
	require.NoError(t, p.Validate())

	before := time.Now()
	w := extractdate.New(p.ExtractorOptions()...).Window()
	require.NotNil(t, w.Start)
	require.NotNil(t, w.End)
	assert.False(t, w.Start.Before(before))
	assert.Equal(t, w.Start.AddDate(0, 0, 2), *w.End)
}

func TestExtractorOptions_ClockReadsProfileTimezone(t *testing.T) {
	p := Default()
	p.Timezone = "Asia/Shanghai"
	p.DayRange = 0
	require.NoError(t, p.Validate())

	before := time.Now()
	w := extractdate.New(p.ExtractorOptions()...).Window()
	require.NotNil(t, w.Start)
	assert.Equal(t, "Asia/Shanghai", w.Start.Location().String())
	assert.WithinDuration(t, before, *w.Start, time.Minute)
}
