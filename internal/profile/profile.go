package profile

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hrygo/extractdate/plugin/extractdate"
	"github.com/hrygo/extractdate/server/timezone"
)

// Unset marks an integer setting that was not configured.
const Unset = -1

// Profile is the configuration of the extractor CLI and server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Version is the current version of server
	Version string

	// Timezone is the IANA location used to read "now" (default: Local)
	Timezone string
	// DayRange limits results to [now, now+DayRange days] (default: Unset)
	DayRange int
	// StartLimit is the earliest accepted instant, "2006-01-02 15:04:05" or "2006-01-02"
	StartLimit string
	// EndLimit is the latest accepted instant, same layouts as StartLimit
	EndLimit string
	// DayCount limits results to [StartLimit, StartLimit+DayCount days] (default: Unset)
	DayCount int

	// RateLimit is the per-client request rate of the HTTP server, in requests per second
	RateLimit float64
	// RateBurst is the per-client burst of the HTTP server
	RateBurst int
	// LogLevel is one of debug, info, warn, error (default: info)
	LogLevel string

	location *time.Location
	start    time.Time
	end      time.Time
}

// Default returns a profile with no range restriction and the server defaults.
func Default() *Profile {
	return &Profile{
		Mode:      "dev",
		Port:      8081,
		DayRange:  Unset,
		DayCount:  Unset,
		RateLimit: 10,
		RateBurst: 20,
		LogLevel:  "info",
	}
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate normalizes the profile and rejects contradictory range settings.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if _, err := p.SlogLevel(); err != nil {
		return err
	}

	loc, err := timezone.ParseTimezone(p.Timezone)
	if err != nil {
		slog.Error("failed to load timezone", slog.String("timezone", p.Timezone), slog.String("error", err.Error()))
		return errors.Wrap(err, "invalid timezone")
	}
	p.location = loc

	if p.StartLimit != "" {
		if p.start, err = timezone.ParseLimit(p.StartLimit, loc); err != nil {
			return errors.Wrap(err, "invalid start limit")
		}
	}
	if p.EndLimit != "" {
		if p.end, err = timezone.ParseLimit(p.EndLimit, loc); err != nil {
			return errors.Wrap(err, "invalid end limit")
		}
	}

	hasStart, hasEnd := p.StartLimit != "", p.EndLimit != ""
	switch {
	case p.DayRange != Unset && (hasStart || hasEnd || p.DayCount != Unset):
		return errors.New("day range cannot be combined with start limit, end limit or day count")
	case p.DayCount != Unset && !hasStart:
		return errors.New("day count requires a start limit")
	case p.DayCount != Unset && hasEnd:
		return errors.New("day count cannot be combined with an end limit")
	case hasEnd && !hasStart:
		return errors.New("end limit requires a start limit")
	case hasStart && hasEnd && p.end.Before(p.start):
		return errors.Errorf("end limit %s is before start limit %s", p.EndLimit, p.StartLimit)
	}
	return nil
}

// Location returns the validated timezone location.
func (p *Profile) Location() *time.Location {
	if p.location == nil {
		return time.Local
	}
	return p.location
}

// SlogLevel maps LogLevel onto a slog.Level.
func (p *Profile) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(p.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("unknown log level %q", p.LogLevel)
}

// ExtractorOptions maps the range settings onto extractor options. Call
// Validate first.
func (p *Profile) ExtractorOptions() []extractdate.Option {
	loc := p.Location()
	opts := []extractdate.Option{
		extractdate.WithLocation(loc),
		extractdate.WithClock(func() time.Time { return timezone.NowInTimezone(loc) }),
	}
	switch {
	case p.DayRange != Unset:
		opts = append(opts, extractdate.WithDayRange(p.DayRange))
	case p.StartLimit != "" && p.DayCount != Unset:
		opts = append(opts, extractdate.WithWindow(extractdate.DaysFrom(p.start, p.DayCount)))
	case p.StartLimit != "" && p.EndLimit != "":
		opts = append(opts, extractdate.WithWindow(extractdate.Between(p.start, p.end)))
	case p.StartLimit != "":
		opts = append(opts, extractdate.WithWindow(extractdate.From(p.start)))
	}
	return opts
}

// String renders the range settings for log output.
func (p *Profile) String() string {
	return fmt.Sprintf("mode=%s timezone=%s day_range=%d start=%q end=%q day_count=%d",
		p.Mode, p.Location(), p.DayRange, p.StartLimit, p.EndLimit, p.DayCount)
}
