// Package extractdate extracts a month, day and hour-minute mention from
// free-form Chinese text and turns it into an absolute timestamp.
//
// Supported mentions: "8月5日下午3点", "十二月三号晚上8点", "明天10:30".
// Missing month or day default to the current date; the year is always the
// current year.
package extractdate

import (
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyInput is returned by TryExtract for empty text.
	ErrEmptyInput = errors.New("empty input")
	// ErrSessionSpent is returned by TryExtract once an extraction has succeeded.
	ErrSessionSpent = errors.New("extractor already produced a result")
)

// State is the usage state of an Extractor.
type State int

const (
	// StateEnabled accepts extraction calls.
	StateEnabled State = iota
	// StateDisabled rejects every call; reached after a successful extraction.
	StateDisabled
)

func (s State) String() string {
	if s == StateDisabled {
		return "disabled"
	}
	return "enabled"
}

// Extractor is a one-shot extraction session. It keeps retrying until one
// extraction succeeds, then rejects every further call.
type Extractor struct {
	mu    sync.Mutex
	state State

	window   Window
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures an Extractor.
type Option func(*config)

type config struct {
	window   Window
	dayRange *int
	location *time.Location
	now      func() time.Time
	logger   *slog.Logger
}

// WithWindow restricts extracted instants to w.
func WithWindow(w Window) Option {
	return func(c *config) {
		c.window = w
		c.dayRange = nil
	}
}

// WithDayRange restricts extracted instants to [now, now+days] where now is
// read once when the Extractor is created.
func WithDayRange(days int) Option {
	return func(c *config) {
		c.dayRange = &days
	}
}

// WithLocation sets the location used to read the current date and to build timestamps.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates an enabled Extractor. Without options it accepts any instant.
func New(opts ...Option) *Extractor {
	c := &config{
		location: time.Local,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	window := c.window
	if c.dayRange != nil {
		window = DaysFrom(c.now().In(c.location), *c.dayRange)
	}

	return &Extractor{
		state:    StateEnabled,
		window:   window.clone(),
		location: c.location,
		now:      c.now,
		logger:   c.logger,
	}
}

// State returns the current usage state.
func (e *Extractor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Window returns a copy of the bounds fixed at construction.
func (e *Extractor) Window() Window {
	return e.window.clone()
}

// Extract runs the extraction pipeline over text. It returns nil when text is
// empty or when the session is already spent. A failed extraction returns a
// TimeMode with Successful false and leaves the session enabled.
func (e *Extractor) Extract(text string) *TimeMode {
	m, err := e.TryExtract(text)
	if err != nil {
		return nil
	}
	return m
}

// TryExtract is Extract with the rejection cause reported as ErrEmptyInput or
// ErrSessionSpent.
func (e *Extractor) TryExtract(text string) (*TimeMode, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateDisabled {
		e.logger.Debug("extractor already spent", "text", text)
		return nil, ErrSessionSpent
	}
	e.state = StateDisabled

	m := e.run(text)
	if !m.Successful {
		e.state = StateEnabled
		e.logger.Debug("time extraction failed", "text", text, "reason", string(m.Reason))
	}
	return m, nil
}

// run is the extraction pipeline: extract tokens, normalize hour-minute,
// month and day, build the timestamp, then check it against the window.
func (e *Extractor) run(text string) *TimeMode {
	m := &TimeMode{Reason: ReasonNone, loc: e.location}
	text = foldWidth(text)

	hm, ok := extractHourMinute(text)
	if !ok {
		return m.fail(ReasonNoTimeMention)
	}
	m.HourMinute = hm
	m.Month, _ = extractMonth(text)
	m.Day, _ = extractDay(text)

	now := e.now().In(e.location)

	if reason := normalizeHourMinute(m); reason != ReasonNone {
		return m.fail(reason)
	}
	if !normalizeMonth(m, int(now.Month())) {
		return m.fail(ReasonMonthOutOfRange)
	}
	if !normalizeDay(m, now.Day()) {
		return m.fail(ReasonDayOutOfRange)
	}

	buildTimestamp(m, now.Year(), e.location)

	if !e.window.Contains(m.Timestamp) {
		e.logger.Debug("extracted time outside window", "canonical", m.Canonical, "timestamp", m.Timestamp)
		return m.fail(ReasonOutOfWindow)
	}
	m.Successful = true
	return m
}
