// Package picker is the date picker session state machine: three wheels
// (year, month, day), the day-count rule that keeps them consistent, and a
// one-shot confirm callback.
//
// Like package wheel it never schedules anything. Interaction methods return
// a Tick; when Tick.Pending is true the host waits Tick.After and hands the
// tick back to Advance. Ticks carry the session ID, so ticks that outlive
// their session (Show was called again, or the session closed) are dropped.
package picker

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"datewheel/internal/locale"
	"datewheel/internal/wheel"

	"github.com/google/uuid"
)

const (
	// DefaultYearSpan is how many years before the current one are offered.
	DefaultYearSpan = 12
	// ExitTransition is how long a closing session stays renderable.
	ExitTransition = 300 * time.Millisecond
)

// Column identifies one wheel.
type Column int

const (
	ColumnYear Column = iota
	ColumnMonth
	ColumnDay
)

func (c Column) String() string {
	switch c {
	case ColumnYear:
		return "year"
	case ColumnMonth:
		return "month"
	case ColumnDay:
		return "day"
	default:
		return "column(" + strconv.Itoa(int(c)) + ")"
	}
}

func (c Column) valid() bool { return c >= ColumnYear && c <= ColumnDay }

// State is the session lifecycle state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return "closed"
	}
}

// Config is passed to New. Zero values pick defaults.
type Config struct {
	// Locale selects month labels, column order and dialog strings.
	Locale string
	// YearSpan is the number of past years offered (default 12).
	YearSpan int
	// Extent is the wheel item height in scroll units.
	Extent float64
	Now    func() time.Time
	Logger *slog.Logger
}

// Tick is a pending wheel follow-up owned by a session.
type Tick struct {
	Session string
	Column  Column
	After   time.Duration
	Gen     uint64
	Settled bool
}

// Pending reports whether the host must call Advance after t.After.
func (t Tick) Pending() bool { return t.After > 0 }

// Session is one open dialog. It is never reused once closed.
type Session struct {
	id       string
	title    string
	confirm  string
	locale   string
	date     Date
	wheels   [3]*wheel.Wheel
	order    [3]Column
	minYear  int
	maxYear  int
	onSelect func(Date)
	state    State
}

func (s *Session) ID() string          { return s.id }
func (s *Session) Title() string       { return s.title }
func (s *Session) ConfirmText() string { return s.confirm }
func (s *Session) Locale() string      { return s.locale }
func (s *Session) State() State        { return s.state }

// Date returns the current selection with the day clamped to the month.
func (s *Session) Date() Date { return s.date.Clamped() }

// Columns returns the left-to-right column order.
func (s *Session) Columns() []Column { return s.order[:] }

// Wheel returns the wheel for c, or nil for an unknown column.
func (s *Session) Wheel(c Column) *wheel.Wheel {
	if !c.valid() {
		return nil
	}
	return s.wheels[c]
}

// YearRange returns the oldest and newest selectable years.
func (s *Session) YearRange() (oldest, newest int) { return s.minYear, s.maxYear }

// Picker owns at most one session at a time.
type Picker struct {
	cfg Config
	log *slog.Logger
	cur *Session
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// New returns a closed picker.
func New(cfg Config) *Picker {
	if cfg.YearSpan <= 0 {
		cfg.YearSpan = DefaultYearSpan
	}
	if cfg.Extent <= 0 {
		cfg.Extent = wheel.DefaultExtent
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if strings.TrimSpace(cfg.Locale) == "" {
		cfg.Locale = locale.Base
	}
	log := cfg.Logger
	if log == nil {
		log = discardLogger
	}
	return &Picker{cfg: cfg, log: log}
}

// Config returns the effective configuration.
func (p *Picker) Config() Config { return p.cfg }

// SetLocale changes the locale used by the next Show. An open session keeps
// the locale it was opened with.
func (p *Picker) SetLocale(code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = locale.Base
	}
	p.cfg.Locale = code
}

// Session returns the open or closing session, or nil.
func (p *Picker) Session() *Session { return p.cur }

// IsOpen reports whether a session accepts input.
func (p *Picker) IsOpen() bool { return p.open() != nil }

func (p *Picker) open() *Session {
	if p.cur == nil || p.cur.state != StateOpen {
		return nil
	}
	return p.cur
}

// Option adjusts the initial selection of Show.
type Option func(*showOptions)

type showOptions struct {
	year, month, day          int
	hasYear, hasMonth, hasDay bool
}

func WithInitialYear(y int) Option {
	return func(o *showOptions) { o.year, o.hasYear = y, true }
}

// WithInitialMonth sets the 0-based initial month.
func WithInitialMonth(m int) Option {
	return func(o *showOptions) { o.month, o.hasMonth = m, true }
}

func WithInitialDay(d int) Option {
	return func(o *showOptions) { o.day, o.hasDay = d, true }
}

func WithInitialDate(d Date) Option {
	return func(o *showOptions) {
		WithInitialYear(d.Year)(o)
		WithInitialMonth(d.Month)(o)
		WithInitialDay(d.Day)(o)
	}
}

// Show opens a new session, replacing any previous one. onSelect fires at
// most once, on Confirm. An empty title uses the locale's dialog title.
func (p *Picker) Show(title string, onSelect func(Date), opts ...Option) *Session {
	var o showOptions
	for _, opt := range opts {
		opt(&o)
	}

	if prev := p.cur; prev != nil && prev.state != StateClosed {
		prev.state = StateClosed
		p.log.Debug("picker session replaced", "session", prev.id)
	}

	now := p.cfg.Now()
	today := DateOf(now)
	d := today
	if o.hasYear {
		d.Year = o.year
	}
	if o.hasMonth {
		d.Month = o.month
	}
	if o.hasDay {
		d.Day = o.day
	}
	d = d.Clamped()

	code := p.cfg.Locale
	loc := locale.Resolve(code)
	strs := locale.DialogStrings(code)
	if strings.TrimSpace(title) == "" {
		title = strs.Title
	}

	s := &Session{
		id:       uuid.NewString(),
		title:    title,
		confirm:  strs.Confirm,
		locale:   code,
		date:     d,
		maxYear:  now.Year(),
		minYear:  now.Year() - p.cfg.YearSpan,
		onSelect: onSelect,
		state:    StateOpen,
	}
	if loc.Order == locale.YearFirst {
		s.order = [3]Column{ColumnYear, ColumnMonth, ColumnDay}
	} else {
		s.order = [3]Column{ColumnDay, ColumnMonth, ColumnYear}
	}

	s.wheels[ColumnYear] = wheel.New(yearItems(s.maxYear, s.minYear), p.cfg.Extent)
	s.wheels[ColumnMonth] = wheel.New(monthItems(loc.Months), p.cfg.Extent)
	s.wheels[ColumnDay] = wheel.New(dayItems(DaysInMonth(d.Year, d.Month)), p.cfg.Extent)

	// An out-of-range year is kept in the date; the wheel rests on its first row.
	if i := s.wheels[ColumnYear].IndexOf(d.Year); i >= 0 {
		s.wheels[ColumnYear].Jump(i)
	} else {
		s.wheels[ColumnYear].Jump(0)
	}
	s.wheels[ColumnMonth].Jump(d.Month)
	s.wheels[ColumnDay].Jump(d.Day - 1)

	p.cur = s
	p.log.Debug("picker session opened", "session", s.id, "locale", code, "date", d.String())
	return s
}

// Confirm emits the current date to the callback and starts closing. It
// returns false when no session is open.
func (p *Picker) Confirm() (Date, bool) {
	s := p.open()
	if s == nil {
		return Date{}, false
	}
	d := s.Date()
	s.state = StateClosing
	p.log.Debug("picker session confirmed", "session", s.id, "date", d.String())
	if s.onSelect != nil {
		s.onSelect(d)
	}
	return d, true
}

// Dismiss starts closing without invoking the callback.
func (p *Picker) Dismiss() bool {
	s := p.open()
	if s == nil {
		return false
	}
	s.state = StateClosing
	p.log.Debug("picker session dismissed", "session", s.id)
	return true
}

// Teardown finishes the exit transition of session id.
func (p *Picker) Teardown(id string) bool {
	s := p.cur
	if s == nil || s.id != id || s.state != StateClosing {
		return false
	}
	s.state = StateClosed
	p.cur = nil
	return true
}

func (p *Picker) wheelFor(c Column) (*Session, *wheel.Wheel) {
	s := p.open()
	if s == nil || !c.valid() {
		return nil, nil
	}
	return s, s.wheels[c]
}

// Press starts a drag on column c.
func (p *Picker) Press(c Column, pos float64, at time.Time) {
	if _, w := p.wheelFor(c); w != nil {
		w.Press(pos, at)
	}
}

// Move follows a drag on column c.
func (p *Picker) Move(c Column, pos float64, at time.Time) {
	s, w := p.wheelFor(c)
	if w == nil {
		return
	}
	w.Move(pos, at)
	p.track(s, c)
}

// Release ends a drag on column c.
func (p *Picker) Release(c Column, at time.Time) Tick {
	s, w := p.wheelFor(c)
	if w == nil {
		return Tick{}
	}
	return p.after(s, c, w.Release(at))
}

// Scroll applies one wheel tick to column c.
func (p *Picker) Scroll(c Column, delta float64) Tick {
	s, w := p.wheelFor(c)
	if w == nil {
		return Tick{}
	}
	return p.after(s, c, w.Scroll(delta))
}

// Fling starts inertia on column c with velocity v (units/ms).
func (p *Picker) Fling(c Column, v float64) Tick {
	s, w := p.wheelFor(c)
	if w == nil {
		return Tick{}
	}
	return p.after(s, c, w.Fling(v))
}

// Nudge animates column c by delta rows, counted from where a running snap
// is headed so repeated presses each advance one row.
func (p *Picker) Nudge(c Column, delta int) Tick {
	s, w := p.wheelFor(c)
	if w == nil {
		return Tick{}
	}
	return p.after(s, c, w.SnapTo(w.Target()+delta))
}

// SelectIndex selects row i of column c immediately (a direct click).
func (p *Picker) SelectIndex(c Column, i int) {
	s, w := p.wheelFor(c)
	if w == nil || i < 0 || i >= w.Len() {
		return
	}
	w.Jump(i)
	p.commit(s, c)
}

// Advance runs a tick previously returned by this picker.
func (p *Picker) Advance(t Tick) Tick {
	s, w := p.wheelFor(t.Column)
	if w == nil || s.id != t.Session {
		return Tick{}
	}
	return p.after(s, t.Column, w.Advance(t.Gen))
}

func (p *Picker) after(s *Session, c Column, st wheel.Step) Tick {
	if st.Settled {
		p.commit(s, c)
	} else {
		p.track(s, c)
	}
	return Tick{Session: s.id, Column: c, After: st.After, Gen: st.Gen, Settled: st.Settled}
}

// track copies the wheel's provisional selection into the date.
func (p *Picker) track(s *Session, c Column) {
	it, ok := s.wheels[c].SelectedItem()
	if !ok {
		return
	}
	switch c {
	case ColumnYear:
		s.date.Year = it.Value
	case ColumnMonth:
		s.date.Month = it.Value
	case ColumnDay:
		s.date.Day = it.Value
	}
}

func (p *Picker) commit(s *Session, c Column) {
	p.track(s, c)
	if c == ColumnYear || c == ColumnMonth {
		p.reconcileDays(s)
	}
	p.log.Debug("picker wheel settled", "session", s.id, "column", c.String(), "date", s.date.String())
}

// reconcileDays rebuilds the day wheel when the month length changed.
func (p *Picker) reconcileDays(s *Session) {
	n := DaysInMonth(s.date.Year, s.date.Month)
	dw := s.wheels[ColumnDay]
	if dw.Len() == n {
		return
	}
	if s.date.Day > n {
		s.date.Day = n
	}
	dw.SetItems(dayItems(n), s.date.Day-1)
}

func yearItems(newest, oldest int) []wheel.Item {
	out := make([]wheel.Item, 0, newest-oldest+1)
	for y := newest; y >= oldest; y-- {
		out = append(out, wheel.Item{Value: y, Label: strconv.Itoa(y)})
	}
	return out
}

func monthItems(labels [12]string) []wheel.Item {
	out := make([]wheel.Item, 12)
	for i, l := range labels {
		out[i] = wheel.Item{Value: i, Label: l}
	}
	return out
}

func dayItems(n int) []wheel.Item {
	out := make([]wheel.Item, n)
	for i := range out {
		out[i] = wheel.Item{Value: i + 1, Label: strconv.Itoa(i + 1)}
	}
	return out
}
