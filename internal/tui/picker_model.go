package tui

import (
	"log/slog"
	"strings"
	"time"

	"datewheel/internal/picker"
	"datewheel/internal/wheel"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// flickVelocity is the page up/down fling speed in units/ms.
const flickVelocity = 2.0

// DateSelectedMsg is emitted once when the user confirms a date.
type DateSelectedMsg struct {
	Session string
	Date    picker.Date
}

// PickerDismissedMsg is emitted when the picker closes without a selection.
type PickerDismissedMsg struct {
	Session string
}

type pickerTickMsg struct{ tick picker.Tick }

type pickerTeardownMsg struct{ session string }

type dragState struct {
	active bool
	col    picker.Column
	startY int
	lastY  int
	moved  bool
}

// PickerModel is the Bubble Tea component that renders a picker.Picker as
// a modal and feeds it keyboard, mouse and timer input.
type PickerModel struct {
	p        *picker.Picker
	keys     pickerKeyMap
	help     help.Model
	showHelp bool
	focus    int
	drag     dragState

	width  int
	height int

	now func() time.Time
	log *slog.Logger
}

// NewPickerModel wraps p. A nil logger discards.
func NewPickerModel(p *picker.Picker, log *slog.Logger) PickerModel {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return PickerModel{
		p:    p,
		keys: newPickerKeyMap(),
		help: help.New(),
		now:  time.Now,
		log:  log,
	}
}

func (m PickerModel) Picker() *picker.Picker { return m.p }

// Active reports whether a session is open or still in its exit transition.
func (m PickerModel) Active() bool { return m.p.Session() != nil }

// Open shows a new picker session and resets per-session UI state.
func (m PickerModel) Open(title string, onSelect func(picker.Date), opts ...picker.Option) PickerModel {
	m.p.Show(title, onSelect, opts...)
	m.focus = 0
	m.drag = dragState{}
	m.showHelp = false
	return m
}

func (m PickerModel) SetSize(width, height int) PickerModel {
	m.width = width
	m.height = height
	return m
}

func (m PickerModel) Init() tea.Cmd { return nil }

func (m PickerModel) Update(msg tea.Msg) (PickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case pickerTickMsg:
		return m, m.schedule(m.p.Advance(msg.tick))

	case pickerTeardownMsg:
		if m.p.Teardown(msg.session) {
			m.log.Debug("picker teardown", "session", msg.session)
		}
		return m, nil

	case tea.KeyMsg:
		if !m.p.IsOpen() {
			return m, nil
		}
		return m.updateKey(msg)

	case tea.MouseMsg:
		if !m.p.IsOpen() {
			return m, nil
		}
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m PickerModel) focusedColumn() picker.Column {
	return m.p.Session().Columns()[m.focus]
}

func (m PickerModel) updateKey(k tea.KeyMsg) (PickerModel, tea.Cmd) {
	m.log.Debug("picker key", "str", k.String(), "focus", m.focus)
	col := m.focusedColumn()
	switch {
	case key.Matches(k, m.keys.Up):
		return m, m.schedule(m.p.Nudge(col, -1))
	case key.Matches(k, m.keys.Down):
		return m, m.schedule(m.p.Nudge(col, 1))
	case key.Matches(k, m.keys.PageUp):
		return m, m.schedule(m.p.Fling(col, -flickVelocity))
	case key.Matches(k, m.keys.PageDown):
		return m, m.schedule(m.p.Fling(col, flickVelocity))
	case key.Matches(k, m.keys.First):
		return m, m.schedule(m.p.Nudge(col, -m.p.Session().Wheel(col).Len()))
	case key.Matches(k, m.keys.Last):
		return m, m.schedule(m.p.Nudge(col, m.p.Session().Wheel(col).Len()))
	case key.Matches(k, m.keys.Prev):
		m.focus = (m.focus + 2) % 3
		return m, nil
	case key.Matches(k, m.keys.Next):
		m.focus = (m.focus + 1) % 3
		return m, nil
	case key.Matches(k, m.keys.Confirm):
		return m.confirm()
	case key.Matches(k, m.keys.Dismiss):
		return m.dismiss()
	case key.Matches(k, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	return m, nil
}

func (m PickerModel) updateMouse(msg tea.MouseMsg) (PickerModel, tea.Cmd) {
	s := m.p.Session()
	l := layoutPicker(s, m.width, m.height)

	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		col, _, ok := l.columnAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		// One notch moves one row once the wheel multiplier is applied.
		delta := s.Wheel(col).Extent() / wheel.WheelMultiplier
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		m.focus = l.positionOf(col)
		return m, m.schedule(m.p.Scroll(col, delta))
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if l.confirm.contains(msg.X, msg.Y) {
			return m.confirm()
		}
		if !l.box.contains(msg.X, msg.Y) {
			return m.dismiss()
		}
		col, _, ok := l.columnAt(msg.X, msg.Y)
		if !ok {
			return m, nil
		}
		m.focus = l.positionOf(col)
		m.drag = dragState{active: true, col: col, startY: msg.Y, lastY: msg.Y}
		m.p.Press(col, m.pointerPos(col, msg.Y), m.now())
		return m, nil

	case tea.MouseActionMotion:
		if !m.drag.active || msg.Y == m.drag.lastY {
			return m, nil
		}
		m.drag.moved = true
		m.drag.lastY = msg.Y
		m.p.Move(m.drag.col, m.pointerPos(m.drag.col, msg.Y), m.now())
		return m, nil

	case tea.MouseActionRelease:
		if !m.drag.active {
			return m, nil
		}
		d := m.drag
		m.drag = dragState{}
		if !d.moved {
			// A click on a neighbouring row selects it directly.
			row := d.startY - l.columns[l.positionOf(d.col)].y - wheelCenter
			w := s.Wheel(d.col)
			if i := w.Selected() + row; row != 0 && i >= 0 && i < w.Len() {
				m.p.SelectIndex(d.col, i)
				return m, nil
			}
		}
		return m, m.schedule(m.p.Release(d.col, m.now()))
	}
	return m, nil
}

// pointerPos converts a terminal row into scroll units.
func (m PickerModel) pointerPos(col picker.Column, y int) float64 {
	return float64(y) * m.p.Session().Wheel(col).Extent()
}

func (m PickerModel) confirm() (PickerModel, tea.Cmd) {
	s := m.p.Session()
	d, ok := m.p.Confirm()
	if !ok {
		return m, nil
	}
	id := s.ID()
	return m, tea.Batch(
		teardownAfterExit(id),
		func() tea.Msg { return DateSelectedMsg{Session: id, Date: d} },
	)
}

func (m PickerModel) dismiss() (PickerModel, tea.Cmd) {
	s := m.p.Session()
	if !m.p.Dismiss() {
		return m, nil
	}
	id := s.ID()
	return m, tea.Batch(
		teardownAfterExit(id),
		func() tea.Msg { return PickerDismissedMsg{Session: id} },
	)
}

func teardownAfterExit(id string) tea.Cmd {
	return tea.Tick(picker.ExitTransition, func(time.Time) tea.Msg { return pickerTeardownMsg{session: id} })
}

// schedule turns a pending picker tick into a Bubble Tea timer.
func (m PickerModel) schedule(t picker.Tick) tea.Cmd {
	if !t.Pending() {
		return nil
	}
	return tea.Tick(t.After, func(time.Time) tea.Msg { return pickerTickMsg{tick: t} })
}

// View renders the modal box, or "" when no session is active.
func (m PickerModel) View() string {
	s := m.p.Session()
	if s == nil {
		return ""
	}
	l := layoutPicker(s, m.width, m.height)
	m.help.Width = l.content.w
	box := renderPicker(s, l, m.focus, m.help.ShortHelpView(m.keys.ShortHelp()))
	if !m.showHelp {
		return box
	}
	m.help.ShowAll = true
	return box + "\n" + m.help.FullHelpView(m.keys.FullHelp())
}

// Overlay draws the modal centered over bg.
func (m PickerModel) Overlay(bg string) string {
	s := m.p.Session()
	if s == nil {
		return bg
	}
	bg = normalizePane(bg, m.width, m.height)
	l := layoutPicker(s, m.width, m.height)
	box := m.View()
	return overlay(bg, strings.TrimRight(box, "\n"), l.box.x, l.box.y, m.width)
}
