package tui

import (
	"strings"
	"testing"
	"time"

	"datewheel/internal/picker"

	tea "github.com/charmbracelet/bubbletea"
)

func testNow() time.Time { return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC) }

func newTestPickerModel(loc string) PickerModel {
	p := picker.New(picker.Config{Locale: loc, Now: testNow})
	m := NewPickerModel(p, nil)
	m.now = testNow
	return m.SetSize(80, 24)
}

func openAt(m PickerModel, d picker.Date) PickerModel {
	return m.Open("", nil, picker.WithInitialDate(d))
}

// runCmds executes cmd and everything it schedules, feeding messages back
// into the model. Host-facing messages are collected and returned.
func runCmds(t *testing.T, m PickerModel, cmd tea.Cmd) (PickerModel, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 5000 {
			t.Fatalf("command chain did not finish")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case DateSelectedMsg, PickerDismissedMsg:
			out = append(out, msg)
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m, out
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func click(x, y int, action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: action}
}

func TestPickerModel_KeyDownSelectsNextDay(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	m, cmd := m.Update(keyMsg(tea.KeyDown))
	if cmd == nil {
		t.Fatalf("expected an animation tick")
	}
	m, _ = runCmds(t, m, cmd)
	if got := m.Picker().Session().Date(); got.Day != 11 {
		t.Fatalf("expected day 11, got %v", got)
	}
}

func TestPickerModel_TabFocusAndEnterConfirms(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	m, _ = m.Update(keyMsg(tea.KeyTab))
	if m.focus != 1 || m.focusedColumn() != picker.ColumnMonth {
		t.Fatalf("expected month focus, got position %d", m.focus)
	}
	m, cmd := m.Update(keyMsg(tea.KeyUp))
	m, _ = runCmds(t, m, cmd)

	m, cmd = m.Update(keyMsg(tea.KeyEnter))
	m, msgs := runCmds(t, m, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one host message, got %v", msgs)
	}
	sel, ok := msgs[0].(DateSelectedMsg)
	if !ok || sel.Date != (picker.Date{Year: 2024, Month: 3, Day: 10}) {
		t.Fatalf("expected 2024-04-10, got %+v", msgs[0])
	}
	if m.Active() {
		t.Fatalf("expected teardown after the exit transition")
	}
}

func TestPickerModel_EscDismisses(t *testing.T) {
	calls := 0
	m := newTestPickerModel("en").Open("", func(picker.Date) { calls++ })
	m, cmd := m.Update(keyMsg(tea.KeyEsc))
	m, msgs := runCmds(t, m, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one host message, got %v", msgs)
	}
	if _, ok := msgs[0].(PickerDismissedMsg); !ok {
		t.Fatalf("expected dismissal, got %T", msgs[0])
	}
	if calls != 0 {
		t.Fatalf("dismiss must not invoke the callback")
	}
	if m.Active() {
		t.Fatalf("expected session torn down")
	}
}

func TestPickerModel_ClosingIgnoresInput(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	m, _ = m.Update(keyMsg(tea.KeyEnter))
	if m.Picker().Session().State() != picker.StateClosing {
		t.Fatalf("expected closing")
	}
	if _, cmd := m.Update(keyMsg(tea.KeyDown)); cmd != nil {
		t.Fatalf("closing session must ignore keys")
	}
}

func TestPickerModel_ClickNeighbourRowSelectsDirectly(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	l := layoutPicker(m.Picker().Session(), 80, 24)
	day := l.columns[0]
	if l.order[0] != picker.ColumnDay {
		t.Fatalf("expected day column first for en")
	}
	y := day.y + wheelCenter + 1
	m, _ = m.Update(click(day.x+1, y, tea.MouseActionPress))
	m, cmd := m.Update(click(day.x+1, y, tea.MouseActionRelease))
	if cmd != nil {
		t.Fatalf("direct click should not animate")
	}
	if got := m.Picker().Session().Date().Day; got != 11 {
		t.Fatalf("expected day 11, got %d", got)
	}
}

func TestPickerModel_DragMovesWheel(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	l := layoutPicker(m.Picker().Session(), 80, 24)
	day := l.columns[0]
	y := day.y + wheelCenter
	m, _ = m.Update(click(day.x+1, y, tea.MouseActionPress))
	m, _ = m.Update(click(day.x+1, y-2, tea.MouseActionMotion))
	if got := m.Picker().Session().Date().Day; got != 12 {
		t.Fatalf("expected provisional day 12, got %d", got)
	}
	m, cmd := m.Update(click(day.x+1, y-2, tea.MouseActionRelease))
	m, _ = runCmds(t, m, cmd)
	w := m.Picker().Session().Wheel(picker.ColumnDay)
	if !w.Aligned() || w.Selected() != 11 {
		t.Fatalf("expected settled on day 12, selected=%d offset=%v", w.Selected(), w.Offset())
	}
}

func TestPickerModel_MouseWheelScrollsOneRow(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 4, Day: 10})
	l := layoutPicker(m.Picker().Session(), 80, 24)
	month := l.columns[1]
	m, cmd := m.Update(tea.MouseMsg{X: month.x + 1, Y: month.y + 1, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.focus != 1 {
		t.Fatalf("wheel should focus the column under the pointer")
	}
	m, _ = runCmds(t, m, cmd)
	if got := m.Picker().Session().Date(); got != (picker.Date{Year: 2024, Month: 5, Day: 10}) {
		t.Fatalf("expected June, got %v", got)
	}
}

func TestPickerModel_ClickOutsideDismisses(t *testing.T) {
	m := newTestPickerModel("en").Open("", nil)
	m, cmd := m.Update(click(0, 0, tea.MouseActionPress))
	_, msgs := runCmds(t, m, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected dismissal, got %v", msgs)
	}
	if _, ok := msgs[0].(PickerDismissedMsg); !ok {
		t.Fatalf("expected dismissal, got %T", msgs[0])
	}
}

func TestPickerModel_ConfirmButton(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 1, Day: 29})
	l := layoutPicker(m.Picker().Session(), 80, 24)
	m, cmd := m.Update(click(l.confirm.x+1, l.confirm.y, tea.MouseActionPress))
	_, msgs := runCmds(t, m, cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected confirmation, got %v", msgs)
	}
	if sel, ok := msgs[0].(DateSelectedMsg); !ok || sel.Date != (picker.Date{Year: 2024, Month: 1, Day: 29}) {
		t.Fatalf("expected 2024-02-29, got %+v", msgs[0])
	}
}

func TestLayout_FitsScreenAndFollowsLocaleOrder(t *testing.T) {
	for _, tc := range []struct {
		loc   string
		first picker.Column
	}{
		{"en", picker.ColumnDay},
		{"zh", picker.ColumnYear},
		{"ko", picker.ColumnYear},
	} {
		m := newTestPickerModel(tc.loc).Open("", nil)
		l := layoutPicker(m.Picker().Session(), 80, 24)
		if l.order[0] != tc.first {
			t.Fatalf("%s: expected %s first, got %s", tc.loc, tc.first, l.order[0])
		}
		if l.box.x < 0 || l.box.y < 0 || l.box.x+l.box.w > 80 || l.box.y+l.box.h > 24 {
			t.Fatalf("%s: box %+v outside 80x24", tc.loc, l.box)
		}
		for p := 1; p < 3; p++ {
			if l.columns[p].x <= l.columns[p-1].x+l.columns[p-1].w-1 {
				t.Fatalf("%s: overlapping columns %+v", tc.loc, l.columns)
			}
		}
	}
}

func TestPickerModel_ViewShowsSelection(t *testing.T) {
	m := openAt(newTestPickerModel("en"), picker.Date{Year: 2024, Month: 1, Day: 29})
	v := m.View()
	for _, want := range []string{"Select Date", "Confirm", "2024", "Feb", "29"} {
		if !strings.Contains(v, want) {
			t.Fatalf("expected view to contain %q:\n%s", want, v)
		}
	}
	l := layoutPicker(m.Picker().Session(), 80, 24)
	if got := len(strings.Split(v, "\n")); got != l.box.h {
		t.Fatalf("expected %d rows, got %d", l.box.h, got)
	}
}

func TestPickerModel_OverlayKeepsScreenSize(t *testing.T) {
	m := newTestPickerModel("ja").Open("", nil)
	out := m.Overlay(strings.Repeat("background\n", 30))
	lines := strings.Split(out, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "日付を選択") {
		t.Fatalf("expected localized title in overlay")
	}
}
