package tui

import (
	"strings"

	"datewheel/internal/picker"

	xansi "github.com/charmbracelet/x/ansi"
)

const (
	wheelRows   = 5
	wheelCenter = wheelRows / 2
	columnGap   = 2
	// Rows inside the border: title, rule, wheels, blank, buttons, help.
	boxContentRows = 2 + wheelRows + 3
	minColumnWidth = 6
)

// rect is a screen region in terminal cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// pickerLayout holds the hit-test regions of one rendered frame. Columns are
// indexed by display position; order maps positions to picker columns.
type pickerLayout struct {
	box       rect
	content   rect
	columns   [3]rect
	order     [3]picker.Column
	confirm   rect
	colW      int
	buttonsAt int
}

func layoutPicker(s *picker.Session, width, height int) pickerLayout {
	var l pickerLayout
	copy(l.order[:], s.Columns())

	l.colW = minColumnWidth
	for _, c := range l.order {
		for _, it := range s.Wheel(c).Items() {
			if w := xansi.StringWidth(it.Label) + 4; w > l.colW {
				l.colW = w
			}
		}
	}
	colsW := 3*l.colW + 2*columnGap

	innerW := colsW
	if tw := xansi.StringWidth(s.Title()); tw > innerW {
		innerW = tw
	}
	if bw := buttonWidth(s.ConfirmText()); bw > innerW {
		innerW = bw
	}
	if width > 0 && innerW > width-4 && width-4 >= colsW {
		innerW = width - 4
	}

	boxW := innerW + 4
	boxH := boxContentRows + 2
	l.box = rect{x: max(0, (width-boxW)/2), y: max(0, (height-boxH)/2), w: boxW, h: boxH}
	l.content = rect{x: l.box.x + 2, y: l.box.y + 1, w: innerW, h: boxContentRows}

	left := l.content.x + (innerW-colsW)/2
	for p := range l.columns {
		l.columns[p] = rect{x: left + p*(l.colW+columnGap), y: l.content.y + 2, w: l.colW, h: wheelRows}
	}

	bw := buttonWidth(s.ConfirmText())
	l.buttonsAt = (innerW - bw) / 2
	l.confirm = rect{x: l.content.x + l.buttonsAt, y: l.content.y + 2 + wheelRows + 1, w: bw, h: 1}
	return l
}

func buttonWidth(label string) int { return xansi.StringWidth(label) + 4 }

// columnAt maps a cell to a picker column and a row offset from the
// selected row.
func (l pickerLayout) columnAt(x, y int) (picker.Column, int, bool) {
	for p, r := range l.columns {
		if r.contains(x, y) {
			return l.order[p], y - r.y - wheelCenter, true
		}
	}
	return 0, 0, false
}

// positionOf returns the display position of c.
func (l pickerLayout) positionOf(c picker.Column) int {
	for p, oc := range l.order {
		if oc == c {
			return p
		}
	}
	return 0
}

// fitLine forces s to exactly width cells, ANSI-aware.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the cost of measuring pathological lines.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width)
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			s = xansi.Cut(s, 0, 1)
		} else {
			s = xansi.Cut(s, 0, width-1) + "…"
		}
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to exactly width x height cells.
func normalizePane(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// overlay draws fg over bg with its top-left corner at (x, y). bg must
// already be normalized to width x height.
func overlay(bg, fg string, x, y, width int) string {
	bgLines := strings.Split(bg, "\n")
	for i, fl := range strings.Split(fg, "\n") {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		fw := xansi.StringWidth(fl)
		line := bgLines[row]
		left := fitLine(xansi.Cut(line, 0, x), x)
		right := ""
		if x+fw < width {
			right = xansi.Cut(line, x+fw, width)
		}
		bgLines[row] = left + fl + right
	}
	return strings.Join(bgLines, "\n")
}
