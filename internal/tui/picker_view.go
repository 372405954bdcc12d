package tui

import (
	"math"
	"strings"

	"datewheel/internal/picker"
	"datewheel/internal/wheel"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderPicker draws the modal for s using the regions in l. focus is the
// display position of the keyboard-focused column.
func renderPicker(s *picker.Session, l pickerLayout, focus int, helpLine string) string {
	closing := s.State() == picker.StateClosing
	innerW := l.content.w

	titleSt := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	ruleSt := styleMuted()
	if closing {
		titleSt = styleMuted()
	}

	lines := make([]string, 0, boxContentRows)
	lines = append(lines, fitLine(titleSt.Render(s.Title()), innerW))
	lines = append(lines, ruleSt.Render(strings.Repeat(glyphHRule(), innerW)))

	leftPad := l.columns[0].x - l.content.x
	gap := strings.Repeat(" ", columnGap)
	for r := 0; r < wheelRows; r++ {
		cells := make([]string, 0, 3)
		for p, c := range l.order {
			cells = append(cells, renderWheelCell(s.Wheel(c), r, l.colW, p == focus && !closing, closing))
		}
		lines = append(lines, fitLine(strings.Repeat(" ", leftPad)+strings.Join(cells, gap), innerW))
	}

	lines = append(lines, "")
	lines = append(lines, fitLine(strings.Repeat(" ", l.buttonsAt)+renderButton(s.ConfirmText(), closing), innerW))
	lines = append(lines, fitLine(helpLine, innerW))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	if closing {
		border = border.BorderForeground(colorMuted)
	}
	for i := range lines {
		lines[i] = fitLine(lines[i], innerW)
	}
	return border.Render(strings.Join(lines, "\n"))
}

func renderButton(label string, closing bool) string {
	st := lipgloss.NewStyle().
		Padding(0, 2).
		Foreground(colorOnAccent).
		Background(colorAccent).
		Bold(true)
	if closing {
		st = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted).Background(colorControl)
	}
	return st.Render(label)
}

// renderWheelCell draws row r (0 at the top) of a wheel column.
func renderWheelCell(w *wheel.Wheel, r, colW int, focused, closing bool) string {
	idx := w.Selected() + r - wheelCenter
	if idx < 0 || idx >= w.Len() {
		return strings.Repeat(" ", colW)
	}

	tier := w.EmphasisAt(idx)
	inner := colW - 4
	shown := int(math.Round(float64(inner) * tier.Scale))
	label := centerText(w.Items()[idx].Label, shown)
	label = centerText(label, inner)

	left, right := "  ", "  "
	switch {
	case r == wheelCenter && focused:
		lm, rm := glyphMarkers()
		left, right = lm+" ", " "+rm
	case r == 0 && idx > 0:
		left = glyphUp() + " "
	case r == wheelRows-1 && idx < w.Len()-1:
		left = glyphDown() + " "
	}

	st := lipgloss.NewStyle().Foreground(tierColor(tier))
	if r == wheelCenter {
		st = st.Bold(true)
		if focused {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg)
		}
	}
	if closing {
		st = styleMuted()
	}
	return st.Render(left + label + right)
}

// tierColor maps an emphasis tier's opacity onto the adaptive palette.
func tierColor(t wheel.Tier) lipgloss.AdaptiveColor {
	switch {
	case t.Opacity >= 1:
		return colorTiers[0]
	case t.Opacity >= 0.6:
		return colorTiers[1]
	case t.Opacity >= 0.3:
		return colorTiers[2]
	default:
		return colorTiers[3]
	}
}

// centerText truncates or pads s to width cells, centered.
func centerText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		return xansi.Truncate(s, width, "")
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
