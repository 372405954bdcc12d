package tui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Every color is adaptive so the modal reads on light and dark terminals.
// Faint styling is dark-only; faint text on a light background washes out.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted      = ac("240", "243")
	colorText       = ac("235", "252")
	colorControl    = ac("252", "236")
	colorAccent     = ac("27", "62")
	colorOnAccent   = ac("255", "255")
	colorSelectedBg = ac("#e9e9e9", "#262626")
	colorSelectedFg = ac("235", "255")
	colorBorder     = ac("250", "243")

	// Wheel rows fade with distance from the selected row.
	colorTiers = [...]lipgloss.AdaptiveColor{
		ac("232", "255"),
		ac("238", "250"),
		ac("244", "244"),
		ac("251", "239"),
	}
)

func styleMuted() lipgloss.Style {
	st := lipgloss.NewStyle().Foreground(colorMuted)
	if lipgloss.HasDarkBackground() {
		st = st.Faint(true)
	}
	return st
}

// applyColorProfilePreference picks the Lip Gloss color profile. Only
// NO_COLOR disables color; CLICOLOR is meant for plain output, not a TUI.
func applyColorProfilePreference() {
	if os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(upgradeProfile(termenv.ColorProfile(), os.Getenv("TERM"), os.Getenv("COLORTERM")))
}

// upgradeProfile trusts TERM and COLORTERM when they claim more colors than
// the detector found. Some terminals (Terminal.app) under-report.
func upgradeProfile(p termenv.Profile, term, colorterm string) termenv.Profile {
	if p == termenv.Ascii {
		if strings.Contains(strings.ToLower(term), "256color") {
			return termenv.ANSI256
		}
		return p
	}
	ct := strings.ToLower(colorterm)
	switch {
	case strings.Contains(ct, "truecolor"), strings.Contains(ct, "24bit"):
		return termenv.TrueColor
	case strings.Contains(strings.ToLower(term), "256color") && p == termenv.ANSI:
		return termenv.ANSI256
	}
	return p
}

// backgroundHints are consulted in order after the configured theme. Each
// returns "light", "dark" or "" to pass.
var backgroundHints = []func() string{
	func() string { return lightOrDark(os.Getenv("DATEWHEEL_TUI_THEME")) },
	func() string {
		dark, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("DATEWHEEL_TUI_DARKBG")))
		if err != nil {
			return ""
		}
		return map[bool]string{true: "dark", false: "light"}[dark]
	},
	// COLORFGBG is "fg;bg" (sometimes "fg;x;bg"); the last field is the background.
	func() string {
		v := os.Getenv("COLORFGBG")
		bg, err := strconv.Atoi(strings.TrimSpace(v[strings.LastIndex(v, ";")+1:]))
		switch {
		case strings.TrimSpace(v) == "" || err != nil:
			return ""
		case bg < 7:
			return "dark"
		}
		return "light"
	},
}

func lightOrDark(v string) string {
	if v = strings.ToLower(strings.TrimSpace(v)); v == "light" || v == "dark" {
		return v
	}
	return ""
}

// themeSetting is the first explicit light/dark choice from pref or the
// environment, or "" when the background should be detected.
func themeSetting(pref string) string {
	if s := lightOrDark(pref); s != "" {
		return s
	}
	for _, hint := range backgroundHints {
		if s := hint(); s != "" {
			return s
		}
	}
	return ""
}

// applyThemePreference tells Lip Gloss which background to assume. With no
// explicit choice it asks macOS, and otherwise leaves Lip Gloss's own
// detection alone.
func applyThemePreference(pref string) {
	switch themeSetting(pref) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	default:
		if runtime.GOOS != "darwin" {
			return
		}
		if dark, ok := macOSHasDarkAppearance(); ok {
			lipgloss.SetHasDarkBackground(dark)
		}
	}
}

// macOSHasDarkAppearance reads AppleInterfaceStyle, which is "Dark" in dark
// mode and absent (exit status 1) in light mode.
func macOSHasDarkAppearance() (dark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		return false, false
	case err == nil:
		return strings.Contains(strings.ToLower(string(out)), "dark"), true
	case errors.As(err, &exitErr) && exitErr.ExitCode() == 1:
		return false, true
	}
	return false, false
}
