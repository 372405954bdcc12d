package tui

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestUpgradeProfile(t *testing.T) {
	cases := []struct {
		in              termenv.Profile
		term, colorterm string
		want            termenv.Profile
	}{
		{termenv.ANSI, "xterm", "truecolor", termenv.TrueColor},
		{termenv.ANSI256, "xterm-256color", "24bit", termenv.TrueColor},
		{termenv.ANSI, "xterm-256color", "", termenv.ANSI256},
		{termenv.Ascii, "xterm-256color", "", termenv.ANSI256},
		{termenv.Ascii, "dumb", "truecolor", termenv.Ascii},
		{termenv.TrueColor, "xterm", "", termenv.TrueColor},
	}
	for _, tc := range cases {
		if got := upgradeProfile(tc.in, tc.term, tc.colorterm); got != tc.want {
			t.Fatalf("upgradeProfile(%v, %q, %q) = %v, want %v", tc.in, tc.term, tc.colorterm, got, tc.want)
		}
	}
}

func TestThemeSetting_Order(t *testing.T) {
	clearThemeEnv(t)
	if got := themeSetting(""); got != "" {
		t.Fatalf("expected detection fallthrough, got %q", got)
	}

	t.Setenv("COLORFGBG", "15;default;0")
	if got := themeSetting("auto"); got != "dark" {
		t.Fatalf("expected dark from COLORFGBG, got %q", got)
	}

	t.Setenv("DATEWHEEL_TUI_DARKBG", "false")
	if got := themeSetting(""); got != "light" {
		t.Fatalf("expected DARKBG to beat COLORFGBG, got %q", got)
	}

	t.Setenv("DATEWHEEL_TUI_THEME", "dark")
	if got := themeSetting(""); got != "dark" {
		t.Fatalf("expected env theme to beat DARKBG, got %q", got)
	}
	if got := themeSetting(" Light "); got != "light" {
		t.Fatalf("expected preference to win, got %q", got)
	}
}
