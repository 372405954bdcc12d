package tui

import (
	"strings"
	"testing"
)

func clearThemeEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATEWHEEL_TUI_MD_STYLE", "")
	t.Setenv("DATEWHEEL_TUI_THEME", "")
	t.Setenv("DATEWHEEL_TUI_DARKBG", "")
	t.Setenv("COLORFGBG", "")
}

func TestMarkdownStyle_FollowsThemePreference(t *testing.T) {
	clearThemeEnv(t)
	if got := markdownStyle("light"); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}
	if got := markdownStyle("dark"); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("DATEWHEEL_TUI_THEME", "dark")
	if got := markdownStyle("auto"); got != "dark" {
		t.Fatalf("expected env theme with auto preference; got %q", got)
	}
}

func TestMarkdownStyle_MDStyleOverridesTheme(t *testing.T) {
	clearThemeEnv(t)
	t.Setenv("DATEWHEEL_TUI_MD_STYLE", "dark")
	if got := markdownStyle("light"); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}
}

func TestMarkdownStyle_ColorFGBG(t *testing.T) {
	clearThemeEnv(t)
	t.Setenv("COLORFGBG", "0;15")
	if got := markdownStyle(""); got != "light" {
		t.Fatalf("expected light for bg 15; got %q", got)
	}
	t.Setenv("COLORFGBG", "15;0")
	if got := markdownStyle(""); got != "dark" {
		t.Fatalf("expected dark for bg 0; got %q", got)
	}
}

func TestMarkdownStyleConfig_UsesTextColorForHeadings(t *testing.T) {
	for _, style := range []string{"light", "dark"} {
		cfg := markdownStyleConfig(style)
		want := colorText.Dark
		if style == "light" {
			want = colorText.Light
		}
		if cfg.H1.Color == nil || *cfg.H1.Color != want {
			t.Fatalf("%s: expected H1 color %q", style, want)
		}
		if cfg.Strong.Color != nil {
			t.Fatalf("%s: expected strong to inherit text color", style)
		}
	}
}

func TestRenderMarkdown_RendersText(t *testing.T) {
	clearThemeEnv(t)
	out := RenderMarkdown("# Keys\n\nPress **enter** to confirm.", 60, "light")
	if !strings.Contains(out, "enter") || !strings.Contains(out, "Keys") {
		t.Fatalf("expected rendered content, got %q", out)
	}
	if RenderMarkdown("   ", 60, "light") != "" {
		t.Fatalf("expected empty output for blank input")
	}
}
