package tui

import (
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

type rendererKey struct {
	style string
	width int
}

// glamour.WithAutoStyle queries the terminal background and can stall, so
// renderers are built from a resolved style and cached per wrap width.
var termRenderers sync.Map // rendererKey -> *glamour.TermRenderer

// RenderMarkdown renders md for a terminal of the given width. theme is a
// light|dark|auto preference; rendering falls back to the raw text on error.
func RenderMarkdown(md string, width int, theme string) string {
	return renderMarkdown(md, width, markdownStyle(theme))
}

func renderMarkdown(md string, width int, style string) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	r, err := termRenderer(rendererKey{style: style, width: max(width, 10)})
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func termRenderer(k rendererKey) (*glamour.TermRenderer, error) {
	if v, ok := termRenderers.Load(k); ok {
		return v.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyleConfig(k.style)),
		glamour.WithWordWrap(k.width),
	)
	if err != nil {
		return nil, err
	}
	v, _ := termRenderers.LoadOrStore(k, r)
	return v.(*glamour.TermRenderer), nil
}

// markdownStyle resolves "light" or "dark". DATEWHEEL_TUI_MD_STYLE wins, then
// the picker theme preference, then Lip Gloss's background detection.
func markdownStyle(theme string) string {
	if s := strings.ToLower(strings.TrimSpace(os.Getenv("DATEWHEEL_TUI_MD_STYLE"))); s == "light" || s == "dark" {
		return s
	}
	if s := themeSetting(theme); s != "" {
		return s
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

// markdownStyleConfig starts from glamour's stock light or dark style and
// recolors it with the picker palette so help text matches the modal.
func markdownStyleConfig(style string) ansi.StyleConfig {
	light := strings.EqualFold(strings.TrimSpace(style), "light")
	cfg := styles.DarkStyleConfig
	if light {
		cfg = styles.LightStyleConfig
	}
	pick := func(c lipgloss.AdaptiveColor) *string {
		s := c.Dark
		if light {
			s = c.Light
		}
		return &s
	}
	yes, no := true, false

	text, accent := pick(colorText), pick(colorAccent)
	for _, p := range []*ansi.StylePrimitive{
		&cfg.Heading.StylePrimitive, &cfg.H1.StylePrimitive, &cfg.H2.StylePrimitive, &cfg.H3.StylePrimitive,
		&cfg.Text, &cfg.Code.StylePrimitive, &cfg.CodeBlock.StylePrimitive,
	} {
		p.Color = text
	}
	cfg.Link.Color, cfg.LinkText.Color = accent, accent
	cfg.Link.Underline = &yes
	if cfg.CodeBlock.BackgroundColor == nil {
		cfg.CodeBlock.BackgroundColor = pick(colorControl)
	}
	// Emphasis inherits the surrounding text color.
	cfg.Strong.Color, cfg.Emph.Color = nil, nil
	cfg.BlockQuote.Faint = &no
	return cfg
}
