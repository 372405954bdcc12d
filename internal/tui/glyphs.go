package tui

import (
	"os"
	"strings"
	"sync/atomic"
)

// glyphTable holds the characters the picker draws with. The ASCII table
// is for fonts that render arrows or box-drawing characters poorly.
type glyphTable struct {
	name                string
	markL, markR        string
	up, down, rule, sep string
}

var (
	unicodeGlyphs = &glyphTable{name: "unicode", markL: "▸", markR: "◂", up: "▲", down: "▼", rule: "─", sep: "·"}
	asciiGlyphs   = &glyphTable{name: "ascii", markL: ">", markR: "<", up: "^", down: "v", rule: "-", sep: "|"}
)

var activeGlyphs atomic.Pointer[glyphTable]

func init() { activeGlyphs.Store(unicodeGlyphs) }

func glyphTableFor(v string) *glyphTable {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "unicode", "utf8":
		return unicodeGlyphs
	case "ascii":
		return asciiGlyphs
	}
	return nil
}

// applyGlyphPreference selects the table named by pref, else by
// DATEWHEEL_TUI_GLYPHS, else unicode. Unknown names leave the current table.
func applyGlyphPreference(pref string) {
	if strings.TrimSpace(pref) == "" {
		pref = os.Getenv("DATEWHEEL_TUI_GLYPHS")
	}
	if strings.TrimSpace(pref) == "" {
		activeGlyphs.Store(unicodeGlyphs)
		return
	}
	if t := glyphTableFor(pref); t != nil {
		activeGlyphs.Store(t)
	}
}

func glyphs() *glyphTable { return activeGlyphs.Load() }

// glyphMarkers frame the selected row of a wheel.
func glyphMarkers() (left, right string) {
	g := glyphs()
	return g.markL, g.markR
}

func glyphUp() string    { return glyphs().up }
func glyphDown() string  { return glyphs().down }
func glyphHRule() string { return glyphs().rule }
func glyphSep() string   { return glyphs().sep }
