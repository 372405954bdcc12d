package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{
		"DATEWHEEL_CONFIG", "DATEWHEEL_LOCALE", "DATEWHEEL_YEAR_SPAN", "DATEWHEEL_THEME",
		"DATEWHEEL_GLYPHS", "DATEWHEEL_DEBUG_LOG", "DATEWHEEL_OUTPUT_FORMAT",
		"DATEWHEEL_OUTPUT_PRETTY", "DATEWHEEL_WEB_ADDR",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d := Default()
	if c.Locale != d.Locale || c.YearSpan != d.YearSpan || c.Output.Format != "json" || c.Web.Addr != d.Web.Addr {
		t.Fatalf("expected defaults, got %+v", c)
	}
	if c.Source != "" {
		t.Fatalf("expected no source file, got %q", c.Source)
	}
}

func TestLoad_DefaultPathTOML(t *testing.T) {
	isolate(t)
	writeFile(t, filepath.Join(DefaultPath(), "config.toml"), `
locale = "ja"
year_span = 30

[output]
format = "edn"
pretty = true
`)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Locale != "ja" || c.YearSpan != 30 || c.Output.Format != "edn" || !c.Output.Pretty {
		t.Fatalf("unexpected config %+v", c)
	}
	if !strings.HasSuffix(c.Source, "config.toml") {
		t.Fatalf("expected source path, got %q", c.Source)
	}
}

func TestLoad_ExplicitYAMLAndEnvOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "dw.yaml")
	writeFile(t, path, "locale: fr\ntheme: light\nweb:\n  addr: 0.0.0.0:9000\n")
	t.Setenv("DATEWHEEL_LOCALE", "de")
	t.Setenv("DATEWHEEL_WEB_ADDR", "127.0.0.1:7000")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Locale != "de" {
		t.Fatalf("expected env to override file, got %q", c.Locale)
	}
	if c.Theme != "light" {
		t.Fatalf("expected theme from file, got %q", c.Theme)
	}
	if c.Web.Addr != "127.0.0.1:7000" {
		t.Fatalf("expected nested env override, got %q", c.Web.Addr)
	}
}

func TestLoad_ConfigEnvVar(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "dw.json")
	writeFile(t, path, `{"glyphs": "ascii"}`)
	t.Setenv("DATEWHEEL_CONFIG", path)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Glyphs != "ascii" {
		t.Fatalf("expected ascii glyphs, got %q", c.Glyphs)
	}
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for a missing explicit file")
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, bad, "[output]\nformat = \"xml\"\n")
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "output.format") {
		t.Fatalf("expected output.format validation error, got %v", err)
	}

	broken := filepath.Join(t.TempDir(), "broken.toml")
	writeFile(t, broken, "locale = \n")
	if _, err := Load(broken); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		ok   bool
	}{
		{"defaults", func(*Config) {}, true},
		{"edn", func(c *Config) { c.Output.Format = "EDN" }, true},
		{"negative span", func(c *Config) { c.YearSpan = -1 }, false},
		{"bad theme", func(c *Config) { c.Theme = "sepia" }, false},
		{"bad glyphs", func(c *Config) { c.Glyphs = "emoji" }, false},
	}
	for _, tc := range cases {
		c := Default()
		tc.mut(&c)
		if err := c.Validate(); (err == nil) != tc.ok {
			t.Fatalf("%s: got err=%v", tc.name, err)
		}
	}
}
