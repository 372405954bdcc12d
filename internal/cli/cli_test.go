package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"datewheel/internal/picker"
	"datewheel/internal/tui"
)

var fixedNow = func() time.Time { return time.Date(2024, time.June, 15, 9, 30, 0, 0, time.UTC) }

// isolateEnv keeps the developer's config and env out of the test.
func isolateEnv(t *testing.T) {
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

func newTestApp() *App {
	app := newApp()
	app.now = fixedNow
	app.run = func(tui.Options) error { return errors.New("no terminal in tests") }
	app.pick = func(tui.Options) (picker.Date, error) { return picker.Date{}, tui.ErrPickDismissed }
	return app
}

func runCLI(t *testing.T, app *App, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := newRootCmd(app)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustEnvelope(t *testing.T, app *App, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, app, args...)
	if err != nil {
		t.Fatalf("command failed: datewheel %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, stderr, stdout)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, stdout, args)
	}
	if _, ok := env["data"]; !ok {
		t.Fatalf("expected JSON envelope to contain data key; got: %v", env)
	}
	return env
}

func dataOf(env map[string]any) map[string]any {
	d, _ := env["data"].(map[string]any)
	return d
}

func TestFormatDate_PerLocale(t *testing.T) {
	isolateEnv(t)
	cases := map[string]string{
		"en":    "2024-02-29",
		"de":    "29.02.2024",
		"ja":    "2024年2月29日",
		"ko-KR": "2024년 2월 29일",
		"hi":    "29/2/2024",
	}
	for code, want := range cases {
		env := mustEnvelope(t, newTestApp(), "format", "date", "2024-02-29", "--locale", code)
		d := dataOf(env)
		if d["formatted"] != want {
			t.Fatalf("%s: formatted = %v want %q", code, d["formatted"], want)
		}
		if d["month"] != float64(2) || d["date"] != "2024-02-29" {
			t.Fatalf("%s: unexpected fields %v", code, d)
		}
		if _, ok := env["warnings"]; ok {
			t.Fatalf("%s: expected no warnings, got %v", code, env["warnings"])
		}
	}
}

func TestFormatDate_DefaultsToToday(t *testing.T) {
	isolateEnv(t)
	d := dataOf(mustEnvelope(t, newTestApp(), "format", "date", "--locale", "fr"))
	if d["formatted"] != "15/06/2024" || d["yearMonth"] != "juin 2024" {
		t.Fatalf("unexpected today rendering: %v", d)
	}
}

func TestFormatDate_Invalid(t *testing.T) {
	isolateEnv(t)
	for _, in := range []string{"2023-02-29", "2024-13-01", "24-01-01", "yesterday"} {
		_, stderr, err := runCLI(t, newTestApp(), "format", "date", in)
		if err == nil {
			t.Fatalf("expected error for %q", in)
		}
		if !strings.Contains(string(stderr), "invalid date") {
			t.Fatalf("expected parse error on stderr for %q, got %q", in, stderr)
		}
	}
}

func TestFormatYearMonth(t *testing.T) {
	isolateEnv(t)
	cases := []struct {
		locale, month, want string
	}{
		{"en", "2", "Feb 2024"},
		{"ja", "2", "2024年2月"},
		{"ko", "12", "2024년 12월"},
		{"de", "3", "Mär 2024"},
	}
	for _, tc := range cases {
		d := dataOf(mustEnvelope(t, newTestApp(), "format", "year-month", "2024", tc.month, "--locale", tc.locale))
		if d["yearMonth"] != tc.want {
			t.Fatalf("%s/%s: got %v want %q", tc.locale, tc.month, d["yearMonth"], tc.want)
		}
	}
	if _, _, err := runCLI(t, newTestApp(), "format", "year-month", "2024", "13"); err == nil {
		t.Fatalf("expected month 13 to be rejected")
	}
}

func TestUnknownLocale_WarnsAndFallsBack(t *testing.T) {
	isolateEnv(t)
	env := mustEnvelope(t, newTestApp(), "format", "date", "2024-01-05", "--locale", "zh-TW")
	if dataOf(env)["formatted"] != "2024-01-05" {
		t.Fatalf("expected en rendering for zh-TW, got %v", dataOf(env)["formatted"])
	}
	warnings, _ := env["warnings"].([]any)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", env["warnings"])
	}
	w, _ := warnings[0].(string)
	if !strings.Contains(w, `unknown locale "zh-TW"`) || !strings.Contains(w, `did you mean "zh-tw"?`) {
		t.Fatalf("unexpected warning %q", w)
	}
}

func TestEDNOutput(t *testing.T) {
	isolateEnv(t)
	stdout, _, err := runCLI(t, newTestApp(), "format", "year-month", "2024", "2", "--locale", "ja", "--format", "edn")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := `{:data {:locale "ja" :month 2 :year 2024 :yearMonth "2024年2月"}}` + "\n"
	if string(stdout) != want {
		t.Fatalf("got %q want %q", stdout, want)
	}
}

func TestConfigFileSetsDefaults(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "datewheel.toml")
	if err := os.WriteFile(path, []byte("locale = \"de\"\n[output]\nformat = \"edn\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, newTestApp(), "--config", path, "format", "date", "2024-02-29")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(string(stdout), `:formatted "29.02.2024"`) {
		t.Fatalf("expected de + edn from config, got %q", stdout)
	}

	// Flags win over the file.
	env := mustEnvelope(t, newTestApp(), "--config", path, "--format", "json", "--locale", "ja", "format", "date", "2024-02-29")
	if dataOf(env)["formatted"] != "2024年2月29日" {
		t.Fatalf("expected flags to override config, got %v", dataOf(env))
	}
}

func TestConfigFromEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("DATEWHEEL_LOCALE", "ru")
	d := dataOf(mustEnvelope(t, newTestApp(), "format", "date", "2024-02-29"))
	if d["formatted"] != "29.02.2024" || d["locale"] != "ru" {
		t.Fatalf("expected ru from env, got %v", d)
	}
}

func TestMissingExplicitConfigIsAnError(t *testing.T) {
	isolateEnv(t)
	_, stderr, err := runCLI(t, newTestApp(), "--config", filepath.Join(t.TempDir(), "nope.toml"), "locales")
	if err == nil || len(stderr) == 0 {
		t.Fatalf("expected error for missing config, got err=%v stderr=%q", err, stderr)
	}
}

func TestBadFormatFlag(t *testing.T) {
	isolateEnv(t)
	if _, _, err := runCLI(t, newTestApp(), "--format", "xml", "locales"); err == nil {
		t.Fatalf("expected error for --format xml")
	}
}

func TestDebugLogWritesFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "debug.log")
	mustEnvelope(t, newTestApp(), "--debug-log", path, "format", "date", "2024-02-29")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	if !strings.Contains(string(b), "command start") || !strings.Contains(string(b), "datewheel format date") {
		t.Fatalf("unexpected debug log:\n%s", b)
	}
}
