package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"datewheel/internal/config"
	"datewheel/internal/debuglog"
	"datewheel/internal/format"
	"datewheel/internal/locale"
	"datewheel/internal/picker"
	"datewheel/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Locale     string
	Format     string
	PrettyJSON bool
	ConfigPath string
	DebugLog   string

	cfg      config.Config
	format   format.Format
	log      *debuglog.Logger
	warnings []string

	// Replaced in tests; the real ones need a terminal.
	now  func() time.Time
	run  func(tui.Options) error
	pick func(tui.Options) (picker.Date, error)
}

func newApp() *App {
	return &App{now: time.Now, run: tui.Run, pick: tui.Pick}
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "datewheel",
		Short:        "Localized wheel date picker (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive example host
  datewheel

  # Pick one date and print it as JSON
  datewheel pick --locale ja --year 2024 --month 2 --day 29

  # Format without a terminal
  datewheel format date 2024-02-29 --locale de
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive host.
			if len(args) == 0 {
				app.printWarnings(cmd)
				return app.run(app.tuiOptions())
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setup(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.log.Close()
	}

	cmd.PersistentFlags().StringVar(&app.Locale, "locale", "", "Locale code (default from config, then 'en')")
	cmd.PersistentFlags().StringVar(&app.Format, "format", "", "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DATEWHEEL_CONFIG", ""), "Config file (default ~/.config/datewheel/config.{toml,yaml,json})")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("DATEWHEEL_DEBUG_LOG", ""), "Append debug logs to this file")

	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newFormatCmd(app))
	cmd.AddCommand(newLocalesCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

// setup layers flags over the loaded config and opens the debug log.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	app.cfg = cfg

	flags := cmd.Flags()
	if !flags.Changed("locale") || strings.TrimSpace(app.Locale) == "" {
		app.Locale = cfg.Locale
	}
	app.Locale = strings.TrimSpace(app.Locale)
	if app.Locale == "" {
		app.Locale = locale.Base
	}
	if !flags.Changed("format") {
		app.Format = cfg.Output.Format
	}
	if !flags.Changed("pretty") {
		app.PrettyJSON = cfg.Output.Pretty
	}
	if strings.TrimSpace(app.DebugLog) == "" {
		app.DebugLog = cfg.DebugLog
	}

	f, err := format.ParseFormat(app.Format)
	if err != nil {
		return err
	}
	app.format = f

	app.warnings = nil
	if !locale.Known(app.Locale) {
		app.warn(unknownLocaleWarning(app.Locale))
	}

	l, err := debuglog.Open(app.DebugLog)
	if err != nil {
		return err
	}
	app.log = l
	cmd.SetContext(debuglog.Context(cmd.Context(), l.Logger))
	l.Debug("command start", "cmd", cmd.CommandPath(), "locale", app.Locale, "config", cfg.Source)
	return nil
}

func (app *App) warn(msg string) {
	app.warnings = append(app.warnings, msg)
}

// printWarnings is for interactive commands, which have no envelope.
func (app *App) printWarnings(cmd *cobra.Command) {
	for _, w := range app.warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
}

func unknownLocaleWarning(code string) string {
	return fmt.Sprintf("unknown locale %q, using %q", code, locale.Base) + didYouMean(code)
}

func didYouMean(code string) string {
	if s, ok := locale.Suggest(code); ok {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}

func (app *App) tuiOptions() tui.Options {
	return tui.Options{
		Locale:   app.Locale,
		YearSpan: app.cfg.YearSpan,
		Theme:    app.cfg.Theme,
		Glyphs:   app.cfg.Glyphs,
		Now:      app.now,
		Logger:   app.log.Logger,
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, data any) error {
	env := format.Envelope{Data: data, Warnings: app.warnings}
	return format.Write(cmd.OutOrStdout(), env, app.format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
