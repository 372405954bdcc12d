package cli

import (
	"errors"
	"fmt"
	"strings"

	"datewheel/internal/debuglog"
	"datewheel/internal/locale"
	"datewheel/internal/picker"
	"datewheel/internal/tui"

	"github.com/spf13/cobra"
)

// dateResult is the scriptable shape of a picked or parsed date. Month is
// 1-based here, unlike picker.Date.
type dateResult struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Locale    string `json:"locale"`
	Formatted string `json:"formatted"`
	YearMonth string `json:"yearMonth"`
}

func newDateResult(d picker.Date, code string) dateResult {
	return dateResult{
		Year:      d.Year,
		Month:     d.Month + 1,
		Day:       d.Day,
		Date:      d.String(),
		Locale:    code,
		Formatted: locale.FormatYMD(d.Year, d.Month, d.Day, code),
		YearMonth: locale.FormatYearMonth(d.Year, d.Month, code),
	}
}

func newPickCmd(app *App) *cobra.Command {
	var (
		title           string
		date            string
		year, month, dd int
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the picker once and print the confirmed date",
		Long: strings.TrimSpace(`
Open the wheel date picker in the terminal and print the confirmed date.

The picker draws on stderr so stdout carries only the result. Fields that are
not given default to today; a day past the end of the month is clamped.
Dismissing the picker (esc) exits non-zero without output.
`),
		Example: strings.TrimSpace(`
datewheel pick
datewheel pick --locale ko-KR --year 2024 --month 2 --day 29
datewheel pick --date 2023-12-31 --format edn
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := app.tuiOptions()
			opts.Title = title
			opts.Output = cmd.ErrOrStderr()

			if strings.TrimSpace(date) != "" {
				d, err := picker.ParseDate(date)
				if err != nil {
					return writeErr(cmd, fmt.Errorf("--date: %w", err))
				}
				opts.Initial = &d
			}
			flags := cmd.Flags()
			if flags.Changed("year") {
				if year < 1 {
					return writeErr(cmd, fmt.Errorf("--year must be positive (got %d)", year))
				}
				opts.Fields = append(opts.Fields, picker.WithInitialYear(year))
			}
			if flags.Changed("month") {
				if month < 1 || month > 12 {
					return writeErr(cmd, fmt.Errorf("--month must be 1-12 (got %d)", month))
				}
				opts.Fields = append(opts.Fields, picker.WithInitialMonth(month-1))
			}
			if flags.Changed("day") {
				if dd < 1 || dd > 31 {
					return writeErr(cmd, fmt.Errorf("--day must be 1-31 (got %d)", dd))
				}
				opts.Fields = append(opts.Fields, picker.WithInitialDay(dd))
			}

			app.printWarnings(cmd)
			got, err := app.pick(opts)
			if errors.Is(err, tui.ErrPickDismissed) {
				debuglog.FromContext(cmd.Context()).Debug("pick dismissed")
				return writeErr(cmd, err)
			}
			if err != nil {
				return writeErr(cmd, fmt.Errorf("pick: %w", err))
			}
			return writeOut(cmd, app, newDateResult(got, app.Locale))
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Dialog title (default: the locale's title)")
	cmd.Flags().StringVar(&date, "date", "", "Initial date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&year, "year", 0, "Initial year")
	cmd.Flags().IntVar(&month, "month", 0, "Initial month (1-12)")
	cmd.Flags().IntVar(&dd, "day", 0, "Initial day")
	return cmd
}
