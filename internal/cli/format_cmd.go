package cli

import (
	"fmt"
	"strconv"
	"strings"

	"datewheel/internal/locale"
	"datewheel/internal/picker"

	"github.com/spf13/cobra"
)

func newFormatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Format dates with a locale (no terminal needed)",
	}
	cmd.AddCommand(newFormatDateCmd(app))
	cmd.AddCommand(newFormatYearMonthCmd(app))
	return cmd
}

func newFormatDateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "date [YYYY-MM-DD]",
		Short: "Render a date with the locale's pattern (default: today)",
		Example: strings.TrimSpace(`
datewheel format date 2024-02-29 --locale de
datewheel format date --locale zh-CN
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := picker.DateOf(app.now())
			if len(args) == 1 {
				parsed, err := picker.ParseDate(args[0])
				if err != nil {
					return writeErr(cmd, fmt.Errorf("%q: %w", args[0], err))
				}
				d = parsed
			}
			return writeOut(cmd, app, newDateResult(d, app.Locale))
		},
	}
}

type yearMonthResult struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Locale    string `json:"locale"`
	YearMonth string `json:"yearMonth"`
}

func newFormatYearMonthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "year-month YEAR MONTH",
		Short: "Render a year + month label (MONTH is 1-12)",
		Example: strings.TrimSpace(`
datewheel format year-month 2024 2 --locale ja
`),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			y, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return writeErr(cmd, fmt.Errorf("invalid year: %q", args[0]))
			}
			m, err := strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || m < 1 || m > 12 {
				return writeErr(cmd, fmt.Errorf("invalid month: %q (expected 1-12)", args[1]))
			}
			return writeOut(cmd, app, yearMonthResult{
				Year:      y,
				Month:     m,
				Locale:    app.Locale,
				YearMonth: locale.FormatYearMonth(y, m-1, app.Locale),
			})
		},
	}
}
