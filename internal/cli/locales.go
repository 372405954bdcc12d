package cli

import (
	"fmt"
	"strings"

	"datewheel/internal/locale"
	"datewheel/internal/picker"

	"github.com/spf13/cobra"
)

type localeInfo struct {
	Code       string         `json:"code"`
	Name       string         `json:"name"`
	Order      string         `json:"order"`
	ZeroPadded bool           `json:"zeroPadded"`
	Strings    locale.Strings `json:"strings"`
	Sample     string         `json:"sample"`
	SampleYM   string         `json:"sampleYearMonth"`
	Months     []string       `json:"months,omitempty"`
}

func describeLocale(l locale.Locale, d picker.Date, months bool) localeInfo {
	info := localeInfo{
		Code:       l.Code,
		Name:       locale.DisplayName(l.Code),
		Order:      l.Order.String(),
		ZeroPadded: locale.ZeroPadded(l.Code),
		Strings:    l.Strings,
		Sample:     locale.FormatYMD(d.Year, d.Month, d.Day, l.Code),
		SampleYM:   locale.FormatYearMonth(d.Year, d.Month, l.Code),
	}
	if months {
		info.Months = append([]string(nil), l.Months[:]...)
	}
	return info
}

func newLocalesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales [code]",
		Short: "List supported locales, or show one in detail",
		Long: strings.TrimSpace(`
List the locale registry. Codes match exactly: "zh-tw" is supported but
"zh-TW" is not, and unsupported codes fall back to "en".
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			today := picker.DateOf(app.now())
			if len(args) == 1 {
				code := strings.TrimSpace(args[0])
				l, ok := locale.Lookup(code)
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown locale %q%s", code, didYouMean(code)))
				}
				return writeOut(cmd, app, describeLocale(l, today, true))
			}

			codes := locale.Codes()
			out := make([]localeInfo, 0, len(codes))
			for _, c := range codes {
				out = append(out, describeLocale(locale.Resolve(c), today, false))
			}
			return writeOut(cmd, app, map[string]any{"locales": out, "base": locale.Base})
		},
	}
	return cmd
}
