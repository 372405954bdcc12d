package locale

import (
	"strconv"
	"strings"
	"time"
)

// FormatDate renders the calendar date of t with the locale's pattern.
// Unknown codes use the base locale.
func FormatDate(t time.Time, code string) string {
	y, m, d := t.Date()
	return FormatYMD(y, int(m)-1, d, code)
}

// FormatYMD is FormatDate for a 0-based month index.
func FormatYMD(year, monthIndex, day int, code string) string {
	return expandPattern(Resolve(code).Pattern, year, wrapMonth(monthIndex)+1, day)
}

// FormatYearMonth renders a year + month label. monthIndex is 0-based and
// wrapped into 0..11.
func FormatYearMonth(year, monthIndex int, code string) string {
	l := Resolve(code)
	label := l.Months[wrapMonth(monthIndex)]
	if l.Order == YearFirst {
		return strconv.Itoa(year) + l.YearUnit + label
	}
	return label + " " + strconv.Itoa(year)
}

func wrapMonth(i int) int {
	i %= 12
	if i < 0 {
		i += 12
	}
	return i
}

func expandPattern(p string, year, month, day int) string {
	var b strings.Builder
	for {
		i := strings.IndexByte(p, '{')
		if i < 0 {
			b.WriteString(p)
			return b.String()
		}
		j := strings.IndexByte(p[i:], '}')
		if j < 0 {
			b.WriteString(p)
			return b.String()
		}
		b.WriteString(p[:i])
		switch p[i+1 : i+j] {
		case "YYYY":
			b.WriteString(strconv.Itoa(year))
		case "MM":
			b.WriteString(pad2(month))
		case "DD":
			b.WriteString(pad2(day))
		case "M":
			b.WriteString(strconv.Itoa(month))
		case "D":
			b.WriteString(strconv.Itoa(day))
		default:
			b.WriteString(p[i : i+j+1])
		}
		p = p[i+j+1:]
	}
}

func pad2(n int) string {
	if n >= 0 && n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// ZeroPadded reports whether the locale's pattern pads day and month.
func ZeroPadded(code string) bool {
	p := Resolve(code).Pattern
	return strings.Contains(p, "{MM}") && strings.Contains(p, "{DD}")
}
