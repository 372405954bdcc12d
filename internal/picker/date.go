package picker

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a calendar date with a 0-based month.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Time returns the date at UTC midnight.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month+1), d.Day, 0, 0, 0, 0, time.UTC)
}

// String renders the date as YYYY-MM-DD (1-based month).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// Clamped returns d with the month wrapped into 0..11 and the day limited to
// the month's length.
func (d Date) Clamped() Date {
	if d.Month < 0 {
		d.Month = 0
	}
	if d.Month > 11 {
		d.Month = 11
	}
	d.Day = clampDay(d.Year, d.Month, d.Day)
	return d
}

// DateOf returns the calendar date of t.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m) - 1, Day: d}
}

// DaysInMonth returns the number of days in month (0-based) of year.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year, month, day int) int {
	if day < 1 {
		return 1
	}
	if n := DaysInMonth(year, month); day > n {
		return n
	}
	return day
}

// ParseDate parses YYYY-MM-DD (1-based month) into a Date.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return Date{}, errInvalidDate
	}
	y, err := strconv.Atoi(parts[0])
	if err != nil || len(parts[0]) != 4 {
		return Date{}, errInvalidDate
	}
	mo, err := strconv.Atoi(parts[1])
	if err != nil || mo < 1 || mo > 12 {
		return Date{}, errInvalidDate
	}
	d, err := strconv.Atoi(parts[2])
	if err != nil || d < 1 || d > DaysInMonth(y, mo-1) {
		return Date{}, errInvalidDate
	}
	return Date{Year: y, Month: mo - 1, Day: d}, nil
}

var errInvalidDate = &dateParseErr{msg: "invalid date (expected YYYY-MM-DD)"}

type dateParseErr struct{ msg string }

func (e *dateParseErr) Error() string { return e.msg }

// IsParseError reports whether err came from ParseDate.
func IsParseError(err error) bool {
	_, ok := err.(*dateParseErr)
	return ok
}
