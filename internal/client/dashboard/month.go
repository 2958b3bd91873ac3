package dashboard

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// MonthRange returns the first and last day of the month, both inclusive,
// at midnight UTC.
func MonthRange(year, month int) (from, to time.Time, err error) {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %04d-%02d", ErrInvalidMonth, year, month)
	}
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	to = time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return from, to, nil
}

// DaysIn returns the number of days in the month.
func DaysIn(year, month int) (int, error) {
	_, to, err := MonthRange(year, month)
	if err != nil {
		return 0, err
	}
	return to.Day(), nil
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(s string) (year, month int, err error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Year(), int(t.Month()), nil
}
