package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange_LastDay(t *testing.T) {
	cases := []struct {
		year, month int
		want        string
		days        int
	}{
		{2024, 2, "2024-02-29", 29},
		{2023, 2, "2023-02-28", 28},
		{2024, 4, "2024-04-30", 30},
		{2024, 12, "2024-12-31", 31},
		{1900, 2, "1900-02-28", 28},
		{2000, 2, "2000-02-29", 29},
	}
	for _, tc := range cases {
		from, to, err := MonthRange(tc.year, tc.month)
		require.NoError(t, err)
		assert.Equal(t, 1, from.Day())
		assert.Equal(t, time.Month(tc.month), from.Month())
		assert.Equal(t, tc.want, to.Format("2006-01-02"))

		days, err := DaysIn(tc.year, tc.month)
		require.NoError(t, err)
		assert.Equal(t, tc.days, days)
	}
}

func TestMonthRange_Invalid(t *testing.T) {
	for _, m := range []int{0, 13, -1} {
		_, _, err := MonthRange(2024, m)
		assert.ErrorIs(t, err, ErrInvalidMonth)
	}
	_, err := DaysIn(0, 5)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 2, m)

	_, _, err = ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, _, err = ParseMonth("feb")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}
