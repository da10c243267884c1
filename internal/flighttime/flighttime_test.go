package flighttime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{"valid", "08/07/2022,08:00", true},
		{"midnight", "01/01/2030,00:00", true},
		{"iso format", "2022-08-07T08:00", false},
		{"missing comma", "08/07/2022 08:00", false},
		{"twelve hour clock", "08/07/2022,8:00 PM", false},
		{"bad month", "13/07/2022,08:00", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidFormat)
			}
			assert.Equal(t, tt.ok, Valid(tt.input))
		})
	}
}

func TestNow_TruncatesToMinute(t *testing.T) {
	clock := func() time.Time { return time.Date(2030, 3, 9, 14, 5, 59, 999, time.UTC) }
	assert.Equal(t, "03/09/2030,14:05", Now(clock))
}

func TestDurationMinutes(t *testing.T) {
	d, err := DurationMinutes("08/07/2022,08:00", "08/08/2022,02:00")
	require.NoError(t, err)
	assert.Equal(t, int64(1080), d)

	back, err := DurationMinutes("08/08/2022,02:00", "08/07/2022,08:00")
	require.NoError(t, err)
	assert.Equal(t, -d, back)

	zero, err := DurationMinutes("08/07/2022,08:00", "08/07/2022,08:00")
	require.NoError(t, err)
	assert.Zero(t, zero)
}

func TestDurationMinutes_AcrossYears(t *testing.T) {
	d, err := DurationMinutes("12/31/2029,23:30", "01/01/2030,01:15")
	require.NoError(t, err)
	assert.Equal(t, int64(105), d)
}

func TestDurationMinutes_InvalidInput(t *testing.T) {
	_, err := DurationMinutes("tomorrow", "08/08/2022,02:00")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = DurationMinutes("08/08/2022,02:00", "")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompare_LexicographicDiffersFromCalendar(t *testing.T) {
	lex, err := Compare("12/01/2022,10:00", "01/01/2023,10:00", Lexicographic)
	require.NoError(t, err)
	assert.Equal(t, 1, lex)

	chrono, err := Compare("12/01/2022,10:00", "01/01/2023,10:00", Chronological)
	require.NoError(t, err)
	assert.Equal(t, -1, chrono)
}

func TestCompare_ChronologicalRejectsGarbage(t *testing.T) {
	_, err := Compare("soon", "01/01/2023,10:00", Chronological)
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// Lexicographic comparison never fails.
	c, err := Compare("soon", "01/01/2023,10:00", Lexicographic)
	require.NoError(t, err)
	assert.Equal(t, 1, c)
}

func TestIsFutureOrNow(t *testing.T) {
	now := "06/15/2030,12:00"

	ok, err := IsFutureOrNow(now, now, Lexicographic)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsFutureOrNow("06/15/2030,11:59", now, Lexicographic)
	require.NoError(t, err)
	assert.False(t, ok)

	after, err := IsAfter(now, now, Lexicographic)
	require.NoError(t, err)
	assert.False(t, after)
}

func TestInRange(t *testing.T) {
	tests := []struct {
		ts       string
		ordering Ordering
		want     bool
	}{
		{"08/08/2022,10:00", Lexicographic, true},
		{"10/12/2022,10:00", Lexicographic, true},
		{"09/01/2022,00:00", Lexicographic, true},
		{"10/12/2022,10:01", Lexicographic, false},
		// Sorts inside the range as text, outside it on the calendar.
		{"09/01/2031,00:00", Lexicographic, true},
		{"09/01/2031,00:00", Chronological, false},
	}

	for _, tt := range tests {
		t.Run(tt.ts+"/"+tt.ordering.String(), func(t *testing.T) {
			got, err := InRange(tt.ts, "08/08/2022,10:00", "10/12/2022,10:00", tt.ordering)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
