// Package flighttime holds the date rules for flight schedules.
//
// Schedule dates are strings in the MM/DD/YYYY,HH:MM pattern. Range filters and
// "is it in the future" checks compare those strings byte by byte by default,
// which does not agree with calendar order across months and years
// ("12/01/2022,10:00" sorts after "01/01/2023,10:00"). Stored data and clients
// depend on that ordering, so it stays the default; Chronological is available
// as an opt-in. Durations always use calendar arithmetic.
package flighttime

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the Go reference layout for MM/DD/YYYY,HH:MM (24-hour clock).
const Layout = "01/02/2006,15:04"

var ErrInvalidFormat = errors.New("date must match MM/DD/YYYY,HH:MM")

type Ordering int

const (
	Lexicographic Ordering = iota
	Chronological
)

func (o Ordering) String() string {
	if o == Chronological {
		return "chronological"
	}
	return "lexicographic"
}

// Clock returns the current wall-clock time.
type Clock func() time.Time

// Parse reads s in Layout. Values are interpreted as UTC so that durations are
// not skewed by local DST transitions.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return t, nil
}

// Valid reports whether s matches Layout.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func Format(t time.Time) string {
	return t.Truncate(time.Minute).Format(Layout)
}

// Now renders the clock reading in Layout, discarding seconds.
func Now(clock Clock) string {
	if clock == nil {
		clock = time.Now
	}
	return Format(clock())
}

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
// Chronological ordering requires both values to parse.
func Compare(a, b string, o Ordering) (int, error) {
	if o == Lexicographic {
		switch {
		case a < b:
			return -1, nil
		case a > b:
			return 1, nil
		}
		return 0, nil
	}

	ta, err := Parse(a)
	if err != nil {
		return 0, err
	}
	tb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return ta.Compare(tb), nil
}

// IsFutureOrNow reports whether ts is at or after ref.
func IsFutureOrNow(ts, ref string, o Ordering) (bool, error) {
	c, err := Compare(ts, ref, o)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// IsAfter reports whether ts is strictly after ref.
func IsAfter(ts, ref string, o Ordering) (bool, error) {
	c, err := Compare(ts, ref, o)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// InRange reports whether ts lies in the closed interval [start, end].
func InRange(ts, start, end string, o Ordering) (bool, error) {
	lo, err := Compare(ts, start, o)
	if err != nil {
		return false, err
	}
	hi, err := Compare(ts, end, o)
	if err != nil {
		return false, err
	}
	return lo >= 0 && hi <= 0, nil
}

// DurationMinutes returns end-start in whole minutes, rounded toward negative
// infinity.
func DurationMinutes(start, end string) (int64, error) {
	ts, err := Parse(start)
	if err != nil {
		return 0, err
	}
	te, err := Parse(end)
	if err != nil {
		return 0, err
	}

	d := te.Sub(ts)
	minutes := int64(d / time.Minute)
	if d%time.Minute < 0 {
		minutes--
	}
	return minutes, nil
}
