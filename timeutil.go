package coinpnl

import (
	"fmt"
	"time"
)

// timeLayout is the timestamp format used throughout the exchange CSV
// exports, always in UTC.
const timeLayout = "2006-01-02 15:04:05"

// ParseTime parses an exchange timestamp into milliseconds since epoch.
func ParseTime(s string) (int64, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UnixMilli(), nil
}

// FormatTime renders a millisecond epoch timestamp in the exchange format.
func FormatTime(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(timeLayout)
}

// YearOf returns the UTC calendar year of a millisecond timestamp.
func YearOf(ms int64) int {
	return time.UnixMilli(ms).UTC().Year()
}

// YearEnd returns the timestamp of the last second of the given year.
func YearEnd(year int) int64 {
	return time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC).UnixMilli()
}
