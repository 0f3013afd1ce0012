package database

import "time"

// TimeLayout is fixed width so that text comparison matches time order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t in UTC with TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}
