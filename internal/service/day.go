package service

import "time"

// DayBounds returns the UTC calendar day containing t as the inclusive
// window [00:00:00.000, 23:59:59.999].
func DayBounds(t time.Time) (start, end time.Time) {
	u := t.UTC()
	start = time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
