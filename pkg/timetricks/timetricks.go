package timetricks

import (
	"time"
)

const (
	dayFormat   = "20060102"
	clockFormat = "3:04 PM"
)

func SameDay(t time.Time, t2 time.Time) bool {
	return t.Format(dayFormat) == t2.Format(dayFormat)
}

// TrimClock returns midnight at the start of t's calendar day in t's zone.
func TrimClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SetClock(t time.Time, hour, minute time.Duration) time.Time {
	return TrimClock(t).Add(hour*time.Hour + minute*time.Minute)
}

// Clock formats the wall clock part of t the way notifications show it, e.g.
// "7:26 AM".
func Clock(t time.Time) string {
	return t.Format(clockFormat)
}
