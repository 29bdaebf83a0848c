package domain

import "time"

// DayStart returns the UTC start of t's calendar day as epoch milliseconds.
// This is the uniqueness key for all aggregate rows.
func DayStart(t time.Time) int64 {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
}

// DayStartMillis normalizes an epoch-millisecond timestamp to the UTC start
// of its day. Normalizing an already-normalized key is a no-op.
func DayStartMillis(ms int64) int64 {
	return DayStart(time.UnixMilli(ms))
}
