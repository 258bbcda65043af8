package attendance

import "time"

// StartOfDay normalizes t to midnight in its location. Marks are stored and
// duplicate-checked against the normalized day, so two marks at different times
// of the same day collide.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// RangeBounds widens [start, end] to the inclusive day boundary
// [start 00:00:00.000, end 23:59:59.999].
func RangeBounds(start, end time.Time) (time.Time, time.Time) {
	from := StartOfDay(start)
	year, month, day := end.Date()
	to := time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), end.Location())
	return from, to
}
