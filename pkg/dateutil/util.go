package dateutil

import "time"

const secondsPerDay = 86400

// DayNumber maps a time to its calendar day, counted as whole days since the
// unix epoch. Two timestamps compare equal exactly when they fall on the same
// UTC day.
func DayNumber(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

// DayBounds returns the first instant of the day containing t and the first
// instant of the next day, suitable for half-open range queries.
func DayBounds(t time.Time) (time.Time, time.Time) {
	day := DayNumber(t)
	start := time.Unix(day*secondsPerDay, 0).UTC()
	return start, start.Add(24 * time.Hour)
}
