package progress

import "time"

// DayKey returns the calendar day of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}

// NextStreak returns the streak after a completion on today, given the
// calendar day of the previous activity. A completion on the same calendar
// day as the last activity extends the streak; anything else restarts it
// at 1.
func NextStreak(prev int, lastDay, today string) int {
	if lastDay != "" && lastDay == today {
		return prev + 1
	}
	return 1
}
