package domain

import "fmt"

// DayLabel formats a 1-based day index
func DayLabel(day int) string {
	return fmt.Sprintf("Day %d", day)
}

// FormatMinutes renders minutes as "1h 5m", or "45 min" below an hour
func FormatMinutes(minutes int) string {
	hrs, rem := minutes/60, minutes%60
	if hrs > 0 {
		return fmt.Sprintf("%dh %dm", hrs, rem)
	}
	return fmt.Sprintf("%d min", rem)
}
