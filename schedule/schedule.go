// Package schedule answers whether a storefront is open at a given moment
// based on its opening and closing wall-clock times.
package schedule

import (
	"strconv"
	"strings"
	"time"
)

// IsOpen evaluates the restaurant's opening window against now. Times are
// "HH:MM" strings on the caller's local clock. Missing or malformed bounds
// fail open: absent scheduling data must never block ordering.
//
// When the closing time is earlier than the opening time the window wraps
// past midnight (open 18:00, close 02:00 means open from evening until
// two in the morning).
func IsOpen(opening, closing string, now time.Time) bool {
	openMinutes, okOpen := parseClock(opening)
	closeMinutes, okClose := parseClock(closing)
	if !okOpen || !okClose {
		return true
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if closeMinutes < openMinutes {
		return nowMinutes >= openMinutes || nowMinutes < closeMinutes
	}
	return nowMinutes >= openMinutes && nowMinutes < closeMinutes
}

// ValidClock reports whether s is a well-formed "HH:MM" time of day.
func ValidClock(s string) bool {
	_, ok := parseClock(s)
	return ok
}

func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}
