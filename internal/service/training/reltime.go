package training

import (
	"fmt"
	"time"
)

// Relative renders the elapsed time since tsMillis (unix ms) using the largest
// non-zero unit among days, hours, minutes and seconds.
func Relative(now time.Time, tsMillis int64) string {
	elapsed := now.UnixMilli() - tsMillis
	if elapsed < 0 {
		elapsed = 0
	}

	seconds := elapsed / 1000
	if seconds < 1 {
		return "just now"
	}

	switch {
	case seconds >= 86400:
		return plural(seconds/86400, "day")
	case seconds >= 3600:
		return plural(seconds/3600, "hour")
	case seconds >= 60:
		return plural(seconds/60, "minute")
	default:
		return plural(seconds, "second")
	}
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
