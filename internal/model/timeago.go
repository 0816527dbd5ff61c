package model

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders how long before now t was, in the coarsest whole
// unit: "just now", "5 mins ago", "1 hour ago", "3 days ago". The zero time
// renders as "".
func FormatTimeAgo(t, now time.Time) string {
	if t.IsZero() || t.Unix() <= 0 {
		return ""
	}
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}
	if minutes := int(d / time.Minute); minutes < 60 {
		return plural(minutes, "min")
	}
	if hours := int(d / time.Hour); hours < 24 {
		return plural(hours, "hour")
	}
	return plural(int(d/(24*time.Hour)), "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
