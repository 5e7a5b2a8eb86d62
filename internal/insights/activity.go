package insights

import (
	"fmt"
	"time"
)

// ActivityLabel renders t relative to now: "12 min ago", "3 h ago",
// "1 day ago". The zero time is "Unknown"; times after now count as 0 min.
func ActivityLabel(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	minutes := int(now.Sub(t) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}

	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d h ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
