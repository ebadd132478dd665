package presenter

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for activity timestamps that arrive without an explicit
// offset. The Atlas API stores instants in UTC but does not always mark them.
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimeAgo renders a compact relative-age label for an activity
// timestamp: "now", "{n}m", "{n}h" or "{n}d", truncating at each tier.
func FormatTimeAgo(timestamp string) string {
	return FormatTimeAgoAt(timestamp, time.Now())
}

// FormatTimeAgoAt is FormatTimeAgo against an explicit reference instant.
func FormatTimeAgoAt(timestamp string, now time.Time) string {
	t, ok := parseTimestamp(timestamp)
	if !ok {
		// Unparsable instants degrade to "now" rather than failing.
		return "now"
	}

	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		// Also covers timestamps slightly in the future.
		return "now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm", int(elapsed/time.Minute))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh", int(elapsed/time.Hour))
	default:
		return fmt.Sprintf("%dd", int(elapsed/(24*time.Hour)))
	}
}

func parseTimestamp(timestamp string) (time.Time, bool) {
	value := strings.TrimSpace(timestamp)
	if value == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
