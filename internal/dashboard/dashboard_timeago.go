package dashboard

import (
	"fmt"
	"time"
)

var timeAgoUnits = []struct {
	seconds int64
	label   string
}{
	{31536000, "years"},
	{2592000, "months"},
	{86400, "days"},
	{3600, "hours"},
	{60, "minutes"},
}

// TimeAgo renders the age of t relative to now. A unit is used only once the
// floored count exceeds one, so 90 seconds is still "just now".
func TimeAgo(now, t time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	for _, u := range timeAgoUnits {
		if n := seconds / u.seconds; n > 1 {
			return fmt.Sprintf("%d %s ago", n, u.label)
		}
	}
	return "just now"
}
