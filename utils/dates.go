package utils

import (
	"fmt"
	"strings"
	"time"
)

// Timestamps arrive from three generations of the system: the portal writes
// RFC3339, the automation platform posts naive ISO strings, and tickets
// migrated from the spreadsheet era carry slash dates. Formats are tried in
// this order and the first hit wins.
var parseFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
}

// SafeParseTime parses a timestamp in any of the known formats. The zero
// time signals an unparseable value; callers treat those records as undated
// rather than failing the request.
func SafeParseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range parseFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

const (
	BucketToday     = "Today"
	BucketYesterday = "Yesterday"
	BucketThisWeek  = "This Week"
	BucketThisMonth = "This Month"
	BucketOlder     = "Older"
)

// DateBucket assigns a timestamp to the list-view grouping label.
func DateBucket(t, now time.Time) string {
	if t.IsZero() {
		return BucketOlder
	}
	t = t.UTC()
	now = now.UTC()

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch {
	case day.Equal(today):
		return BucketToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return BucketYesterday
	case day.After(today.AddDate(0, 0, -7)):
		return BucketThisWeek
	case day.Year() == today.Year() && day.Month() == today.Month():
		return BucketThisMonth
	default:
		return BucketOlder
	}
}

// RelativeTime renders a human description of how long ago t was.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}

	diff := now.Sub(t)
	if diff < time.Minute {
		return "Just now"
	}

	switch {
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return pluralize(int(diff.Hours()/(24*7)), "week")
	default:
		return pluralize(int(diff.Hours()/(24*30)), "month")
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
