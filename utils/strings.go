package utils

import "strings"

func StringJoin(items []string, delim string) string {
	if len(items) == 0 {
		return ""
	}
	result := items[0]
	for _, item := range items[1:] {
		result += delim + item
	}
	return result
}

// Truncate shortens s to max runes and marks the cut with an ellipsis.
// Used for surfacing configured URLs in health payloads without leaking
// the full signed endpoint.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// FirstWord returns the leading word of a full name, or the fallback when
// the name is blank. Email greetings address customers by first name only.
func FirstWord(s, fallback string) string {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return fallback
	}
	return fields[0]
}
