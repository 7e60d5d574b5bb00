package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoDurationRegex matches the hour/minute part of an ISO-8601 duration (e.g., "PT6H30M").
// Both parts are optional, so "PT45M" and "PT2H" are accepted.
var isoDurationRegex = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// epoch is the fallback instant for timestamps that cannot be parsed.
var epoch = time.Unix(0, 0).UTC()

// timestampLayouts are tried in order when parsing segment timestamps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDurationMinutes converts an ISO-8601 duration to total minutes.
// Missing or malformed durations yield 0; it never fails.
func ParseDurationMinutes(duration string) int {
	match := isoDurationRegex.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	return hours*60 + minutes
}

// ParseTimestamp parses a segment timestamp.
// Timestamps without an offset are read as local wall-clock time and kept in UTC, so
// Hour() and Month() return the local values. Unparsable input returns the epoch and false.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return epoch, false
}

// FormatDuration renders minutes as "Xh Ym", "Xh" or "Ym".
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
