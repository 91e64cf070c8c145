package domain

import (
	"strings"
	"time"
)

// dateLayouts are the accepted calendar date formats, tried in order
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// ParseDate parses a calendar date and normalizes it to UTC
// Returns false if the value is not a recognizable date
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), true
		}
	}

	return time.Time{}, false
}
