package discord

import (
	"fmt"
	"strings"
	"time"

	"withgames/pkg/tz"
)

// ParseEventDateTime parses "YYYY-MM-DD HH:MM" in JST and rejects times in
// the past.
func ParseEventDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date and time are required (YYYY-MM-DD HH:MM)")
	}
	dt, err := time.ParseInLocation("2006-01-02 15:04", s, tz.Tokyo)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time (expected YYYY-MM-DD HH:MM, e.g. 2025-02-15 21:00)")
	}
	if dt.Before(time.Now()) {
		return time.Time{}, fmt.Errorf("the date and time must be in the future")
	}
	return dt, nil
}

// FormatEventDateTime renders a start time in JST for embeds and reminders.
func FormatEventDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(tz.Tokyo).Format("2006/01/02 15:04")
}
