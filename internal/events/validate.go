package events

import (
	"regexp"
	"time"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidDate reports whether s is a real calendar date in YYYY-MM-DD form.
// "2024-02-30" fails even though it matches the pattern.
func ValidDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTime reports whether s is a time of day in HH:MM form.
func ValidTime(s string) bool {
	return timeRe.MatchString(s)
}
