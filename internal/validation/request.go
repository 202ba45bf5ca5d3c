// Package validation contains input validation helpers shared by services
// and handlers.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var requestCategories = map[string]struct{}{
	"tech":          {},
	"education":     {},
	"entertainment": {},
	"business":      {},
	"health":        {},
	"sports":        {},
	"social":        {},
	"other":         {},
}

// ValidateEmail validates email syntax.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\s().\-]{5,39}$`)

// ValidatePhone accepts digits with common separators, optionally prefixed
// with a country code.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(strings.TrimSpace(phone)) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// ValidateCategory checks the category against the known set.
func ValidateCategory(category string) error {
	if _, ok := requestCategories[strings.ToLower(strings.TrimSpace(category))]; !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// ParseDateTime builds a request timestamp from either a combined RFC 3339
// value or separate date and time components. Submission flows reject
// timestamps in the past.
func ParseDateTime(combined, date, clock string) (time.Time, error) {
	if combined != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
			if ts, err := time.Parse(layout, combined); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid date_time %q", combined)
	}

	if date == "" || clock == "" {
		return time.Time{}, fmt.Errorf("date and time are required")
	}
	ts, err := time.Parse("2006-01-02 15:04", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time combination %q %q", date, clock)
	}
	return ts, nil
}
