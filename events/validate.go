package events

import (
	"strings"
	"time"

	"eventdesk/models"
)

// DateLayout is the calendar date form events carry, matching the HTML date
// input the form submits.
const DateLayout = "2006-01-02"

// ValidationResult reports whether the candidate event is acceptable. Errors
// holds one human-readable message per failed check, in check order.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate checks the candidate event fields. Every check runs; errors
// accumulate rather than short-circuit, so the form can show all problems at
// once. The date must not be before the current calendar day, with the time
// of day ignored.
func Validate(e models.Event) ValidationResult {
	return validateAt(e, time.Now())
}

func validateAt(e models.Event, now time.Time) ValidationResult {
	var errs []string

	if len(strings.TrimSpace(e.Name)) < 2 {
		errs = append(errs, "event name must be at least 2 characters")
	}
	if len(strings.TrimSpace(e.Description)) < 5 {
		errs = append(errs, "event description must be at least 5 characters")
	}
	if e.Capacity < 1 {
		errs = append(errs, "event capacity must be greater than 0")
	}
	if strings.TrimSpace(e.Date) == "" {
		errs = append(errs, "event date is required")
	} else if date, err := time.Parse(DateLayout, strings.TrimSpace(e.Date)); err != nil {
		errs = append(errs, "event date must be a valid calendar date")
	} else {
		// Both sides sit at midnight UTC so only the calendar day compares.
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			errs = append(errs, "event date cannot be in the past")
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
