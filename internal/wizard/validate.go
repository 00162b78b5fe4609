package wizard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// North-American phone shape: optional +1, optional parenthesized
	// area code, space/dot/dash separators between digit groups.
	phonePattern = regexp.MustCompile(`^(\+?1\s?)?(\(?\d{3}\)?[\s.-]?)?\d{3}[\s.-]?\d{4}$`)
)

// Verdict is the outcome of validating a single field. Message carries
// the inline error text to present when the field is invalid.
type Verdict struct {
	Valid   bool
	Message string
}

// Validate is a pure predicate over one field's current value. It
// never touches page state; presentation is the ErrorPresenter's job.
// Format checks run whenever a value is present, even on optional
// fields. The date check treats "today" as now truncated to UTC
// midnight.
func Validate(f Field, value string, checked bool, now time.Time) Verdict {
	value = strings.TrimSpace(value)
	valid := true

	if f.Required {
		if f.Type == FieldCheckbox {
			valid = checked
		} else if value == "" {
			valid = false
		}
	}

	if valid && value != "" {
		switch f.Type {
		case FieldEmail:
			valid = emailPattern.MatchString(value)
		case FieldDate:
			valid = dateTodayOrLater(value, now)
		case FieldTel:
			valid = phonePattern.MatchString(value)
		case FieldNumber:
			if f.HasMin {
				if n, err := strconv.ParseFloat(value, 64); err == nil && n < f.Min {
					valid = false
				}
			}
		}
	}

	if valid {
		return Verdict{Valid: true}
	}
	return Verdict{Valid: false, Message: errorMessage(f)}
}

func dateTodayOrLater(value string, now time.Time) bool {
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return false
	}
	today := time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today)
}

// errorMessage picks the inline message for an invalid field. The text
// depends on the field type, not on which check failed.
func errorMessage(f Field) string {
	switch f.Type {
	case FieldEmail:
		return "Valid Email Required"
	case FieldDate:
		return "Future Date Required"
	case FieldTel:
		return "Invalid Format"
	case FieldNumber:
		if f.HasMin {
			return fmt.Sprintf("Min %s required", strconv.FormatFloat(f.Min, 'f', -1, 64))
		}
	}
	return "Required"
}

// GatePassed is the "all required checkboxes checked" predicate for a
// step. A step with zero required checkboxes passes vacuously.
func GatePassed(boxes []Field, checked map[string]bool) bool {
	for _, b := range boxes {
		if !checked[b.Name] {
			return false
		}
	}
	return true
}
