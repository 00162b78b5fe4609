package wizard

import (
	"fmt"
	"strings"
	"time"
)

// Summary is the read-only projection of form values shown on the
// review step. It is a point-in-time snapshot computed when the review
// step is entered, never a live binding.
type Summary struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	EventType     string `json:"event_type"`
	Duration      string `json:"estimated_duration"`
	VenueName     string `json:"venue_name"`
	VenueAddress  string `json:"venue_address"`
	Piano         string `json:"piano_availability"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Referral      string `json:"referral"`
	Notes         string `json:"notes"`
	GreetingName  string `json:"greeting_name"`
	GreetingEmail string `json:"greeting_email"`
}

// BuildSummary projects the current field values into review text.
// The hourly form uses the *_hourly field names for event type and
// notes; both spellings are consulted.
func BuildSummary(st *State) Summary {
	eventType := st.Value("event_type")
	if strings.TrimSpace(eventType) == "" {
		eventType = st.Value("event_type_hourly")
	}
	notes := st.Value("message")
	if strings.TrimSpace(notes) == "" {
		notes = st.Value("message_hourly")
	}

	return Summary{
		Date:          FormatDate(st.Value("event_date")),
		Time:          FormatTime(st.Value("event_time")),
		EventType:     FormatSelection(eventType, "Not selected"),
		Duration:      orDash(st.Value("estimated_duration")),
		VenueName:     orDefault(st.Value("venue_name"), "Not specified"),
		VenueAddress:  orDash(st.Value("venue_address")),
		Piano:         FormatSelection(st.Value("piano_availability"), "Unknown"),
		Name:          orDash(st.Value("name")),
		Email:         orDash(st.Value("email")),
		Phone:         FormatPhone(st.Value("phone")),
		Referral:      FormatSelection(st.Value("referral"), "Not specified"),
		Notes:         FormatNotes(notes),
		GreetingName:  orDefault(st.Value("name"), "there"),
		GreetingEmail: orDefault(st.Value("email"), "your email address"),
	}
}

// FormatDate renders a YYYY-MM-DD value as "Month D, YYYY" using the
// UTC calendar date. Absent or unparseable values render as a dash.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	d, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return "-"
	}
	return d.Format("January 2, 2006")
}

// FormatTime renders an HH:MM value as a 12-hour clock time with
// AM/PM. Absent or unparseable values render as a dash.
func FormatTime(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return "-"
	}
	return t.Format("3:04 PM")
}

// FormatPhone extracts digits and renders exactly ten of them as
// "(AAA) PPP-SSSS". Anything else passes through as entered; an empty
// value renders as "Not provided".
func FormatPhone(value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" || raw == "-" {
		return "Not provided"
	}
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) == 10 {
		return fmt.Sprintf("(%s) %s-%s", d[0:3], d[3:6], d[6:10])
	}
	return raw
}

// FormatSelection renders a select value with underscores replaced by
// spaces. Empty values and the "Unknown" sentinel render as the given
// placeholder.
func FormatSelection(value, placeholder string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "Unknown" {
		return placeholder
	}
	return strings.ReplaceAll(value, "_", " ")
}

// FormatNotes passes the message through verbatim, substituting a
// stock line when empty.
func FormatNotes(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "No additional notes."
	}
	return value
}

func orDash(value string) string {
	return orDefault(value, "-")
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}
