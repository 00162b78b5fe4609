package submissions

import (
	"net/url"
	"strings"
	"time"
)

// Submission is one accepted booking request.
type Submission struct {
	ID                string    `json:"id"`
	FormName          string    `json:"form_name"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	EventDate         string    `json:"event_date"`
	EventTime         string    `json:"event_time"`
	EventType         string    `json:"event_type"`
	EstimatedDuration string    `json:"estimated_duration"`
	VenueName         string    `json:"venue_name"`
	VenueAddress      string    `json:"venue_address"`
	PianoAvailability string    `json:"piano_availability"`
	Referral          string    `json:"referral"`
	Message           string    `json:"message"`
	AgreedTerms       bool      `json:"agreed_terms"`
	CreatedAt         time.Time `json:"created_at"`
}

// CreateSubmissionRequest carries the parsed form fields for a new
// submission. Per-form aliases (event_type_hourly, message_hourly) are
// resolved during parsing so storage sees one shape.
type CreateSubmissionRequest struct {
	FormName          string
	Name              string
	Email             string
	Phone             string
	EventDate         string
	EventTime         string
	EventType         string
	EstimatedDuration string
	VenueName         string
	VenueAddress      string
	PianoAvailability string
	Referral          string
	Message           string
	AgreedTerms       bool
}

// knownForms are the form names this endpoint accepts.
var knownForms = map[string]bool{
	"booking-full-service": true,
	"booking-hourly":       true,
}

// ParseCreateRequest builds a request from URL-encoded form values.
func ParseCreateRequest(values url.Values) *CreateSubmissionRequest {
	pick := func(names ...string) string {
		for _, n := range names {
			if v := strings.TrimSpace(values.Get(n)); v != "" {
				return v
			}
		}
		return ""
	}

	agreed := true
	var anyBox bool
	for name, vals := range values {
		if !strings.HasPrefix(name, "agree_") {
			continue
		}
		anyBox = true
		if len(vals) == 0 || vals[0] != "true" {
			agreed = false
		}
	}

	return &CreateSubmissionRequest{
		FormName:          pick("form-name"),
		Name:              pick("name"),
		Email:             pick("email"),
		Phone:             pick("phone"),
		EventDate:         pick("event_date"),
		EventTime:         pick("event_time"),
		EventType:         pick("event_type", "event_type_hourly"),
		EstimatedDuration: pick("estimated_duration"),
		VenueName:         pick("venue_name"),
		VenueAddress:      pick("venue_address"),
		PianoAvailability: pick("piano_availability"),
		Referral:          pick("referral"),
		Message:           pick("message", "message_hourly"),
		AgreedTerms:       anyBox && agreed,
	}
}

// Validate validates the create submission request
func (r *CreateSubmissionRequest) Validate() error {
	if r.FormName == "" {
		return ErrMissingFormName
	}
	if !knownForms[r.FormName] {
		return ErrUnknownForm
	}
	if r.Name == "" {
		return ErrInvalidName
	}
	if r.Email == "" && r.Phone == "" {
		return ErrMissingContact
	}
	return nil
}
