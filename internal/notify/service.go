package notify

import (
	"context"
	"fmt"

	"github.com/keysbycaleb/booking-platform/internal/submissions"
	"github.com/keysbycaleb/booking-platform/internal/wizard"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

// Owner identifies who receives booking notifications.
type Owner struct {
	Email string
	Name  string
}

// Service emails the site owner about new booking requests.
type Service struct {
	email  EmailSender
	owner  Owner
	logger *logging.Logger
}

// NewService creates a notification service.
func NewService(email EmailSender, owner Owner, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		owner:  owner,
		logger: logger,
	}
}

var formLabels = map[string]string{
	"booking-full-service": "Full-Service Booking",
	"booking-hourly":       "Hourly Booking",
}

// SubmissionReceived sends the owner an email for one new submission.
func (s *Service) SubmissionReceived(ctx context.Context, sub *submissions.Submission) error {
	if s.email == nil || s.owner.Email == "" {
		s.logger.Debug("notify: owner email not configured, skipping")
		return nil
	}

	formLabel := formLabels[sub.FormName]
	if formLabel == "" {
		formLabel = sub.FormName
	}

	date := wizard.FormatDate(sub.EventDate)
	eventTime := wizard.FormatTime(sub.EventTime)
	eventType := wizard.FormatSelection(sub.EventType, "Not specified")
	piano := wizard.FormatSelection(sub.PianoAvailability, "Not specified")
	phone := wizard.FormatPhone(sub.Phone)
	notes := wizard.FormatNotes(sub.Message)

	duration := ""
	if sub.EstimatedDuration != "" {
		duration = fmt.Sprintf("\nEstimated Duration: %s hour(s)", sub.EstimatedDuration)
	}
	venue := sub.VenueAddress
	if sub.VenueName != "" {
		venue = fmt.Sprintf("%s, %s", sub.VenueName, sub.VenueAddress)
	}

	subject := fmt.Sprintf("New Booking Request - %s on %s", sub.Name, date)
	body := fmt.Sprintf(`A new %s request has come in!

Name: %s
Email: %s
Phone: %s

Event Date: %s
Event Time: %s
Event Type: %s%s
Venue: %s
Piano Availability: %s

Notes: %s

Submission ID: %s`,
		formLabel, sub.Name, sub.Email, phone,
		date, eventTime, eventType, duration, venue, piano,
		notes, sub.ID)

	msg := EmailMessage{
		To:      s.owner.Email,
		ToName:  s.owner.Name,
		Subject: subject,
		Body:    body,
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("notify: failed to email owner", "error", err, "submission_id", sub.ID)
		return err
	}
	s.logger.Info("notify: booking email sent", "to", s.owner.Email, "submission_id", sub.ID)
	return nil
}

// Ensure interface compliance
var _ submissions.Notifier = (*Service)(nil)
