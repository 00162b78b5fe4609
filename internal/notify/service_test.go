package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/keysbycaleb/booking-platform/internal/submissions"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

type captureSender struct {
	messages []EmailMessage
	err      error
}

func (c *captureSender) Send(ctx context.Context, msg EmailMessage) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, msg)
	return nil
}

func testSubmission() *submissions.Submission {
	return &submissions.Submission{
		ID:                "sub-1",
		FormName:          "booking-hourly",
		Name:              "Ada Lovelace",
		Email:             "ada@example.com",
		Phone:             "5551234567",
		EventDate:         "2026-10-01",
		EventTime:         "18:00",
		EventType:         "Private_Party",
		EstimatedDuration: "3",
		VenueAddress:      "123 Main St",
		PianoAvailability: "No_Piano",
		Message:           "Back patio",
	}
}

func TestSubmissionReceived(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, Owner{Email: "caleb@example.com", Name: "Caleb"}, logging.Default())

	if err := svc.SubmissionReceived(context.Background(), testSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(sender.messages))
	}
	msg := sender.messages[0]
	if msg.To != "caleb@example.com" {
		t.Errorf("to = %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "Ada Lovelace") || !strings.Contains(msg.Subject, "October 1, 2026") {
		t.Errorf("subject = %q", msg.Subject)
	}
	for _, want := range []string{
		"Hourly Booking",
		"(555) 123-4567",
		"6:00 PM",
		"Private Party",
		"3 hour(s)",
		"123 Main St",
		"sub-1",
	} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestSubmissionReceivedSkipsWithoutOwner(t *testing.T) {
	sender := &captureSender{}
	svc := NewService(sender, Owner{}, logging.Default())

	if err := svc.SubmissionReceived(context.Background(), testSubmission()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.messages) != 0 {
		t.Error("no email should be sent without an owner address")
	}
}

func TestSubmissionReceivedPropagatesSendError(t *testing.T) {
	sender := &captureSender{err: errors.New("smtp down")}
	svc := NewService(sender, Owner{Email: "caleb@example.com"}, logging.Default())

	if err := svc.SubmissionReceived(context.Background(), testSubmission()); err == nil {
		t.Fatal("expected send error")
	}
}
