package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

func TestNewSendGridSenderRequiresAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{}, logging.Default())
	if sender != nil {
		t.Fatal("expected nil sender without an API key")
	}
}

func TestNewSendGridSenderDefaultsFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "key", FromEmail: "bookings@example.com"}, nil)
	if sender == nil {
		t.Fatal("expected sender")
	}
	if sender.from.Name != "Keys by Caleb" {
		t.Errorf("from name = %q", sender.from.Name)
	}
	if sender.from.Address != "bookings@example.com" {
		t.Errorf("from address = %q", sender.from.Address)
	}
}

func TestSendGridSenderNilReceiver(t *testing.T) {
	var sender *SendGridSender
	var email EmailSender = sender
	if email == nil {
		t.Fatal("a typed nil stored in the interface is not a nil interface")
	}
	if err := email.Send(context.Background(), EmailMessage{To: "owner@example.com"}); err == nil {
		t.Fatal("expected error from an unconfigured sender")
	}
}

func TestNewSESSenderRequiresClient(t *testing.T) {
	if sender := NewSESSender(nil, SESConfig{}, nil); sender != nil {
		t.Fatal("expected nil sender without a client")
	}
}

func TestNewSESSenderDefaultsFromName(t *testing.T) {
	sender := NewSESSender(&sesv2.Client{}, SESConfig{FromEmail: "bookings@example.com"}, nil)
	if sender == nil {
		t.Fatal("expected sender")
	}
	if sender.from != "Keys by Caleb <bookings@example.com>" {
		t.Errorf("from = %q", sender.from)
	}
}

func TestStubEmailSender(t *testing.T) {
	sender := NewStubEmailSender(nil)
	err := sender.Send(context.Background(), EmailMessage{To: "owner@example.com", Subject: "hi"})
	if err != nil {
		t.Fatalf("stub send: %v", err)
	}
}
