package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/keysbycaleb/booking-platform/internal/relay"
	"github.com/keysbycaleb/booking-platform/internal/sheets"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

type config struct {
	spreadsheetID   string
	sheetName       string
	credentialsJSON []byte
}

func loadConfig() (config, error) {
	sheetID := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_ID"))
	if sheetID == "" {
		return config{}, errors.New("GOOGLE_SHEET_ID is required")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))

	creds, err := loadCredentials()
	if err != nil {
		return config{}, err
	}

	return config{
		spreadsheetID:   sheetID,
		sheetName:       sheetName,
		credentialsJSON: creds,
	}, nil
}

// loadCredentials accepts either a full service-account JSON blob or the
// client email and private key as separate variables. Private keys pasted
// into env consoles usually arrive with literal \n sequences.
func loadCredentials() ([]byte, error) {
	if raw := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); raw != "" {
		return []byte(raw), nil
	}

	email := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"))
	key := os.Getenv("GOOGLE_PRIVATE_KEY")
	if email == "" || key == "" {
		return nil, errors.New("GOOGLE_CREDENTIALS_JSON or GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_PRIVATE_KEY are required")
	}
	key = strings.ReplaceAll(key, `\n`, "\n")

	creds, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": email,
		"private_key":  key,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}
	return creds, nil
}

func main() {
	logger := logging.New(os.Getenv("LOG_LEVEL"))

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	appender, err := sheets.NewAPIAppender(ctx, cfg.credentialsJSON, cfg.spreadsheetID, cfg.sheetName)
	if err != nil {
		panic(err)
	}
	recorder := sheets.NewRecorder(appender, logger)

	lambda.Start(func(ctx context.Context, evt events.SQSEvent) (events.SQSEventResponse, error) {
		return handle(ctx, recorder, logger, evt)
	})
}

type submissionRecorder interface {
	Record(ctx context.Context, job *relay.Job) error
}

// handle reports partial batch failures so SQS only redelivers the records
// that could not be appended.
func handle(ctx context.Context, recorder submissionRecorder, logger *logging.Logger, evt events.SQSEvent) (events.SQSEventResponse, error) {
	var failures []events.SQSBatchItemFailure

	for _, record := range evt.Records {
		job, err := relay.DecodeJob(record.Body)
		if err != nil {
			// Malformed messages will never succeed on retry. Log and drop.
			logger.Error("dropping malformed relay job", "message_id", record.MessageId, "error", err)
			continue
		}

		if err := recorder.Record(ctx, job); err != nil {
			logger.Error("failed to record submission", "message_id", record.MessageId, "submission_id", job.SubmissionID, "error", err)
			failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}

	return events.SQSEventResponse{BatchItemFailures: failures}, nil
}
