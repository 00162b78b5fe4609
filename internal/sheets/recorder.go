package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/keysbycaleb/booking-platform/internal/relay"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

// rowAppender appends one row to the backing spreadsheet.
type rowAppender interface {
	Append(ctx context.Context, row []interface{}) error
}

// APIAppender appends rows through the Google Sheets API.
type APIAppender struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	sheetName     string
}

// NewAPIAppender builds a Sheets API client from service-account
// credentials JSON. sheetName defaults to Sheet1.
func NewAPIAppender(ctx context.Context, credentialsJSON []byte, spreadsheetID, sheetName string) (*APIAppender, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet ID required")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	svc, err := sheetsapi.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("sheets: build service: %w", err)
	}
	return &APIAppender{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Append inserts one row at the bottom of the sheet.
func (a *APIAppender) Append(ctx context.Context, row []interface{}) error {
	values := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := a.svc.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetName, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append row: %w", err)
	}
	return nil
}

// Recorder turns relay jobs into spreadsheet rows.
type Recorder struct {
	appender rowAppender
	logger   *logging.Logger
	now      func() time.Time
}

// NewRecorder creates a recorder over the given appender.
func NewRecorder(appender rowAppender, logger *logging.Logger) *Recorder {
	if appender == nil {
		panic("sheets: appender cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Recorder{
		appender: appender,
		logger:   logger,
		now:      time.Now,
	}
}

// Record appends one job to the sheet.
func (r *Recorder) Record(ctx context.Context, job *relay.Job) error {
	row := BuildRow(job, r.now())
	if err := r.appender.Append(ctx, row); err != nil {
		return err
	}
	r.logger.Info("submission recorded", "form", job.FormName, "submission_id", job.SubmissionID)
	return nil
}
