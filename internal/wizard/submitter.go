package wizard

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

// Outcome classifies the result of a submission attempt. The pipeline
// matches on the variant instead of inspecting error strings.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeHTTPError
	OutcomeTimeout
	OutcomeNetworkError
)

// SubmitResult is the outcome of one submission attempt. Status is set
// for OutcomeHTTPError only.
type SubmitResult struct {
	Outcome Outcome
	Status  int
}

// Submitter posts a serialized booking form to the site's endpoint.
type Submitter interface {
	Submit(ctx context.Context, fields url.Values) SubmitResult
}

// HTTPSubmitter posts URL-encoded form bodies with a bounded timeout.
type HTTPSubmitter struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
	logger   *logging.Logger
}

// NewHTTPSubmitter builds a submitter for the given endpoint. A zero
// timeout defaults to ten seconds.
func NewHTTPSubmitter(endpoint string, timeout time.Duration, logger *logging.Logger) *HTTPSubmitter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &HTTPSubmitter{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{},
		logger:   logger,
	}
}

// Submit posts the fields and classifies the result. Deadline
// exhaustion maps to OutcomeTimeout; any other transport failure maps
// to OutcomeNetworkError.
func (s *HTTPSubmitter) Submit(ctx context.Context, fields url.Values) SubmitResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(fields.Encode()))
	if err != nil {
		s.logger.Error("submit request build failed", "error", err)
		return SubmitResult{Outcome: OutcomeNetworkError}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.logger.Error("submit timed out", "endpoint", s.endpoint)
			return SubmitResult{Outcome: OutcomeTimeout}
		}
		s.logger.Error("submit failed", "endpoint", s.endpoint, "error", err)
		return SubmitResult{Outcome: OutcomeNetworkError}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return SubmitResult{Outcome: OutcomeHTTPError, Status: resp.StatusCode}
	}
	return SubmitResult{Outcome: OutcomeSuccess}
}
