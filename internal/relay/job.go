package relay

import (
	"encoding/json"
	"fmt"
	"time"
)

// Job is one accepted booking submission bound for the spreadsheet
// relay. Fields carries the raw form fields by name so the consumer
// can lay out rows without knowing the form's Go model.
type Job struct {
	SubmissionID string            `json:"submission_id"`
	FormName     string            `json:"form_name"`
	Fields       map[string]string `json:"fields"`
	ReceivedAt   time.Time         `json:"received_at"`
}

// Encode serializes the job for the queue body.
func (j *Job) Encode() (string, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("relay: encode job: %w", err)
	}
	return string(data), nil
}

// DecodeJob parses a queue body back into a Job.
func DecodeJob(body string) (*Job, error) {
	var j Job
	if err := json.Unmarshal([]byte(body), &j); err != nil {
		return nil, fmt.Errorf("relay: decode job: %w", err)
	}
	if j.FormName == "" {
		return nil, fmt.Errorf("relay: job missing form name")
	}
	return &j, nil
}
