package submissions

import "errors"

var (
	// ErrMissingFormName is returned when the form-name field is absent
	ErrMissingFormName = errors.New("form-name is required")

	// ErrUnknownForm is returned for a form-name we do not serve
	ErrUnknownForm = errors.New("unknown form")

	// ErrInvalidName is returned when the name is missing
	ErrInvalidName = errors.New("name is required")

	// ErrMissingContact is returned when both email and phone are missing
	ErrMissingContact = errors.New("either email or phone is required")

	// ErrSubmissionNotFound is returned when a submission is not found
	ErrSubmissionNotFound = errors.New("submission not found")
)
