package submissions

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	req := ParseCreateRequest(validForm())
	createdAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO submissions").
		WithArgs(pgxmock.AnyArg(), req.FormName, req.Name, req.Email, req.Phone,
			req.EventDate, req.EventTime, req.EventType, req.EstimatedDuration,
			req.VenueName, req.VenueAddress, req.PianoAvailability,
			req.Referral, req.Message, req.AgreedTerms).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	sub, err := repo.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ID == "" {
		t.Error("expected submission ID to be set")
	}
	if !sub.CreatedAt.Equal(createdAt) {
		t.Errorf("created at = %v", sub.CreatedAt)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_CreateRejectsInvalid(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	req := ParseCreateRequest(validForm())
	req.Name = ""

	if _, err := repo.Create(context.Background(), req); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query should run for invalid input: %v", err)
	}
}

func TestPostgresRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)

	mock.ExpectQuery("SELECT (.+) FROM submissions WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrSubmissionNotFound {
		t.Fatalf("expected ErrSubmissionNotFound, got %v", err)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithQuerier(mock)
	cols := []string{
		"id", "form_name", "name", "email", "phone",
		"event_date", "event_time", "event_type", "estimated_duration",
		"venue_name", "venue_address", "piano_availability",
		"referral", "message", "agreed_terms", "created_at",
	}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM submissions").
		WithArgs("booking-hourly", 10, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow("id-1", "booking-hourly", "Ada", "ada@example.com", "",
				"2026-10-01", "18:00", "Private_Party", "3",
				"", "123 Main St", "No_Piano",
				"", "", true, now))

	subs, err := repo.List(context.Background(), ListFilter{FormName: "booking-hourly", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(subs) != 1 || subs[0].ID != "id-1" {
		t.Fatalf("unexpected result: %+v", subs)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
