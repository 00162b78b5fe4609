package submissions

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores submissions in the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("submissions: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	if q == nil {
		panic("submissions: querier required")
	}
	return &PostgresRepository{pool: q}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO submissions (
			id, form_name, name, email, phone,
			event_date, event_time, event_type, estimated_duration,
			venue_name, venue_address, piano_availability,
			referral, message, agreed_terms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.FormName,
		req.Name,
		req.Email,
		req.Phone,
		req.EventDate,
		req.EventTime,
		req.EventType,
		req.EstimatedDuration,
		req.VenueName,
		req.VenueAddress,
		req.PianoAvailability,
		req.Referral,
		req.Message,
		req.AgreedTerms,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("submissions: insert failed: %w", err)
	}

	return &Submission{
		ID:                id.String(),
		FormName:          req.FormName,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		EventDate:         req.EventDate,
		EventTime:         req.EventTime,
		EventType:         req.EventType,
		EstimatedDuration: req.EstimatedDuration,
		VenueName:         req.VenueName,
		VenueAddress:      req.VenueAddress,
		PianoAvailability: req.PianoAvailability,
		Referral:          req.Referral,
		Message:           req.Message,
		AgreedTerms:       req.AgreedTerms,
		CreatedAt:         createdAt,
	}, nil
}

const selectColumns = `
	id, form_name, name, email, phone,
	event_date, event_time, event_type, estimated_duration,
	venue_name, venue_address, piano_availability,
	referral, message, agreed_terms, created_at
`

func scanSubmission(row pgx.Row) (*Submission, error) {
	var sub Submission
	if err := row.Scan(
		&sub.ID,
		&sub.FormName,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.EventDate,
		&sub.EventTime,
		&sub.EventType,
		&sub.EstimatedDuration,
		&sub.VenueName,
		&sub.VenueAddress,
		&sub.PianoAvailability,
		&sub.Referral,
		&sub.Message,
		&sub.AgreedTerms,
		&sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

// GetByID fetches a single submission.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	query := `SELECT ` + selectColumns + ` FROM submissions WHERE id = $1`
	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("submissions: select failed: %w", err)
	}
	return sub, nil
}

// List returns submissions newest first, honoring the filter.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		rows pgx.Rows
		err  error
	)
	if filter.FormName != "" {
		query := `SELECT ` + selectColumns + `
			FROM submissions
			WHERE form_name = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		rows, err = r.pool.Query(ctx, query, filter.FormName, limit, offset)
	} else {
		query := `SELECT ` + selectColumns + `
			FROM submissions
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2`
		rows, err = r.pool.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("submissions: list failed: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("submissions: scan failed: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("submissions: rows failed: %w", err)
	}
	return subs, nil
}
