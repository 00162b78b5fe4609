package submissions

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows and pages admin listings.
type ListFilter struct {
	FormName string
	Limit    int
	Offset   int
}

// Repository defines the interface for submission storage
type Repository interface {
	Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error)
	GetByID(ctx context.Context, id string) (*Submission, error)
	List(ctx context.Context, filter ListFilter) ([]*Submission, error)
}

// InMemoryRepository is a stub implementation of Repository using in-memory storage
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		submissions: make(map[string]*Submission),
	}
}

// Create creates a new submission in memory
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	sub := &Submission{
		ID:                uuid.New().String(),
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
		CreatedAt:         time.Now().UTC(),
	}

	r.mu.Lock()
	r.submissions[sub.ID] = sub
	r.mu.Unlock()

	return sub, nil
}

// GetByID retrieves a submission by ID
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sub, ok := r.submissions[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}

	return sub, nil
}

// List returns submissions newest first, honoring the filter.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	r.mu.RLock()
	all := make([]*Submission, 0, len(r.submissions))
	for _, sub := range r.submissions {
		if filter.FormName != "" && sub.FormName != filter.FormName {
			continue
		}
		all = append(all, sub)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			return []*Submission{}, nil
		}
		all = all[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}
