package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/keysbycaleb/booking-platform/internal/relay"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

func validForm() url.Values {
	v := url.Values{}
	v.Set("form-name", "booking-hourly")
	v.Set("name", "Ada Lovelace")
	v.Set("email", "ada@example.com")
	v.Set("phone", "(555) 123-4567")
	v.Set("event_date", "2026-10-01")
	v.Set("event_time", "18:00")
	v.Set("event_type_hourly", "Private_Party")
	v.Set("estimated_duration", "3")
	v.Set("venue_address", "123 Main St")
	v.Set("piano_availability", "No_Piano")
	v.Set("message_hourly", "Back patio, weather permitting")
	v.Set("agree_hourly_deposit", "true")
	v.Set("agree_hourly_balance", "true")
	return v
}

func postForm(handler http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

type chanNotifier struct {
	received chan *Submission
}

func (n *chanNotifier) SubmissionReceived(ctx context.Context, sub *Submission) error {
	n.received <- sub
	return nil
}

func TestCreate_Success(t *testing.T) {
	repo := NewInMemoryRepository()
	queue := relay.NewMemoryQueue()
	notifier := &chanNotifier{received: make(chan *Submission, 1)}
	handler := NewHandler(repo, queue, notifier, nil, logging.Default())

	w := postForm(handler.Create, validForm())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp CreateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" || resp.Status != "received" {
		t.Errorf("unexpected response: %+v", resp)
	}

	stored, err := repo.GetByID(context.Background(), resp.ID)
	if err != nil {
		t.Fatalf("stored submission not found: %v", err)
	}
	if stored.EventType != "Private_Party" {
		t.Errorf("event type alias not resolved: %q", stored.EventType)
	}
	if stored.Message != "Back patio, weather permitting" {
		t.Errorf("message alias not resolved: %q", stored.Message)
	}
	if !stored.AgreedTerms {
		t.Error("agreed terms should be true")
	}

	jobs := queue.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("relay jobs = %d, want 1", len(jobs))
	}
	if jobs[0].SubmissionID != resp.ID || jobs[0].Fields["name"] != "Ada Lovelace" {
		t.Errorf("unexpected relay job: %+v", jobs[0])
	}

	select {
	case sub := <-notifier.received:
		if sub.ID != resp.ID {
			t.Errorf("notified wrong submission: %s", sub.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("owner notification never sent")
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(url.Values)
	}{
		{"missing form name", func(v url.Values) { v.Del("form-name") }},
		{"unknown form", func(v url.Values) { v.Set("form-name", "contact") }},
		{"missing name", func(v url.Values) { v.Del("name") }},
		{"missing contact", func(v url.Values) { v.Del("email"); v.Del("phone") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewInMemoryRepository()
			handler := NewHandler(repo, nil, nil, nil, logging.Default())

			form := validForm()
			tt.mutate(form)
			w := postForm(handler.Create, form)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
			}
		})
	}
}

type failingRepository struct{}

func (f failingRepository) Create(context.Context, *CreateSubmissionRequest) (*Submission, error) {
	return nil, errors.New("boom")
}

func (f failingRepository) GetByID(context.Context, string) (*Submission, error) {
	return nil, ErrSubmissionNotFound
}

func (f failingRepository) List(context.Context, ListFilter) ([]*Submission, error) {
	return nil, errors.New("boom")
}

func TestCreate_RepositoryError(t *testing.T) {
	handler := NewHandler(failingRepository{}, nil, nil, nil, logging.Default())

	w := postForm(handler.Create, validForm())

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestList(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, nil, nil, logging.Default())

	for _, form := range []string{"booking-hourly", "booking-full-service", "booking-hourly"} {
		req := ParseCreateRequest(validForm())
		req.FormName = form
		if _, err := repo.Create(context.Background(), req); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions?form=booking-hourly&limit=10", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp ListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("count = %d, want 2", resp.Count)
	}
	for _, sub := range resp.Submissions {
		if sub.FormName != "booking-hourly" {
			t.Errorf("filter leaked form %q", sub.FormName)
		}
	}
}

func TestGet(t *testing.T) {
	repo := NewInMemoryRepository()
	handler := NewHandler(repo, nil, nil, nil, logging.Default())

	created, err := repo.Create(context.Background(), ParseCreateRequest(validForm()))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	r := chi.NewRouter()
	r.Get("/admin/submissions/{id}", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions/"+created.ID, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var sub Submission
	if err := json.NewDecoder(w.Body).Decode(&sub); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if sub.ID != created.ID {
		t.Errorf("expected ID %s, got %s", created.ID, sub.ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/submissions/nonexistent", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestParseCreateRequest_Agreements(t *testing.T) {
	form := validForm()
	form.Set("agree_hourly_balance", "false")
	req := ParseCreateRequest(form)
	if req.AgreedTerms {
		t.Error("a false checkbox must not count as agreed")
	}

	form = validForm()
	form.Del("agree_hourly_deposit")
	form.Del("agree_hourly_balance")
	req = ParseCreateRequest(form)
	if req.AgreedTerms {
		t.Error("no checkboxes at all must not count as agreed")
	}
}

func TestRepository_Create(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	sub, err := repo.Create(ctx, ParseCreateRequest(validForm()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.ID == "" {
		t.Error("expected submission ID to be set")
	}
	if sub.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewInMemoryRepository()

	_, err := repo.GetByID(context.Background(), "nonexistent")
	if err != ErrSubmissionNotFound {
		t.Errorf("expected ErrSubmissionNotFound, got %v", err)
	}
}
