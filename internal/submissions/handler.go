package submissions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keysbycaleb/booking-platform/internal/observability/metrics"
	"github.com/keysbycaleb/booking-platform/internal/relay"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

var intakeTracer = otel.Tracer("booking.internal.submissions.intake")

// Notifier tells the site owner about a new booking request.
type Notifier interface {
	SubmissionReceived(ctx context.Context, sub *Submission) error
}

// Handler handles HTTP requests for booking submissions.
type Handler struct {
	repo     Repository
	queue    relay.Queue
	notifier Notifier
	metrics  *metrics.BookingMetrics
	logger   *logging.Logger
}

// NewHandler creates a new submissions handler. Queue, notifier, and
// metrics are optional; the intake endpoint works without them.
func NewHandler(repo Repository, queue relay.Queue, notifier Notifier, m *metrics.BookingMetrics, logger *logging.Logger) *Handler {
	if repo == nil {
		panic("submissions: repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:     repo,
		queue:    queue,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
	}
}

// CreateResponse is the body returned for an accepted submission.
type CreateResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Create handles the URL-encoded POST the booking pages send. The
// response status is all the page acts on, so failures map to plain
// HTTP errors rather than a structured body.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := intakeTracer.Start(r.Context(), "submissions.create")
	defer span.End()
	start := time.Now()

	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form body", "error", err)
		span.RecordError(err)
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}

	req := ParseCreateRequest(r.PostForm)
	span.SetAttributes(attribute.String("form.name", req.FormName))

	if err := req.Validate(); err != nil {
		h.logger.Warn("submission rejected", "form", req.FormName, "error", err)
		span.RecordError(err)
		h.metrics.ObserveSubmission(req.FormName, "rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub, err := h.repo.Create(ctx, req)
	if err != nil {
		h.logger.Error("failed to store submission", "form", req.FormName, "error", err)
		span.RecordError(err)
		h.metrics.ObserveSubmission(req.FormName, "error")
		http.Error(w, "failed to store submission", http.StatusInternalServerError)
		return
	}

	h.logger.Info("submission stored", "id", sub.ID, "form", sub.FormName)
	h.metrics.ObserveSubmission(sub.FormName, "stored")
	h.metrics.ObserveSubmitLatency(sub.FormName, time.Since(start).Seconds())

	h.enqueueRelay(ctx, sub, r.PostForm)
	h.notifyOwner(sub)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(CreateResponse{ID: sub.ID, Status: "received"})
}

// enqueueRelay hands the submission to the spreadsheet relay. Relay
// failures never fail the intake; the row of record is the database.
func (h *Handler) enqueueRelay(ctx context.Context, sub *Submission, form map[string][]string) {
	if h.queue == nil {
		return
	}

	fields := make(map[string]string, len(form))
	for name, vals := range form {
		if len(vals) > 0 {
			fields[name] = vals[0]
		}
	}
	job := &relay.Job{
		SubmissionID: sub.ID,
		FormName:     sub.FormName,
		Fields:       fields,
		ReceivedAt:   sub.CreatedAt,
	}
	if err := h.queue.Enqueue(ctx, job); err != nil {
		h.logger.Error("failed to enqueue relay job", "id", sub.ID, "error", err)
		h.metrics.ObserveRelayEnqueue(sub.FormName, "error")
		return
	}
	h.metrics.ObserveRelayEnqueue(sub.FormName, "enqueued")
}

// notifyOwner emails the owner off the request path. The response to
// the booking page never waits on the email provider.
func (h *Handler) notifyOwner(sub *Submission) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := h.notifier.SubmissionReceived(ctx, sub); err != nil {
			h.logger.Error("failed to notify owner", "id", sub.ID, "error", err)
		}
	}()
}

// ListResponse is the response for listing submissions
type ListResponse struct {
	Submissions []*Submission `json:"submissions"`
	Count       int           `json:"count"`
	Offset      int           `json:"offset"`
	Limit       int           `json:"limit"`
}

// List handles GET /admin/submissions requests
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	if form := r.URL.Query().Get("form"); form != "" {
		filter.FormName = form
	}

	subs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}
	if subs == nil {
		subs = []*Submission{}
	}

	response := ListResponse{
		Submissions: subs,
		Count:       len(subs),
		Offset:      filter.Offset,
		Limit:       filter.Limit,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// Get handles GET /admin/submissions/{id} requests
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	sub, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrSubmissionNotFound) {
			http.Error(w, "submission not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load submission", "id", id, "error", err)
		http.Error(w, "failed to load submission", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sub)
}
