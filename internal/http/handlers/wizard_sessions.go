package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/keysbycaleb/booking-platform/internal/observability/metrics"
	"github.com/keysbycaleb/booking-platform/internal/wizard"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

// WizardSessions serves the server-driven booking wizard. Each session
// holds one controller's state plus the page view mirrored back to the
// client after every event, so thin clients can render without any
// local wizard logic.
type WizardSessions struct {
	store     wizard.SessionStore
	submitter wizard.Submitter
	metrics   *metrics.BookingMetrics
	logger    *logging.Logger

	fullServiceLink string
	hourlyLink      string

	// extra controller options applied on every rebuild, such as the
	// configured transition delay.
	controllerOpts []wizard.Option
}

// NewWizardSessions creates the wizard session handler.
func NewWizardSessions(store wizard.SessionStore, submitter wizard.Submitter, fullServiceLink, hourlyLink string, m *metrics.BookingMetrics, logger *logging.Logger, opts ...wizard.Option) *WizardSessions {
	if store == nil {
		panic("handlers: session store cannot be nil")
	}
	if submitter == nil {
		panic("handlers: submitter cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WizardSessions{
		store:           store,
		submitter:       submitter,
		metrics:         m,
		logger:          logger,
		fullServiceLink: fullServiceLink,
		hourlyLink:      hourlyLink,
		controllerOpts:  opts,
	}
}

func (h *WizardSessions) rebuild(form *wizard.Form, sess *wizard.Session) (*wizard.Controller, error) {
	opts := append([]wizard.Option{wizard.WithState(sess.State), wizard.WithLogger(h.logger)}, h.controllerOpts...)
	return wizard.New(form, sess.View, h.submitter, opts...)
}

func (h *WizardSessions) formFor(name string) *wizard.Form {
	switch name {
	case "booking-full-service":
		return wizard.FullServiceForm(h.fullServiceLink)
	case "booking-hourly":
		return wizard.HourlyForm(h.hourlyLink)
	}
	return nil
}

// SessionResponse is the body returned after session creation and
// after every event.
type SessionResponse struct {
	ID         string           `json:"id"`
	FormName   string           `json:"form_name"`
	Step       int              `json:"step"`
	TotalSteps int              `json:"total_steps"`
	View       *wizard.PageView `json:"view"`
}

type createSessionRequest struct {
	Form string `json:"form"`
}

// Create handles POST /booking/wizard/sessions requests.
func (h *WizardSessions) Create(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := h.formFor(req.Form)
	if form == nil {
		http.Error(w, "unknown form", http.StatusBadRequest)
		return
	}

	sess := &wizard.Session{
		ID:        uuid.NewString(),
		FormName:  form.Name,
		State:     wizard.NewState(),
		View:      wizard.NewPageView(),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := h.rebuild(form, sess); err != nil {
		h.logger.Error("failed to build wizard controller", "form", form.Name, "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save wizard session", "error", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}

	h.logger.Info("wizard session created", "id", sess.ID, "form", sess.FormName)
	h.metrics.ObserveWizardSession(sess.FormName)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.response(sess))
}

// EventRequest is one wizard interaction relayed by the client.
type EventRequest struct {
	Type    string `json:"type"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
	Target  int    `json:"target,omitempty"`
}

// ApplyEvent handles POST /booking/wizard/sessions/{id}/events requests.
func (h *WizardSessions) ApplyEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, wizard.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load wizard session", "id", id, "error", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	var ev EventRequest
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	form := h.formFor(sess.FormName)
	if form == nil {
		h.logger.Error("session references unknown form", "id", id, "form", sess.FormName)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	c, err := h.rebuild(form, sess)
	if err != nil {
		h.logger.Error("failed to rebuild wizard controller", "id", id, "error", err)
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		return
	}

	if !h.apply(r, c, ev) {
		http.Error(w, "unknown event type", http.StatusBadRequest)
		return
	}
	h.metrics.ObserveWizardEvent(ev.Type)

	if err := h.store.Save(r.Context(), sess); err != nil {
		h.logger.Error("failed to save wizard session", "id", id, "error", err)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.response(sess))
}

// apply dispatches one event to the controller. Enter mirrors the
// page's behavior of clicking whichever action button is visible.
func (h *WizardSessions) apply(r *http.Request, c *wizard.Controller, ev EventRequest) bool {
	switch ev.Type {
	case "input":
		c.SetValue(ev.Field, ev.Value)
	case "blur":
		c.Blur(ev.Field)
	case "checkbox":
		c.SetChecked(ev.Field, ev.Checked)
	case "next":
		c.Next()
	case "prev":
		c.Prev()
	case "edit":
		c.Edit(ev.Target)
	case "proceed":
		c.Proceed(r.Context())
	case "payment":
		c.Payment(r.Context())
	case "enter":
		switch c.EnterKey(ev.Field) {
		case wizard.ActionNext:
			c.Next()
		case wizard.ActionProceed:
			c.Proceed(r.Context())
		case wizard.ActionPayment:
			c.Payment(r.Context())
		}
	default:
		return false
	}
	return true
}

// Delete handles DELETE /booking/wizard/sessions/{id} requests.
func (h *WizardSessions) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.logger.Error("failed to delete wizard session", "id", id, "error", err)
		http.Error(w, "failed to delete session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WizardSessions) response(sess *wizard.Session) SessionResponse {
	total := 0
	if form := h.formFor(sess.FormName); form != nil {
		total = form.TotalSteps()
	}
	return SessionResponse{
		ID:         sess.ID,
		FormName:   sess.FormName,
		Step:       sess.State.CurrentStep,
		TotalSteps: total,
		View:       sess.View,
	}
}
