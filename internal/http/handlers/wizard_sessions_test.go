package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/keysbycaleb/booking-platform/internal/wizard"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

type recordingSubmitter struct {
	result wizard.SubmitResult
	calls  []url.Values
}

func (s *recordingSubmitter) Submit(ctx context.Context, fields url.Values) wizard.SubmitResult {
	s.calls = append(s.calls, fields)
	return s.result
}

func newSessionRouter(sub wizard.Submitter) *chi.Mux {
	h := NewWizardSessions(wizard.NewMemoryStore(), sub, "https://pay.example/full", "https://pay.example/hourly", nil, logging.Default())
	r := chi.NewRouter()
	r.Post("/booking/wizard/sessions", h.Create)
	r.Post("/booking/wizard/sessions/{id}/events", h.ApplyEvent)
	r.Delete("/booking/wizard/sessions/{id}", h.Delete)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, body any) (*httptest.ResponseRecorder, SessionResponse) {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp SessionResponse
	if w.Code < 300 {
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return w, resp
}

func sendEvent(t *testing.T, router http.Handler, id string, ev EventRequest) SessionResponse {
	t.Helper()
	w, resp := postJSON(t, router, "/booking/wizard/sessions/"+id+"/events", ev)
	if w.Code != http.StatusOK {
		t.Fatalf("event %q: status %d: %s", ev.Type, w.Code, w.Body.String())
	}
	return resp
}

func TestCreateSession(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})

	w, resp := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-hourly"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if resp.ID == "" || resp.FormName != "booking-hourly" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Step != 0 || resp.TotalSteps != 5 {
		t.Errorf("step/total = %d/%d", resp.Step, resp.TotalSteps)
	}
	if resp.View == nil || resp.View.ActiveStep() != 0 {
		t.Errorf("view should show the first step active")
	}
}

func TestCreateSessionUnknownForm(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	w, _ := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "contact"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestApplyEventUnknownSession(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	w, _ := postJSON(t, router, "/booking/wizard/sessions/nope/events", EventRequest{Type: "next"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestApplyEventUnknownType(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	_, created := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-hourly"})

	w, _ := postJSON(t, router, "/booking/wizard/sessions/"+created.ID+"/events", EventRequest{Type: "teleport"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestEventFlowValidationBlocksAdvance(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	_, created := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-hourly"})

	resp := sendEvent(t, router, created.ID, EventRequest{Type: "next"})
	if resp.Step != 0 {
		t.Fatalf("step = %d, want 0", resp.Step)
	}
	if _, ok := resp.View.FieldErrors["event_date"]; !ok {
		t.Error("expected a visible error on event_date")
	}
}

func TestEventFlowThroughPayment(t *testing.T) {
	sub := &recordingSubmitter{result: wizard.SubmitResult{Outcome: wizard.OutcomeSuccess}}
	router := newSessionRouter(sub)
	_, created := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-hourly"})
	id := created.ID

	inputs := map[string]string{
		"event_date":         "2027-05-01",
		"event_time":         "18:00",
		"estimated_duration": "2",
		"event_type_hourly":  "Private_Party",
		"venue_address":      "123 Main St",
		"piano_availability": "No_Piano",
		"name":               "Ada",
		"email":              "ada@example.com",
	}
	for field, value := range inputs {
		sendEvent(t, router, id, EventRequest{Type: "input", Field: field, Value: value})
	}

	resp := sendEvent(t, router, id, EventRequest{Type: "next"})
	if resp.Step != 1 {
		t.Fatalf("step after first next = %d", resp.Step)
	}
	sendEvent(t, router, id, EventRequest{Type: "next"})
	sendEvent(t, router, id, EventRequest{Type: "next"})
	resp = sendEvent(t, router, id, EventRequest{Type: "next"})
	if resp.Step != 4 {
		t.Fatalf("step at payment = %d", resp.Step)
	}
	if resp.View.Summary == nil {
		t.Error("summary should have been rendered on the review step")
	}

	sendEvent(t, router, id, EventRequest{Type: "checkbox", Field: "agree_hourly_deposit", Checked: true})
	resp = sendEvent(t, router, id, EventRequest{Type: "checkbox", Field: "agree_hourly_balance", Checked: true})
	if !resp.View.Enabled[wizard.ButtonPayment] {
		t.Fatal("payment button should be enabled once boxes are checked")
	}

	resp = sendEvent(t, router, id, EventRequest{Type: "payment"})
	if len(sub.calls) != 1 {
		t.Fatalf("submissions = %d, want 1", len(sub.calls))
	}
	if resp.View.RedirectURL != "https://pay.example/hourly" {
		t.Errorf("redirect url = %q", resp.View.RedirectURL)
	}
}

func TestEnterEventTriggersVisibleAction(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	_, created := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-hourly"})

	// Enter on an invalid first step behaves like clicking Next.
	resp := sendEvent(t, router, created.ID, EventRequest{Type: "enter", Field: "event_date"})
	if resp.View.Messages[wizard.MessageForm] == "" {
		t.Error("enter should have triggered validation messaging")
	}

	// Enter inside the notes textarea does nothing.
	resp = sendEvent(t, router, created.ID, EventRequest{Type: "enter", Field: "message_hourly"})
	if resp.Step != 0 {
		t.Errorf("textarea enter moved the wizard to %d", resp.Step)
	}
}

func TestDeleteSession(t *testing.T) {
	router := newSessionRouter(&recordingSubmitter{})
	_, created := postJSON(t, router, "/booking/wizard/sessions", createSessionRequest{Form: "booking-full-service"})

	req := httptest.NewRequest(http.MethodDelete, "/booking/wizard/sessions/"+created.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}

	w2, _ := postJSON(t, router, "/booking/wizard/sessions/"+created.ID+"/events", EventRequest{Type: "next"})
	if w2.Code != http.StatusNotFound {
		t.Fatalf("status after delete = %d", w2.Code)
	}
}
