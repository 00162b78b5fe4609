package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/keysbycaleb/booking-platform/internal/http/handlers"
	"github.com/keysbycaleb/booking-platform/internal/submissions"
	"github.com/keysbycaleb/booking-platform/internal/wizard"
	"github.com/keysbycaleb/booking-platform/pkg/logging"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()
	repo := submissions.NewInMemoryRepository()
	subHandler := submissions.NewHandler(repo, nil, nil, nil, logger)
	submitter := wizard.NewHTTPSubmitter("http://localhost/", time.Second, logger)
	sessions := handlers.NewWizardSessions(wizard.NewMemoryStore(), submitter, "https://pay.example/full", "https://pay.example/hourly", nil, logger)

	return New(&Config{
		Logger:             logger,
		SubmissionsHandler: subHandler,
		WizardSessions:     sessions,
		AdminAuthSecret:    "test-secret",
		SubmitRateLimit:    100,
		SubmitBurst:        100,
	})
}

func TestHealthEndpoint(t *testing.T) {
	r := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ok") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestSubmitRoute(t *testing.T) {
	r := testRouter(t)

	form := url.Values{}
	form.Set("form-name", "booking-hourly")
	form.Set("name", "Ada")
	form.Set("email", "ada@example.com")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestWizardSessionRoute(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/booking/wizard/sessions", strings.NewReader(`{"form":"booking-hourly"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminRequiresJWT(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d", w.Code)
	}

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d: %s", w.Code, w.Body.String())
	}
}
