package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAdminJWTRejections(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
	}{
		{name: "unconfigured secret", secret: "", header: ""},
		{name: "missing header", secret: "secret", header: ""},
		{name: "not a bearer header", secret: "secret", header: "Basic abc"},
		{name: "empty bearer token", secret: "secret", header: "Bearer "},
		{name: "wrong signing secret", secret: "secret", header: "Bearer " + adminToken(t, "other-secret", time.Now().Add(5*time.Minute))},
		{name: "expired token", secret: "secret", header: "Bearer " + adminToken(t, "secret", time.Now().Add(-time.Minute))},
		{name: "garbage token", secret: "secret", header: "Bearer not.a.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := AdminJWT(tt.secret)
			req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be reached")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestAdminJWTAcceptsValidToken(t *testing.T) {
	mw := AdminJWT("secret")
	req := httptest.NewRequest(http.MethodGet, "/admin/submissions", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "secret", time.Now().Add(5*time.Minute)))
	rec := httptest.NewRecorder()

	called := false
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		claims, ok := AdminClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("expected admin claims in context")
		}
		if claims.Subject != "caleb" {
			t.Fatalf("expected subject caleb, got %q", claims.Subject)
		}
		w.WriteHeader(http.StatusOK)
	})).ServeHTTP(rec, req)

	if !called {
		t.Fatal("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func adminToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "caleb",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}
