package middleware

import (
	"net/http"
	"strings"
)

// CORS lets the booking pages on the marketing site call the API from
// the browser. Origins are matched against an exact allowlist; "*" in
// the list echoes any Origin back.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allow := newOriginAllowlist(allowedOrigins)

	// The API only serves GET, POST and DELETE; no point advertising more.
	const allowedMethods = "GET, POST, DELETE, OPTIONS"
	const allowedHeaders = "Authorization, Content-Type"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin != "" && allow.allows(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Max-Age", "600")
			}

			if r.Method == http.MethodOptions && origin != "" && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type originAllowlist struct {
	any     bool
	origins map[string]struct{}
}

func newOriginAllowlist(origins []string) originAllowlist {
	list := originAllowlist{origins: map[string]struct{}{}}
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		switch origin {
		case "":
		case "*":
			list.any = true
		default:
			list.origins[origin] = struct{}{}
		}
	}
	return list
}

func (l originAllowlist) allows(origin string) bool {
	if l.any {
		return true
	}
	_, ok := l.origins[origin]
	return ok
}
