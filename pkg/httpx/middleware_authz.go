package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
)

// RequireAllCapabilities the caller must hold every capability listed.
// Must run after AuthnMiddleware.
func RequireAllCapabilities(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := make(map[string]struct{})
			for _, c := range capabilitiesFromCtx(r.Context()) {
				have[c] = struct{}{}
			}

			for _, req := range required {
				if _, ok := have[req]; !ok {
					slogx.FromContext(r.Context()).Warn("missing capability", "capability", req)
					writeInsufficientCapability(w, required...)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Capabilities may contain spaces ("Role Edit") so the scope attribute is
// comma separated rather than space separated.
func writeInsufficientCapability(w http.ResponseWriter, required ...string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, ",")+`"`)
	WriteJSON(w, http.StatusForbidden, map[string]string{
		"error":             "insufficient_scope",
		"error_description": "missing capability: " + strings.Join(required, ", "),
	})
}
