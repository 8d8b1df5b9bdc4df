package middleware

import (
	"context"
	"net/http"

	"resbook/pkg/logger"
	"resbook/pkg/model"
)

const (
	// Headers set by the authenticating gateway. This service never
	// verifies credentials itself; it trusts the already-resolved
	// identity handed to it.
	HeaderPrincipalID   = "X-Principal-Id"
	HeaderPrincipalRole = "X-Principal-Role"
)

const principalKey contextKey = "principal"

// PrincipalResolution extracts the authenticated principal from trusted
// headers and stores it in the request context. Requests without a
// resolvable principal are rejected with 401.
func PrincipalResolution(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderPrincipalID)
			role := model.Role(r.Header.Get(HeaderPrincipalRole))

			if id == "" || (role != model.RoleStandard && role != model.RoleAdmin) {
				log.Warn("Request without resolvable principal",
					"request_id", RequestID(r.Context()),
					"path", r.URL.Path,
					"role", string(role),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Missing or invalid principal"}`))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, model.Principal{ID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by PrincipalResolution.
func PrincipalFromContext(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}

// WithPrincipal is a test helper to seed a principal into a context.
func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
