package httpx

import (
	"context"
	"net/http"
)

// Authorizer decides whether a verified subject may use protected routes.
// Implementations must fail closed.
type Authorizer interface {
	Authorize(ctx context.Context, subject string) bool
}

// AuthorizerFunc adapts a function to Authorizer.
type AuthorizerFunc func(ctx context.Context, subject string) bool

func (f AuthorizerFunc) Authorize(ctx context.Context, subject string) bool { return f(ctx, subject) }

// RequireAuthorized must run after AuthnMiddleware. Requests whose subject is
// missing or rejected by the Authorizer get a 403.
func RequireAuthorized(a Authorizer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := SubjectFromContext(r.Context())
			if !ok || !a.Authorize(r.Context(), subject) {
				writeForbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeForbidden(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("forbidden"))
}
