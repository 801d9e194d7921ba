package middleware

import (
	"net/http"

	"file-vault/internal/auth"
	"file-vault/internal/authz"
)

// Authorize enforces RBAC with Casbin based on the principal's role,
// the request path and the method.
func Authorize() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Allow preflight
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if isPublicEndpoint(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				http.Error(w, "UNAUTHORIZED", http.StatusUnauthorized)
				return
			}

			sub := principal.Role
			if sub == "" {
				sub = "user"
			}

			e := authz.GetEnforcer()
			if e == nil {
				// Fail closed
				http.Error(w, "FORBIDDEN", http.StatusForbidden)
				return
			}
			allowed, err := e.Enforce(sub, r.URL.Path, r.Method)
			if err != nil || !allowed {
				http.Error(w, "FORBIDDEN", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
