package middleware

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"file-vault/internal/auth"
)

// shareRedeemPath matches the public share redemption endpoint where
// the token itself is the credential.
var shareRedeemPath = regexp.MustCompile(`^/api/v1/shares/[0-9a-f]{32}$`)

// AuthMiddleware verifies the Bearer token and stores the resulting
// principal in the request context.
func AuthMiddleware(jwtSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || isPublicEndpoint(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				writeUnauthorizedResponse(w, "Authentication required")
				return
			}

			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				writeUnauthorizedResponse(w, "Invalid authorization header")
				return
			}

			principal, err := auth.VerifyToken(tokenString, jwtSecret)
			if err != nil {
				writeUnauthorizedResponse(w, "Invalid or expired token")
				return
			}

			ctx := auth.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isPublicEndpoint(method, path string) bool {
	if strings.HasSuffix(path, "/health") {
		return true
	}
	return method == http.MethodGet && shareRedeemPath.MatchString(path)
}

func writeUnauthorizedResponse(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
