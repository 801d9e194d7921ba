package middleware

import (
	"encoding/json"
	"net/http"

	domainerrors "file-vault/internal/domain/errors"
	"file-vault/internal/logger"
)

// ErrorHandlerMiddleware recovers from panics and writes unified JSON errors.
func ErrorHandlerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if l := logger.GetLogger(); l != nil {
					l.LogError("panic recovered", nil, map[string]interface{}{
						"panic":  rec,
						"method": r.Method,
						"path":   r.URL.Path,
					})
				}
				writeJSONError(w, http.StatusInternalServerError, domainerrors.ErrInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, derr domainerrors.DomainError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   derr.Message,
		"code":    derr.Code,
	})
}
