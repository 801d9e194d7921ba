package middleware

import (
	"net/http"
	"strings"
	"time"

	"file-vault/internal/auth"
	"file-vault/internal/logger"
)

// LoggingMiddleware logs every request and its response as structured
// events.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapper := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}

		requestID := RequestIDFromContext(r.Context())
		var actor string
		if principal, ok := auth.PrincipalFromContext(r.Context()); ok {
			actor = principal.UserID
		}

		l := logger.GetLogger()
		if l != nil {
			l.LogAPIRequest(r.Method, r.URL.Path, getClientIP(r), requestID, actor)
		}

		next.ServeHTTP(wrapper, r)

		if l != nil {
			l.LogAPIResponse(r.Method, r.URL.Path, wrapper.statusCode, time.Since(start), requestID, actor)
		}
	})
}

type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP resolves the client address behind proxies.
func getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip := r.RemoteAddr
	if colonIndex := strings.LastIndex(ip, ":"); colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
