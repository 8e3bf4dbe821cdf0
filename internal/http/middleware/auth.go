package middleware

import (
	"io"
	"net/http"
	"strings"

	"kargo-booking/internal/logx"
	"kargo-booking/internal/session"
)

// UserHeader carries the authenticated user id resolved by the edge proxy.
const UserHeader = "X-User-ID"

// Auth attaches the user id from UserHeader to the request context. Requests
// without it are rejected with 401; authentication itself happens upstream.
func Auth(logger logx.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(UserHeader))
			if id == "" {
				logger.Warn("request without user identity",
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				if _, err := io.WriteString(w, `{"error":"authentication required"}`); err != nil {
					logger.Debug("auth response write failed", logx.Any("err", err))
				}
				return
			}
			next.ServeHTTP(w, r.WithContext(session.WithUserID(r.Context(), id)))
		})
	}
}
