package web

import (
	"context"
	"net/http"
)

// SessionCookie carries the shopper's cart session identifier.
const SessionCookie = "quill_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionMiddleware ensures every request carries a session ID, issuing a
// cookie on first contact. The ID keys the cart and the toast queue.
func SessionMiddleware(newSessionID func() string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sessionID string
			if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				sessionID = cookie.Value
			} else {
				sessionID = newSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookie,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
