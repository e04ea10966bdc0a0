package middleware

import (
	"encoding/json"
	"net/http"

	"mealplan/internal/auth"
	"mealplan/internal/store"
)

// SessionCookieName is the cookie that carries the server-side session token.
const SessionCookieName = "mealplan_session"

// ResolveSession reads the session cookie and, when it maps to a live
// session, populates the auth context. Requests without a valid session pass
// through anonymous: owner-scoped lookups then operate on an empty scope.
// That mirrors the legacy behavior and is deliberate; use RequireUser to turn
// missing sessions into errors instead.
func ResolveSession(sessionStore *store.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessionStore.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			ac := auth.Context{
				UserID:    sess.UserID,
				SessionID: sess.ID,
			}
			next.ServeHTTP(w, r.WithContext(auth.WithContext(r.Context(), ac)))
		})
	}
}

// RequireUser rejects anonymous requests with a 401 envelope. It is applied
// on top of ResolveSession when the server runs in strict-auth mode.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.UserID(r.Context()) == 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"message": "Not logged in",
				"success": false,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
