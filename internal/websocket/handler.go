package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"mealplan/internal/auth"
)

// Handle returns an HTTP handler that upgrades the connection and runs it as
// a hub client scoped to the session's user. Anonymous connections are
// accepted but registered under owner 0, which no broadcast targets.
func Handle(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Cross-origin browser clients; origin checked by CORS layer
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn)
		client.Run(r.Context(), auth.UserID(r.Context()))
	}
}
