package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket upgrades connections and runs them as hub clients. Only
// pages served from the local machine may connect.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
		})
		if err != nil {
			hub.logger.Warn("accept", "error", err)
			return
		}
		defer conn.CloseNow()

		NewClient(hub, conn, r.RemoteAddr).Run(r.Context())
	}
}
