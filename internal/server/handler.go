package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/inputkit/padbridge/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // local use only
	},
}

func handleWebSocket(log *slog.Logger, h *hub.Hub, b *hub.Broadcaster, lister hub.Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("websocket upgrade failed", "error", err)
			return
		}

		client := hub.NewClient(h, conn)
		h.Register(client)

		// New clients get the current connection state before any
		// live event.
		b.SendInitialState(client)

		go client.WritePump()
		go client.ReadPump(lister, log)
	}
}
