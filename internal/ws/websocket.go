package ws

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	sess, ok := h.svc.GetSession(sessionID)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.String("session_id", sessionID), zap.Error(err))
		return
	}

	client := &Client{
		hub:       h,
		sessionID: sess.ID,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),

		registered: make(chan struct{}),
	}

	h.register <- client
	<-client.registered
	go client.writePump()

	h.Send(sess.ID, Envelope{Type: TypeSessionState, Payload: sess.Snapshot()})

	client.readPump(sess)
}
