package ws

import (
	"encoding/json"
	"sync"

	"github.com/ArtemMoroz51/MovieQuiz/internal/events"
	"github.com/ArtemMoroz51/MovieQuiz/internal/service"
	"go.uber.org/zap"
)

// Hub owns the display-surface connections, at most one per session. A newer
// connection for the same session replaces the older one.
type Hub struct {
	svc       service.GameService
	source    service.QuestionSource
	publisher events.Publisher
	log       *zap.Logger

	mu        sync.RWMutex
	bySession map[string]*Client

	register   chan *Client
	unregister chan *Client
	disconnect chan string
	outbound   chan sessionMessage
}

type sessionMessage struct {
	sessionID string
	data      []byte
}

func NewHub(svc service.GameService, source service.QuestionSource, publisher events.Publisher, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	h := &Hub{
		svc:        svc,
		source:     source,
		publisher:  publisher,
		log:        log,
		bySession:  make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		disconnect: make(chan string),
		outbound:   make(chan sessionMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) Send(sessionID string, env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		h.log.Error("ws send marshal failed",
			zap.String("session_id", sessionID),
			zap.String("type", env.Type),
			zap.Error(err),
		)
		return
	}
	h.outbound <- sessionMessage{sessionID: sessionID, data: b}
}

func (h *Hub) Connected(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.bySession[sessionID]
	return ok
}

// Disconnect closes the connection attached to sessionID, if any. The
// detached client stops handling messages.
func (h *Hub) Disconnect(sessionID string) {
	h.disconnect <- sessionID
}

func (h *Hub) owns(c *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.bySession[c.sessionID] == c
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if old, ok := h.bySession[c.sessionID]; ok {
				close(old.send)
				h.log.Info("ws client replaced", zap.String("session_id", c.sessionID))
			}
			h.bySession[c.sessionID] = c
			h.mu.Unlock()
			close(c.registered)

			h.log.Info("ws client registered", zap.String("session_id", c.sessionID))

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()

			h.log.Info("ws client unregistered", zap.String("session_id", c.sessionID))

		case id := <-h.disconnect:
			h.mu.Lock()
			if c, ok := h.bySession[id]; ok {
				h.remove(c)
				h.log.Info("ws client disconnected", zap.String("session_id", id))
			}
			h.mu.Unlock()

		case msg := <-h.outbound:
			h.mu.Lock()
			if c, ok := h.bySession[msg.sessionID]; ok {
				select {
				case c.send <- msg.data:
				default:
					h.log.Warn("ws client too slow, dropping", zap.String("session_id", c.sessionID))
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(c *Client) {
	if cur, ok := h.bySession[c.sessionID]; ok && cur == c {
		delete(h.bySession, c.sessionID)
		close(c.send)
	}
}
