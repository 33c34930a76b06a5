package ws

import (
	"encoding/json"
	"time"

	"github.com/ArtemMoroz51/MovieQuiz/internal/quiz"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Client struct {
	hub       *Hub
	sessionID string
	conn      *websocket.Conn
	send      chan []byte

	// closed by the hub once the client is attached to its session
	registered chan struct{}
}

func (c *Client) readPump(sess *quiz.Session) {
	defer func() {
		// A dropped surface abandons the round; pending pacing becomes stale.
		if c.hub.owns(c) {
			sess.Fail()
		}
		c.hub.unregister <- c
		_ = c.conn.Close()

		c.hub.log.Info("ws connection closed", zap.String("session_id", c.sessionID))
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg clientMsg
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.log.Warn("ws read failed",
					zap.String("session_id", c.sessionID),
					zap.Error(err),
				)
			}
			break
		}

		if !c.hub.owns(c) {
			break
		}

		c.hub.log.Debug("ws message received",
			zap.String("session_id", c.sessionID),
			zap.String("type", msg.Type),
		)

		switch msg.Type {
		case TypeStart, TypeAck:
			c.hub.beginRound(sess)

		case TypeAnswer:
			var p AnswerPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Answer == nil {
				c.hub.log.Warn("answer bad payload",
					zap.String("session_id", c.sessionID),
					zap.Error(err),
				)
				c.hub.Send(c.sessionID, errorEnvelope("bad payload"))
				continue
			}
			c.hub.submitAnswer(sess, *p.Answer)

		default:
			c.hub.log.Warn("unknown ws message type",
				zap.String("session_id", c.sessionID),
				zap.String("type", msg.Type),
			)
			c.hub.Send(c.sessionID, errorEnvelope("unknown message type"))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.hub.log.Warn("ws write failed",
					zap.String("session_id", c.sessionID),
					zap.Error(err),
				)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.hub.log.Warn("ws ping failed",
					zap.String("session_id", c.sessionID),
					zap.Error(err),
				)
				return
			}
		}
	}
}
