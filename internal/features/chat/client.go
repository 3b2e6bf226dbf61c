package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tunespace/tunespace-api/internal/features/auth"
	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection bound to a user.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	service *Service
	user    *auth.User
	userID  uint
	send    chan []byte
}

func NewClient(hub *Hub, conn *websocket.Conn, service *Service, user *auth.User) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		service: service,
		user:    user,
		userID:  user.ID,
		send:    make(chan []byte, 32),
	}
}

// Start registers the client and runs the read and write pumps.
func (c *Client) Start() {
	c.hub.register <- c
	go c.writePump()
	c.readPump()
}

// readPump consumes frames from the connection. Each frame is a send request
// that goes through the same service path as the REST endpoint, so
// restrictions and notifications behave identically over both transports.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("chat read for user %d: %v", c.userID, err)
			}
			return
		}

		var env wsEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.sendError("invalid message format")
			continue
		}
		if env.RecipientID == 0 || env.Content == "" {
			c.sendError("recipientId and content are required")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		msg, err := c.service.Send(ctx, c.user, &SendMessageRequest{
			RecipientID: env.RecipientID,
			Content:     env.Content,
		}, c.hub.IsOnline(env.RecipientID))
		cancel()
		if err != nil {
			c.sendError(err.Error())
			continue
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			logger.Error("marshal chat message %d: %v", msg.ID, err)
			continue
		}
		c.hub.Deliver(msg.RecipientID, payload)
		c.hub.Deliver(c.userID, payload)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendError(msg string) {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	select {
	case c.send <- payload:
	default:
	}
}
