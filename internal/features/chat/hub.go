package chat

import (
	"sync"

	"github.com/tunespace/tunespace-api/internal/pkg/logger"
)

// Hub tracks connected clients by user id and routes messages to them. All
// map access happens in Run's goroutine; the exported methods communicate
// through channels only.
type Hub struct {
	clients    map[uint]*Client
	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	mu     sync.RWMutex
	online map[uint]bool
}

type delivery struct {
	userID  uint
	payload []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 64),
		online:     make(map[uint]bool),
	}
}

// Run processes hub events until the process exits. Start it once from main.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if existing, ok := h.clients[client.userID]; ok {
				close(existing.send)
			}
			h.clients[client.userID] = client
			h.setOnline(client.userID, true)
			logger.Debug("chat client connected: user %d", client.userID)

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				h.setOnline(client.userID, false)
				logger.Debug("chat client disconnected: user %d", client.userID)
			}

		case d := <-h.deliver:
			client, ok := h.clients[d.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- d.payload:
			default:
				// Slow consumer, drop the connection.
				delete(h.clients, d.userID)
				close(client.send)
				h.setOnline(d.userID, false)
			}
		}
	}
}

// Deliver queues a payload for the given user if they are connected.
func (h *Hub) Deliver(userID uint, payload []byte) {
	h.deliver <- delivery{userID: userID, payload: payload}
}

// IsOnline reports whether the user currently has a relay connection.
func (h *Hub) IsOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.online[userID]
}

func (h *Hub) setOnline(userID uint, v bool) {
	h.mu.Lock()
	if v {
		h.online[userID] = true
	} else {
		delete(h.online, userID)
	}
	h.mu.Unlock()
}
