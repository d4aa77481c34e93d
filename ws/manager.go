package ws

import (
	"sync"

	"buildlink_backend/internal/logger"
)

// Manager tracks live WebSocket connections keyed by user id. Presence is
// process-local; a user not in the map is simply offline and delivery to them
// is skipped. Fan-out happens after the durable append, so a missed delivery
// is recovered by fetching room history.
type Manager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run owns the presence map mutations. Call it once in its own goroutine.
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if old, ok := m.clients[client.UserID]; ok {
				close(old.Send)
			}
			m.clients[client.UserID] = client
			m.mu.Unlock()
			logger.Debug("ws client connected", "user_id", client.UserID)

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.UserID]; ok && current == client {
				close(client.Send)
				delete(m.clients, client.UserID)
			}
			m.mu.Unlock()
			logger.Debug("ws client disconnected", "user_id", client.UserID)
		}
	}
}

// BroadcastToUsers delivers the message to every listed user that is online.
// A client with a full send buffer is dropped rather than blocking the
// broadcast.
func (m *Manager) BroadcastToUsers(userIDs []string, message any) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, userID := range userIDs {
		client, ok := m.clients[userID]
		if !ok {
			continue
		}
		select {
		case client.Send <- message:
		default:
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

func (m *Manager) IsOnline(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
