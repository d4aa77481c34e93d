package ws

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, userID string) *Client {
	return &Client{
		UserID:  userID,
		Send:    make(chan any, 8),
		manager: m,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestManagerPresence(t *testing.T) {
	m := NewManager()
	go m.Run()

	client := newTestClient(m, "user-1")
	m.register <- client
	waitFor(t, func() bool { return m.IsOnline("user-1") })
	assert.Equal(t, 1, m.ClientCount())

	m.unregister <- client
	waitFor(t, func() bool { return !m.IsOnline("user-1") })
	assert.Equal(t, 0, m.ClientCount())
}

func TestManagerReplacesConnectionPerUser(t *testing.T) {
	m := NewManager()
	go m.Run()

	first := newTestClient(m, "user-1")
	second := newTestClient(m, "user-1")

	m.register <- first
	waitFor(t, func() bool { return m.IsOnline("user-1") })
	m.register <- second
	waitFor(t, func() bool {
		m.mu.RLock()
		defer m.mu.RUnlock()
		return m.clients["user-1"] == second
	})

	// The replaced connection's send channel is closed.
	_, open := <-first.Send
	assert.False(t, open)
	assert.Equal(t, 1, m.ClientCount())
}

func TestBroadcastToUsers(t *testing.T) {
	m := NewManager()
	go m.Run()

	online := newTestClient(m, "user-1")
	m.register <- online
	waitFor(t, func() bool { return m.IsOnline("user-1") })

	m.BroadcastToUsers([]string{"user-1", "offline-user"}, "hello")

	select {
	case msg := <-online.Send:
		require.Equal(t, "hello", msg)
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}
