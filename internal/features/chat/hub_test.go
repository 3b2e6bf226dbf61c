package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(userID uint) *Client {
	return &Client{userID: userID, send: make(chan []byte, 4)}
}

func waitOnline(t *testing.T, hub *Hub, userID uint, want bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		if hub.IsOnline(userID) == want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("user %d online state never became %v", userID, want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestHubRegisterAndUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(7)
	hub.register <- client
	waitOnline(t, hub, 7, true)

	hub.unregister <- client
	waitOnline(t, hub, 7, false)

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed on unregister")
}

func TestHubDeliverToConnectedUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(7)
	hub.register <- client
	waitOnline(t, hub, 7, true)

	hub.Deliver(7, []byte(`{"content":"hi"}`))

	select {
	case payload := <-client.send:
		assert.JSONEq(t, `{"content":"hi"}`, string(payload))
	case <-time.After(time.Second):
		t.Fatal("payload never delivered")
	}
}

func TestHubDeliverToOfflineUserIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Nothing to assert beyond "does not block or panic".
	hub.Deliver(99, []byte("hello"))

	client := testClient(7)
	hub.register <- client
	waitOnline(t, hub, 7, true)
	hub.Deliver(7, []byte("for 7"))

	select {
	case payload := <-client.send:
		assert.Equal(t, "for 7", string(payload))
	case <-time.After(time.Second):
		t.Fatal("payload never delivered")
	}
}

func TestHubReplacesDuplicateConnection(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := testClient(7)
	hub.register <- first
	waitOnline(t, hub, 7, true)

	second := testClient(7)
	hub.register <- second

	// The first connection's send channel is closed when replaced.
	select {
	case _, open := <-first.send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("first connection was never closed")
	}

	hub.Deliver(7, []byte("to second"))
	select {
	case payload := <-second.send:
		assert.Equal(t, "to second", string(payload))
	case <-time.After(time.Second):
		t.Fatal("payload never delivered to replacement connection")
	}
}

func TestHubDropsSlowConsumer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{userID: 7, send: make(chan []byte)} // unbuffered, never read
	hub.register <- client
	waitOnline(t, hub, 7, true)

	hub.Deliver(7, []byte("overflow"))
	waitOnline(t, hub, 7, false)
}
