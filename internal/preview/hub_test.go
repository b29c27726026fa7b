package preview

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id, sessionID string, hub *Hub) *Client {
	return &Client{
		ID:              id,
		SessionID:       sessionID,
		hub:             hub,
		send:            make(chan []byte, 64),
		clickTimestamps: make([]time.Time, 0, maxClicksPerSecond),
	}
}

func TestHubCreation(t *testing.T) {
	hub := NewHub()
	require.NotNil(t, hub)
	assert.NotNil(t, hub.Register)
	assert.NotNil(t, hub.Unregister)
	assert.NotNil(t, hub.Inbound)
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient("client-1", "session-1", hub)

	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 1, hub.GetClientCount("session-1"))
	assert.True(t, hub.IsSessionActive("session-1"))
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient("client-1", "session-1", hub)

	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	hub.Unregister <- client
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 0, hub.GetClientCount("session-1"))
	assert.False(t, hub.IsSessionActive("session-1"))
}

func TestHubSessionEmptyCallback(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	var emptied []string

	hub.OnSessionEmpty(func(sessionID string) {
		mu.Lock()
		emptied = append(emptied, sessionID)
		mu.Unlock()
	})

	go hub.Run()
	defer hub.Shutdown()

	client1 := newTestClient("client-1", "session-1", hub)
	client2 := newTestClient("client-2", "session-1", hub)

	hub.Register <- client1
	hub.Register <- client2
	time.Sleep(100 * time.Millisecond)

	// first disconnect leaves one client, no callback yet
	hub.Unregister <- client1
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.Empty(t, emptied)
	mu.Unlock()

	// last disconnect fires the callback once
	hub.Unregister <- client2
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"session-1"}, emptied)
	mu.Unlock()
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client1 := newTestClient("client-1", "session-1", hub)
	client2 := newTestClient("client-2", "session-2", hub)

	hub.Register <- client1
	hub.Register <- client2
	time.Sleep(100 * time.Millisecond)

	selected := "btn-1"
	msg, err := NewMessage(TypeSelectionChanged, "session-1", SelectionChangedPayload{
		SelectedID: &selected,
	})
	require.NoError(t, err)

	hub.BroadcastToSession("session-1", msg)
	time.Sleep(100 * time.Millisecond)

	// client in the session receives the message
	select {
	case received := <-client1.send:
		var receivedMsg Message
		require.NoError(t, json.Unmarshal(received, &receivedMsg))
		assert.Equal(t, TypeSelectionChanged, receivedMsg.Type)
		assert.Equal(t, uint64(1), receivedMsg.Sequence)
	case <-time.After(1 * time.Second):
		t.Error("client-1 should have received message")
	}

	// client in another session does not
	select {
	case <-client2.send:
		t.Error("client-2 should not have received message (different session)")
	default:
	}
}

func TestHubBroadcastSequenceNumbers(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient("client-1", "session-1", hub)

	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	for range 3 {
		msg, err := NewMessage(TypeSelectionChanged, "session-1", SelectionChangedPayload{})
		require.NoError(t, err)
		hub.BroadcastToSession("session-1", msg)
	}

	for want := uint64(1); want <= 3; want++ {
		select {
		case received := <-client.send:
			var receivedMsg Message
			require.NoError(t, json.Unmarshal(received, &receivedMsg))
			assert.Equal(t, want, receivedMsg.Sequence)
		case <-time.After(1 * time.Second):
			t.Fatalf("missing broadcast %d", want)
		}
	}
}

func TestHubMessageHandler(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	var mu sync.Mutex
	var handled []string

	hub.RegisterHandler(TypeElementClick, func(hub *Hub, client *Client, msg *Message) error {
		var payload ElementClickPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return err
		}

		mu.Lock()
		handled = append(handled, payload.ElementID)
		mu.Unlock()
		return nil
	})

	client := newTestClient("client-1", "session-1", hub)

	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	msg, err := NewMessage(TypeElementClick, "session-1", ElementClickPayload{ElementID: "btn-1"})
	require.NoError(t, err)
	msg.ClientID = "client-1"

	hub.Inbound <- msg
	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	assert.Equal(t, []string{"btn-1"}, handled)
	mu.Unlock()
}

func TestHubUnhandledMessageType(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Shutdown()

	client := newTestClient("client-1", "session-1", hub)

	hub.Register <- client
	time.Sleep(100 * time.Millisecond)

	msg, err := NewMessage("bogus_type", "session-1", map[string]any{})
	require.NoError(t, err)
	msg.ClientID = "client-1"

	hub.Inbound <- msg
	time.Sleep(100 * time.Millisecond)

	// sender receives an error message back
	select {
	case received := <-client.send:
		var receivedMsg Message
		require.NoError(t, json.Unmarshal(received, &receivedMsg))
		assert.Equal(t, TypeError, receivedMsg.Type)
	case <-time.After(1 * time.Second):
		t.Error("client should have received an error message")
	}
}

func TestHubConnectionLimits(t *testing.T) {
	hub := NewHub()

	for range maxConnectionsPerIP {
		hub.TrackIPConnection("10.0.0.1")
	}

	canAccept, reason := hub.CanAcceptConnection("10.0.0.1")
	assert.False(t, canAccept)
	assert.NotEmpty(t, reason)

	canAccept, _ = hub.CanAcceptConnection("10.0.0.2")
	assert.True(t, canAccept)
}
