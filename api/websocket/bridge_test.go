package websocket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vibecode/server/internal/preview"
)

func clickMessage(t *testing.T, sessionID, elementID string) *preview.Message {
	t.Helper()

	payload, err := json.Marshal(preview.ElementClickPayload{ElementID: elementID})
	require.NoError(t, err)

	return &preview.Message{
		Type:      preview.TypeElementClick,
		SessionID: sessionID,
		Payload:   payload,
	}
}

func TestBridgeElementClickSelects(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	err := bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "btn-1"))
	require.NoError(t, err)

	state, exists := bridge.SessionSelection("session-1")
	require.True(t, exists)
	require.NotNil(t, state.SelectedID)
	assert.Equal(t, "btn-1", *state.SelectedID)
}

func TestBridgeClickReplacesSelection(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "btn-1")))
	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "input-2")))

	state, exists := bridge.SessionSelection("session-1")
	require.True(t, exists)
	require.NotNil(t, state.SelectedID)
	assert.Equal(t, "input-2", *state.SelectedID)
}

func TestBridgeClearSelection(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "btn-1")))

	clearMsg := &preview.Message{
		Type:      preview.TypeClearSelection,
		SessionID: "session-1",
		Payload:   json.RawMessage(`{}`),
	}
	require.NoError(t, bridge.handleClearSelection(hub, nil, clearMsg))

	state, exists := bridge.SessionSelection("session-1")
	require.True(t, exists)
	assert.Nil(t, state.SelectedID)
}

func TestBridgeRejectsEmptyElementID(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	err := bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", ""))
	assert.Error(t, err)

	_, exists := bridge.SessionSelection("session-1")
	assert.False(t, exists)
}

func TestBridgeRejectsMalformedPayload(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	msg := &preview.Message{
		Type:      preview.TypeElementClick,
		SessionID: "session-1",
		Payload:   json.RawMessage(`not json`),
	}

	err := bridge.handleElementClick(hub, nil, msg)
	assert.Error(t, err)
}

func TestBridgeSessionsAreIsolated(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-a", "btn-1")))
	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-b", "input-2")))

	stateA, _ := bridge.SessionSelection("session-a")
	stateB, _ := bridge.SessionSelection("session-b")

	require.NotNil(t, stateA.SelectedID)
	require.NotNil(t, stateB.SelectedID)
	assert.Equal(t, "btn-1", *stateA.SelectedID)
	assert.Equal(t, "input-2", *stateB.SelectedID)
}

func TestBridgeReleaseSessionDropsState(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "btn-1")))

	bridge.releaseSession("session-1")

	_, exists := bridge.SessionSelection("session-1")
	assert.False(t, exists)

	// a new click after release starts a fresh session
	require.NoError(t, bridge.handleElementClick(hub, nil, clickMessage(t, "session-1", "card-3")))

	state, exists := bridge.SessionSelection("session-1")
	require.True(t, exists)
	require.NotNil(t, state.SelectedID)
	assert.Equal(t, "card-3", *state.SelectedID)
}

func TestBridgeReleaseUnknownSession(t *testing.T) {
	hub := preview.NewHub()
	bridge := NewBridge(hub)

	// releasing a session that was never created must not panic
	bridge.releaseSession("nope")
}

func TestPreviewSurfaceListenerLifecycle(t *testing.T) {
	surface := &previewSurface{}

	var got []string
	remove, err := surface.AddPointerListener(func(elementID string) {
		got = append(got, elementID)
	})
	require.NoError(t, err)

	surface.emit("btn-1")
	assert.Equal(t, []string{"btn-1"}, got)

	// a second listener is rejected while one is attached
	_, err = surface.AddPointerListener(func(string) {})
	assert.Error(t, err)

	remove()
	surface.emit("btn-2")
	assert.Equal(t, []string{"btn-1"}, got)

	// after removal a new listener can attach
	_, err = surface.AddPointerListener(func(string) {})
	assert.NoError(t, err)
}

func TestPreviewSurfaceRejectsNilListener(t *testing.T) {
	surface := &previewSurface{}

	_, err := surface.AddPointerListener(nil)
	assert.Error(t, err)
}
