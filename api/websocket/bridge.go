package websocket

import (
	"encoding/json"
	"fmt"
	"sync"

	"codeberg.org/vibecode/server/internal/logger"
	"codeberg.org/vibecode/server/internal/preview"
	"codeberg.org/vibecode/server/internal/selection"
)

// subscriber id the bridge registers on every session's manager
const hubSubscriberID = "preview-hub"

// Bridge connects the preview hub to per-session selection managers.
// Pointer events arriving on the websocket are fed into the session's
// selection manager, and selection changes are broadcast back to every
// client watching that session.
type Bridge struct {
	hub *preview.Hub

	mu       sync.Mutex
	sessions map[string]*sessionLink
}

// holds the selection state machinery for one preview session
type sessionLink struct {
	manager *selection.Manager
	surface *previewSurface
}

// previewSurface adapts the websocket channel to the selection
// manager's pointer listener contract. An empty element ID means a
// click outside any selectable element.
type previewSurface struct {
	mu      sync.Mutex
	handler func(elementID string)
}

func (s *previewSurface) AddPointerListener(handler func(elementID string)) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("pointer listener cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return nil, fmt.Errorf("surface already has a pointer listener")
	}

	s.handler = handler

	return func() {
		s.mu.Lock()
		s.handler = nil
		s.mu.Unlock()
	}, nil
}

// delivers a pointer event to the attached listener, if any
func (s *previewSurface) emit(elementID string) {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()

	if handler != nil {
		handler(elementID)
	}
}

// NewBridge wires selection handling into the hub. Call once before
// the hub starts accepting connections.
func NewBridge(hub *preview.Hub) *Bridge {
	b := &Bridge{
		hub:      hub,
		sessions: make(map[string]*sessionLink),
	}

	hub.RegisterHandler(preview.TypeElementClick, b.handleElementClick)
	hub.RegisterHandler(preview.TypeClearSelection, b.handleClearSelection)
	hub.OnClientRegistered(b.sendPreviewState)
	hub.OnSessionEmpty(b.releaseSession)

	return b
}

// returns the selection link for a session, creating it on first use
func (b *Bridge) ensureSession(sessionID string) (*sessionLink, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if link, exists := b.sessions[sessionID]; exists {
		return link, nil
	}

	surface := &previewSurface{}
	manager := selection.NewManager()

	if err := manager.AttachTo(surface); err != nil {
		return nil, fmt.Errorf("attach selection manager: %w", err)
	}

	manager.Subscribe(hubSubscriberID, func(state selection.SelectionState) {
		msg, err := preview.NewMessage(preview.TypeSelectionChanged, sessionID, preview.SelectionChangedPayload{
			SelectedID: state.SelectedID,
		})
		if err != nil {
			logger.ErrorErr(err, "failed to create selection message",
				"session_id", sessionID,
			)
			return
		}

		b.hub.BroadcastToSession(sessionID, msg)
	})

	link := &sessionLink{manager: manager, surface: surface}
	b.sessions[sessionID] = link

	return link, nil
}

// processes an element_click message from a client
func (b *Bridge) handleElementClick(hub *preview.Hub, client *preview.Client, msg *preview.Message) error {
	var payload preview.ElementClickPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return fmt.Errorf("invalid element_click payload: %w", err)
	}

	if payload.ElementID == "" {
		return fmt.Errorf("element_id is required")
	}

	link, err := b.ensureSession(msg.SessionID)
	if err != nil {
		return err
	}

	link.surface.emit(payload.ElementID)

	return nil
}

// processes a clear_selection message from a client
func (b *Bridge) handleClearSelection(hub *preview.Hub, client *preview.Client, msg *preview.Message) error {
	link, err := b.ensureSession(msg.SessionID)
	if err != nil {
		return err
	}

	// empty element ID clears the selection
	link.surface.emit("")

	return nil
}

// sends the current selection to a freshly connected client
func (b *Bridge) sendPreviewState(client *preview.Client) {
	link, err := b.ensureSession(client.SessionID)
	if err != nil {
		logger.ErrorErr(err, "failed to prepare selection state",
			"client_id", client.ID,
			"session_id", client.SessionID,
		)
		return
	}

	state := link.manager.Current()

	msg, err := preview.NewMessage(preview.TypePreviewState, client.SessionID, preview.PreviewStatePayload{
		SelectedID: state.SelectedID,
	})
	if err != nil {
		logger.ErrorErr(err, "failed to create preview state message",
			"client_id", client.ID,
			"session_id", client.SessionID,
		)
		return
	}

	if err := client.Send(msg); err != nil {
		logger.Warn("failed to send preview state",
			"client_id", client.ID,
			"session_id", client.SessionID,
			"error", err,
		)
	}
}

// tears down selection state when the last client leaves a session
func (b *Bridge) releaseSession(sessionID string) {
	b.mu.Lock()
	link, exists := b.sessions[sessionID]
	delete(b.sessions, sessionID)
	b.mu.Unlock()

	if !exists {
		return
	}

	link.manager.Unsubscribe(hubSubscriberID)
	link.manager.Detach()

	logger.Debug("preview session released",
		"session_id", sessionID,
	)
}

// SessionSelection returns the current selection for a session without
// creating selection state for unknown sessions.
func (b *Bridge) SessionSelection(sessionID string) (selection.SelectionState, bool) {
	b.mu.Lock()
	link, exists := b.sessions[sessionID]
	b.mu.Unlock()

	if !exists {
		return selection.SelectionState{}, false
	}

	return link.manager.Current(), true
}
