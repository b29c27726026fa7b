package selection

import (
	"fmt"
	"sync"

	"codeberg.org/vibecode/server/internal/logger"
)

// Manager tracks which element of a preview surface is selected and
// fans the state out to subscribers. At most one element is selected
// at a time; selecting a new element implicitly deselects the previous
// one, producing a single notification per user action.
type Manager struct {
	mu          sync.Mutex
	state       SelectionState
	surface     Surface
	remove      func()
	subscribers map[string]Listener
}

func NewManager() *Manager {
	return &Manager{
		subscribers: make(map[string]Listener),
	}
}

// AttachTo binds the manager to a preview surface and starts consuming
// its pointer events. Attaching to the surface already attached is a
// no-op; attaching to a different surface detaches the old one first.
// A nil surface is rejected.
func (m *Manager) AttachTo(surface Surface) error {
	if surface == nil {
		return fmt.Errorf("cannot attach to nil surface")
	}

	m.mu.Lock()

	if m.surface == surface {
		m.mu.Unlock()
		return nil
	}

	if m.surface != nil {
		m.mu.Unlock()
		m.Detach()
		m.mu.Lock()
	}

	remove, err := surface.AddPointerListener(m.handlePointer)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("attach to surface: %w", err)
	}

	m.surface = surface
	m.remove = remove
	m.mu.Unlock()

	logger.Debug("selection manager attached")

	return nil
}

// Detach unbinds the manager from its surface and clears the selection.
// Subscribers see one final nil-selection notification if anything was
// selected. Detaching an unattached manager is a no-op.
func (m *Manager) Detach() {
	m.mu.Lock()

	if m.surface == nil {
		m.mu.Unlock()
		return
	}

	remove := m.remove
	m.surface = nil
	m.remove = nil

	changed := m.state.SelectedID != nil
	m.state = SelectionState{}
	listeners := m.snapshotLocked()

	m.mu.Unlock()

	if remove != nil {
		remove()
	}

	if changed {
		for _, l := range listeners {
			l(SelectionState{})
		}
	}

	logger.Debug("selection manager detached")
}

// Subscribe registers a callback under the subscriber id. Re-subscribing
// with the same id replaces the previous callback; it never stacks
// duplicate notifications.
func (m *Manager) Subscribe(id string, l Listener) {
	m.mu.Lock()
	m.subscribers[id] = l
	m.mu.Unlock()
}

// Unsubscribe drops the subscriber; no-op when the id is unknown
func (m *Manager) Unsubscribe(id string) {
	m.mu.Lock()
	delete(m.subscribers, id)
	m.mu.Unlock()
}

// Current returns the selection state at this moment
func (m *Manager) Current() SelectionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Select marks an element as selected. An empty ID clears the selection.
// Re-selecting the current element produces no notification.
func (m *Manager) Select(elementID string) {
	m.handlePointer(elementID)
}

func (m *Manager) handlePointer(elementID string) {
	m.mu.Lock()

	var next *string
	if elementID != "" {
		next = &elementID
	}

	if equalSelection(m.state.SelectedID, next) {
		m.mu.Unlock()
		return
	}

	m.state = SelectionState{SelectedID: next}
	state := m.state
	listeners := m.snapshotLocked()

	m.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
}

// snapshotLocked copies the subscriber set; the caller holds the lock.
// Callbacks run outside the lock so they may call back into the manager.
func (m *Manager) snapshotLocked() []Listener {
	listeners := make([]Listener, 0, len(m.subscribers))
	for _, l := range m.subscribers {
		listeners = append(listeners, l)
	}

	return listeners
}

func equalSelection(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
