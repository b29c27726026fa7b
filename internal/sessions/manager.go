package sessions

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/questions"
)

// represents an anonymous user's session. A session owns at most one
// active question flow along with the request and analysis that
// produced it, so a later continuation can rebuild the enriched context.
type Session struct {
	ID                  string
	ConversationHistory []analyzer.Message
	ActiveFlow          *questions.Flow
	FlowRequest         analyzer.UserRequest
	FlowAnalysis        *analyzer.IntentAnalysis
	LastActivity        time.Time
	ExpiresAt           time.Time
}

// manages anonymous user sessions in memory
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	ttl      time.Duration
}

// returns a new session manager
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}

	// start cleanup goroutine
	go m.cleanupExpiredSessions()

	return m
}

// returns a new random session ID
func GenerateSessionID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// creates a new session
func (m *Manager) CreateSession() (*Session, error) {
	id, err := GenerateSessionID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:                  id,
		ConversationHistory: []analyzer.Message{},
		LastActivity:        now,
		ExpiresAt:           now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return session, nil
}

// retrieves a session by ID
func (m *Manager) GetSession(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, false
	}

	// check if expired
	if time.Now().After(session.ExpiresAt) {
		return nil, false
	}

	return session, true
}

// appends one conversation turn and refreshes the session's TTL
func (m *Manager) AppendTurn(sessionID, role, content string) error {
	return m.update(sessionID, func(s *Session) error {
		s.ConversationHistory = append(s.ConversationHistory, analyzer.Message{
			Role:    role,
			Content: content,
		})
		return nil
	})
}

// History returns a copy of the session's conversation turns
func (m *Manager) History(sessionID string) ([]analyzer.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	history := make([]analyzer.Message, len(session.ConversationHistory))
	copy(history, session.ConversationHistory)

	return history, nil
}

// SetFlow installs a new active flow, replacing any previous one. The
// originating request and analysis are kept for the continuation call.
func (m *Manager) SetFlow(sessionID string, flow *questions.Flow, req analyzer.UserRequest, analysis *analyzer.IntentAnalysis) error {
	return m.update(sessionID, func(s *Session) error {
		s.ActiveFlow = flow
		s.FlowRequest = req
		s.FlowAnalysis = analysis
		return nil
	})
}

// UpdateFlow runs fn against the session's active flow under the
// manager's lock, so concurrent answers to one flow are serialized
func (m *Manager) UpdateFlow(sessionID string, fn func(flow *questions.Flow) error) error {
	return m.update(sessionID, func(s *Session) error {
		if s.ActiveFlow == nil {
			return ErrNoActiveFlow
		}

		return fn(s.ActiveFlow)
	})
}

// FlowSnapshot returns a copy of the session's active flow together with
// the request and analysis that produced it. The copy is taken under the
// manager's lock; callers may read and serialize it freely while
// concurrent requests keep mutating the live flow.
func (m *Manager) FlowSnapshot(sessionID string) (*questions.Flow, analyzer.UserRequest, *analyzer.IntentAnalysis, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return nil, analyzer.UserRequest{}, nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, analyzer.UserRequest{}, nil, ErrSessionExpired
	}

	if session.ActiveFlow == nil {
		return nil, analyzer.UserRequest{}, nil, ErrNoActiveFlow
	}

	req := analyzer.UserRequest{Message: session.FlowRequest.Message}
	if session.FlowRequest.ConversationHistory != nil {
		req.ConversationHistory = append([]analyzer.Message(nil), session.FlowRequest.ConversationHistory...)
	}

	var analysis *analyzer.IntentAnalysis
	if session.FlowAnalysis != nil {
		copied := *session.FlowAnalysis
		analysis = &copied
	}

	return session.ActiveFlow.Clone(), req, analysis, nil
}

// ClearFlow discards the active flow after completion or abandonment
func (m *Manager) ClearFlow(sessionID string) error {
	return m.update(sessionID, func(s *Session) error {
		s.ActiveFlow = nil
		s.FlowRequest = analyzer.UserRequest{}
		s.FlowAnalysis = nil
		return nil
	})
}

// removes a session
func (m *Manager) DeleteSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// update applies fn to a live session and refreshes its TTL
func (m *Manager) update(sessionID string, fn func(s *Session) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[sessionID]
	if !exists {
		return ErrSessionNotFound
	}

	// check if expired
	if time.Now().After(session.ExpiresAt) {
		delete(m.sessions, sessionID)
		return ErrSessionExpired
	}

	if err := fn(session); err != nil {
		return err
	}

	now := time.Now()
	session.LastActivity = now
	session.ExpiresAt = now.Add(m.ttl)

	return nil
}

// runs periodically to remove expired sessions
func (m *Manager) cleanupExpiredSessions() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		now := time.Now()

		for id, session := range m.sessions {
			if now.After(session.ExpiresAt) {
				delete(m.sessions, id)
			}
		}

		m.mu.Unlock()
	}
}

// returns the number of active sessions
func (m *Manager) GetSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
