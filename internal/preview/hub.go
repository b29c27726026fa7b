package preview

import (
	"time"

	"codeberg.org/vibecode/server/internal/logger"
)

func NewHub() *Hub {
	return &Hub{
		sessions:         make(map[string]map[string]*Client),
		Register:         make(chan *Client),
		Unregister:       make(chan *Client),
		Inbound:          make(chan *Message, 256),
		handlers:         make(map[string]MessageHandler),
		running:          false,
		shutdown:         make(chan struct{}),
		ipConnections:    make(map[string]int),
		sessionSequences: make(map[string]uint64),
	}
}

// registers a handler for a specific message type
func (h *Hub) RegisterHandler(messageType string, handler MessageHandler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[messageType] = handler
}

// sets callback to be called after a client is registered
func (h *Hub) OnClientRegistered(callback func(client *Client)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onClientRegistered = callback
}

// sets callback to be called when a session loses its last client
func (h *Hub) OnSessionEmpty(callback func(sessionID string)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSessionEmpty = callback
}

// starts the hub's main loop
func (h *Hub) Run() {
	h.running = true
	defer func() {
		h.running = false
	}()

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case message := <-h.Inbound:
			h.handleMessage(message)

		case <-h.shutdown:
			h.closeAllConnections()
			return
		}
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()

	if h.sessions[client.SessionID] == nil {
		h.sessions[client.SessionID] = make(map[string]*Client)
	}

	h.sessions[client.SessionID][client.ID] = client
	callback := h.onClientRegistered

	h.mu.Unlock()

	logger.Info("preview client registered",
		"client_id", client.ID,
		"session_id", client.SessionID,
	)

	// call registered callback (e.g., to send the current selection)
	if callback != nil {
		go callback(client)
	}
}

// removes a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()

	sessionClients, exists := h.sessions[client.SessionID]
	if !exists {
		h.mu.Unlock()
		return
	}

	if _, exists := sessionClients[client.ID]; !exists {
		h.mu.Unlock()
		return
	}

	delete(sessionClients, client.ID)
	client.Close()

	if client.IPAddress != "" {
		h.ipConnections[client.IPAddress]--

		if h.ipConnections[client.IPAddress] <= 0 {
			delete(h.ipConnections, client.IPAddress)
		}
	}

	logger.Info("preview client unregistered",
		"client_id", client.ID,
		"session_id", client.SessionID,
	)

	sessionEmpty := len(sessionClients) == 0
	if sessionEmpty {
		delete(h.sessions, client.SessionID)
		delete(h.sessionSequences, client.SessionID)
	}

	callback := h.onSessionEmpty
	h.mu.Unlock()

	// call empty-session callback outside lock (detaches the selection manager)
	if sessionEmpty && callback != nil {
		callback(client.SessionID)
	}
}

// processes an incoming message
func (h *Hub) handleMessage(msg *Message) {
	h.mu.RLock()

	sessionClients, exists := h.sessions[msg.SessionID]
	if !exists {
		h.mu.RUnlock()
		logger.Warn("session not found for message",
			"session_id", msg.SessionID,
			"message_type", msg.Type,
		)
		return
	}

	sender, exists := sessionClients[msg.ClientID]
	h.mu.RUnlock()

	if !exists {
		logger.Warn("sender client not found for message",
			"client_id", msg.ClientID,
			"session_id", msg.SessionID,
			"message_type", msg.Type,
		)
		return
	}

	h.mu.RLock()
	handler, exists := h.handlers[msg.Type]
	h.mu.RUnlock()

	if exists {
		// run handler asynchronously to avoid blocking the hub
		go func() {
			if err := handler(h, sender, msg); err != nil {
				logger.ErrorErr(err, "handler error",
					"message_type", msg.Type,
					"client_id", sender.ID,
					"session_id", msg.SessionID,
				)

				sender.SendError("server_error", "failed to process message", err.Error())
			}
		}()
	} else {
		// reject unhandled message types
		logger.Warn("unhandled message type received",
			"message_type", msg.Type,
			"client_id", sender.ID,
			"session_id", msg.SessionID,
		)

		sender.SendError("bad_request", "unsupported message type", "message type not recognized")
	}
}

// sends a message to all clients in a session
func (h *Hub) BroadcastToSession(sessionID string, msg *Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.broadcastToSession(sessionID, msg)
}

// the internal broadcast function (must be called with lock held)
func (h *Hub) broadcastToSession(sessionID string, msg *Message) {
	sessionClients, exists := h.sessions[sessionID]
	if !exists {
		return
	}

	// assign sequence number to message
	h.sessionSequences[sessionID]++
	msg.Sequence = h.sessionSequences[sessionID]

	for clientID, client := range sessionClients {
		if err := client.Send(msg); err != nil {
			logger.ErrorErr(err, "failed to send message to client",
				"client_id", clientID,
				"session_id", sessionID,
			)
		}
	}
}

// returns the number of clients in a session
func (h *Hub) GetClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sessionClients, exists := h.sessions[sessionID]
	if !exists {
		return 0
	}

	return len(sessionClients)
}

func (h *Hub) GetSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// IsSessionActive checks if a session has any active connections
func (h *Hub) IsSessionActive(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sessionClients, exists := h.sessions[sessionID]
	return exists && len(sessionClients) > 0
}

func (h *Hub) Shutdown() {
	if h.running {
		close(h.shutdown)
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()

	logger.Info("notifying preview clients of server shutdown")

	// send shutdown notification to all clients first
	for sessionID, sessionClients := range h.sessions {
		shutdownMsg, err := NewMessage(TypeServerShutdown, sessionID, ServerShutdownPayload{
			Reason: "server is shutting down for maintenance",
		})
		if err != nil {
			logger.ErrorErr(err, "failed to create shutdown message")
			continue
		}

		for _, client := range sessionClients {
			if err := client.Send(shutdownMsg); err != nil {
				logger.ErrorErr(err, "failed to send shutdown notification",
					"client_id", client.ID,
					"session_id", sessionID,
				)
			}
		}
	}

	h.mu.Unlock()

	// give clients time to receive the shutdown message
	time.Sleep(500 * time.Millisecond)

	h.mu.Lock()
	defer h.mu.Unlock()

	logger.Info("closing all preview connections")

	for _, sessionClients := range h.sessions {
		for _, client := range sessionClients {
			client.Close()
		}
	}

	// clear all sessions and connection tracking
	h.sessions = make(map[string]map[string]*Client)
	h.ipConnections = make(map[string]int)
	h.sessionSequences = make(map[string]uint64)
}

// checks if a new connection should be allowed based on limits
func (h *Hub) CanAcceptConnection(ipAddress string) (bool, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := h.ipConnections[ipAddress]
	if count >= maxConnectionsPerIP {
		return false, "Maximum connections per IP address exceeded"
	}

	return true, ""
}

// increments the connection count for an IP address
func (h *Hub) TrackIPConnection(ipAddress string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ipConnections[ipAddress]++
}
