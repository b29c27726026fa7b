package preview

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// message type constants for the preview channel
const (
	// is sent by clients when a pointer event lands on an element
	TypeElementClick = "element_click"

	// is sent by clients to deselect the current element
	TypeClearSelection = "clear_selection"

	// is sent by the server whenever the selection changes
	TypeSelectionChanged = "selection_changed"

	// is sent to a connecting client with the current selection
	TypePreviewState = "preview_state"

	// is sent when an error occurs
	TypeError = "error"

	// is sent by server before shutdown
	TypeServerShutdown = "server_shutdown"
)

// client connection constants
const (
	// time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// maximum message size allowed from peer
	maxMessageSize = 16 * 1024 // 16 KB, pointer events are tiny

	// maximum pointer events per second per client
	maxClicksPerSecond = 20
)

// hub connection limit constants
const (
	maxConnectionsPerIP = 10
)

// errors
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrInvalidMessage   = errors.New("invalid message format")
)

// represents a preview channel message with typed payload
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"session_id"`
	ClientID  string          `json:"-"` // internal only, not sent to clients
	Timestamp time.Time       `json:"timestamp"`
	Sequence  uint64          `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// contains a pointer event on a preview element
type ElementClickPayload struct {
	ElementID string `json:"element_id"`
}

// contains the new selection state
type SelectionChangedPayload struct {
	SelectedID *string `json:"selected_id"`
}

// contains the selection sent to a connecting client
type PreviewStatePayload struct {
	SelectedID *string `json:"selected_id"`
}

// contains information about server shutdown
type ServerShutdownPayload struct {
	Reason string `json:"reason"`
}

// represents a preview channel client connection
type Client struct {
	// unique identifier for this client
	ID string

	// preview session this client watches
	SessionID string

	// IP address of the client (for connection tracking)
	IPAddress string

	// websocket connection
	conn *websocket.Conn

	// hub reference for message broadcasting
	hub *Hub

	// buffered channel of outbound messages
	send chan []byte

	// mutex for thread-safe operations
	mu sync.RWMutex

	// flag indicating if client is closed
	closed bool

	// rate limiting: pointer event timestamps (sliding window)
	clickTimestamps []time.Time
}

// maintains the set of active clients and broadcasts messages to sessions
type Hub struct {
	// registered clients by session ID and client ID
	sessions map[string]map[string]*Client

	// register requests from clients
	Register chan *Client

	// unregister requests from clients
	Unregister chan *Client

	// inbound messages routed to handlers
	Inbound chan *Message

	// mutex for thread-safe access to sessions
	mu sync.RWMutex

	// message handlers for different message types
	handlers map[string]MessageHandler

	// flag indicating if hub is running
	running bool

	// channel to signal shutdown
	shutdown chan struct{}

	// connection tracking: IP address -> count of connections
	ipConnections map[string]int

	// sequence numbers per session for message ordering
	sessionSequences map[string]uint64

	// callback after a client is registered (e.g., send current selection)
	onClientRegistered func(client *Client)

	// callback when a session's last client disconnects
	onSessionEmpty func(sessionID string)
}

// processes a specific message type
type MessageHandler func(hub *Hub, client *Client, msg *Message) error
