package tui

// represents the current state of the TUI
type AppState int

const (
	StateWelcome AppState = iota
	StateChat
)

// main TUI application model
type Model struct {
	state   AppState
	mode    string
	width   int
	height  int
	err     error
	welcome *Welcome
	chat    *ChatModel
}

// sent when an error occurs
type ErrorMsg struct {
	err error
}

// sent to transition to the chat state
type EnterChatMsg struct{}

// represents a chat message in the conversation
type MessageModel struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// welcome screen model
type Welcome struct {
	mode     string
	input    string
	commands []Command
}

// represents an available TUI command
type Command struct {
	Name        string
	Description string
	Available   bool
}

// sent when the server starts
type ServerStartedMsg struct{}

// wire types mirroring the agent REST API

type apiQuestion struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Default  string   `json:"default,omitempty"`
	Skipable bool     `json:"skipable"`
}

type apiFlow struct {
	ID           string            `json:"id"`
	Questions    []apiQuestion     `json:"questions"`
	CurrentIndex int               `json:"current_index"`
	Answers      map[string]string `json:"answers"`
	Completed    bool              `json:"completed"`
}

// returns the question at the current index, or nil when completed
func (f *apiFlow) current() *apiQuestion {
	if f == nil || f.CurrentIndex >= len(f.Questions) {
		return nil
	}

	return &f.Questions[f.CurrentIndex]
}

type apiGeneratedCode struct {
	Code          string `json:"code"`
	Language      string `json:"language"`
	ComponentName string `json:"component_name"`
}

type apiGeneration struct {
	Code        apiGeneratedCode `json:"code"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Model       string           `json:"model"`
}

type apiAgentResult struct {
	Type        string         `json:"type"`
	Message     string         `json:"message"`
	Flow        *apiFlow       `json:"flow,omitempty"`
	Generation  *apiGeneration `json:"generation,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
	ErrorDetail string         `json:"error_detail,omitempty"`
}

type apiAgentResponse struct {
	SessionID string          `json:"session_id"`
	Response  *apiAgentResult `json:"response"`
}

type apiFlowResponse struct {
	SessionID string   `json:"session_id"`
	Flow      *apiFlow `json:"flow"`
}

type apiErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// sent when the agent answers a process, complete, or skip request
type AgentResponseMsg struct {
	userQuery string
	response  *apiAgentResponse
}

// sent when the flow advances after a single answer
type FlowProgressMsg struct {
	response *apiFlowResponse
}

// sent when a request to the agent fails
type AgentErrorMsg struct {
	userQuery string
	err       error
}
