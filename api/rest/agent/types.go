package agent

import (
	"codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/questions"
)

// ProcessRequest starts one agent turn
type ProcessRequest struct {
	Message   string `json:"message" binding:"required,max=4000"`
	SessionID string `json:"session_id,omitempty"`
}

// AnswerRequest records a single answer for the session's active flow
type AnswerRequest struct {
	SessionID  string `json:"session_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// CompleteRequest finishes the active flow, optionally submitting
// remaining answers in bulk
type CompleteRequest struct {
	SessionID string            `json:"session_id" binding:"required"`
	Answers   map[string]string `json:"answers,omitempty"`
}

// SkipRequest abandons the remaining skipable questions
type SkipRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// AgentResponse wraps an agent result with the session it belongs to
type AgentResponse struct {
	SessionID string          `json:"session_id"`
	Response  *agent.Response `json:"response"`
}

// FlowResponse reports question flow progress after an answer
type FlowResponse struct {
	SessionID string          `json:"session_id"`
	Flow      *questions.Flow `json:"flow"`
}
