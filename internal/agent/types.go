package agent

import (
	"context"

	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/provider"
	"codeberg.org/vibecode/server/internal/questions"
)

// classifies requests and detects missing context
type Analyzer interface {
	Analyze(req analyzer.UserRequest) analyzer.IntentAnalysis
	FindGaps(analysis analyzer.IntentAnalysis, req analyzer.UserRequest) []analyzer.ContextGap
}

// produces code from an enriched request
type Generator interface {
	Generate(ctx context.Context, enriched provider.EnrichedContext) (*provider.Generation, error)
}

// discriminates the agent response union
type ResponseType string

const (
	TypeQuestions  ResponseType = "questions"
	TypeGeneration ResponseType = "generation"
	TypeError      ResponseType = "error"
)

// the result of one agent step. Exactly one variant is populated:
// Flow for questions, Generation for generation, ErrorDetail for error.
type Response struct {
	Type        ResponseType             `json:"type"`
	Message     string                   `json:"message"`
	Flow        *questions.Flow          `json:"flow,omitempty"`
	Analysis    *analyzer.IntentAnalysis `json:"analysis,omitempty"`
	Generation  *provider.Generation     `json:"generation,omitempty"`
	Suggestions []string                 `json:"suggestions,omitempty"`
	ErrorDetail string                   `json:"error_detail,omitempty"`
}

// agent tuning
type Config struct {
	// minimum number of required gaps before a question flow is started
	QuestionThreshold int
}

func DefaultConfig() Config {
	return Config{
		QuestionThreshold: 1,
	}
}

// orchestrates analysis, question flows, and generation for one user
// turn. Stateless between calls: conversation history travels with the
// request and active flows live with the caller's session.
type Agent struct {
	analyzer  Analyzer
	generator Generator
	cfg       Config
}
