package agent

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/logger"
	"codeberg.org/vibecode/server/internal/provider"
	"codeberg.org/vibecode/server/internal/questions"
)

const errorMessage = "Sorry, I couldn't process that. Try rephrasing your request."

// analyses below this confidence are rejected before any flow or
// generation is attempted
const minConfidence = 0.3

func New(an Analyzer, gen Generator, cfg Config) *Agent {
	if cfg.QuestionThreshold <= 0 {
		cfg.QuestionThreshold = DefaultConfig().QuestionThreshold
	}

	return &Agent{
		analyzer:  an,
		generator: gen,
		cfg:       cfg,
	}
}

// Process runs one agent turn: analyze, detect gaps, then either start a
// question flow or generate directly. Never fails outward; every internal
// failure is normalized to an error response.
func (a *Agent) Process(ctx context.Context, req analyzer.UserRequest) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("agent panic recovered", "panic", fmt.Sprintf("%v", r))
			resp = errorResponse(fmt.Errorf("internal failure: %v", r))
		}
	}()

	analysis := a.analyzer.Analyze(req)

	// empty or unclassifiable requests never reach the provider
	if strings.TrimSpace(req.Message) == "" {
		return errorResponse(fmt.Errorf("request message is empty"))
	}

	if analysis.Confidence < minConfidence {
		return errorResponse(fmt.Errorf("could not classify request (confidence %.2f)", analysis.Confidence))
	}

	gaps := a.analyzer.FindGaps(analysis, req)

	required := 0

	for _, gap := range gaps {
		if gap.Importance == analyzer.GapRequired {
			required++
		}
	}

	if required >= a.cfg.QuestionThreshold {
		flow, err := questions.BuildFlow(gaps)
		if err != nil {
			return errorResponse(err)
		}

		logger.Debug("starting question flow",
			"flow_id", flow.ID,
			"questions", len(flow.Questions),
			"intent", string(analysis.Intent),
		)

		return &Response{
			Type:     TypeQuestions,
			Message:  "I need a few details before I can build that.",
			Flow:     flow,
			Analysis: &analysis,
		}
	}

	// confident enough to generate without asking; optional gaps fall
	// back to their defaults inside the provider
	return a.generate(ctx, provider.EnrichedContext{
		Request:  req,
		Analysis: analysis,
	})
}

// ContinueWithAnswers resumes a turn after the caller collected answers
// for a completed flow. Answers are re-validated against the flow before
// generation; skipped questions contribute their defaults. The result is
// always generation or error, never questions.
func (a *Agent) ContinueWithAnswers(ctx context.Context, flow *questions.Flow, req analyzer.UserRequest, analysis analyzer.IntentAnalysis) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("agent panic recovered", "panic", fmt.Sprintf("%v", r))
			resp = errorResponse(fmt.Errorf("internal failure: %v", r))
		}
	}()

	if flow == nil {
		return errorResponse(fmt.Errorf("no question flow to continue"))
	}

	if !flow.Completed {
		return errorResponse(fmt.Errorf("question flow %s is not completed", flow.ID))
	}

	if err := flow.ValidateAnswers(flow.Answers); err != nil {
		return errorResponse(fmt.Errorf("invalid answers: %w", err))
	}

	return a.generate(ctx, provider.EnrichedContext{
		Request:  req,
		Analysis: analysis,
		Answers:  flow.EffectiveAnswers(),
	})
}

func (a *Agent) generate(ctx context.Context, enriched provider.EnrichedContext) *Response {
	generation, err := a.generator.Generate(ctx, enriched)
	if err != nil {
		return errorResponse(fmt.Errorf("generation failed: %w", err))
	}

	return &Response{
		Type:        TypeGeneration,
		Message:     "Here's your component.",
		Analysis:    &enriched.Analysis,
		Generation:  generation,
		Suggestions: generation.Suggestions,
	}
}

func errorResponse(err error) *Response {
	detail := ""
	if err != nil {
		detail = err.Error()
	}

	return &Response{
		Type:        TypeError,
		Message:     errorMessage,
		ErrorDetail: detail,
	}
}
