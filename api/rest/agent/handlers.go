package agent

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/errors"
	"codeberg.org/vibecode/server/internal/logger"
	"codeberg.org/vibecode/server/internal/questions"
	"codeberg.org/vibecode/server/internal/sessions"
)

// ProcessHandler godoc
// @Summary Process a user message
// @Description Run one agent turn: returns clarifying questions, generated code, or an error variant
// @Tags agent
// @Accept json
// @Produce json
// @Param request body ProcessRequest true "User message"
// @Success 200 {object} AgentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Router /api/v1/agent/process [post]
func ProcessHandler(agentClient *agent.Agent, sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProcessRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		sessionID, history := resolveSession(sessionMgr, req.SessionID)

		resp := agentClient.Process(c.Request.Context(), analyzer.UserRequest{
			Message:             req.Message,
			ConversationHistory: history,
		})

		// a cancelled request commits nothing to the session
		if c.Request.Context().Err() != nil {
			return
		}

		recordTurn(sessionMgr, sessionID, req.Message, resp)

		if resp.Type == agent.TypeQuestions {
			err := sessionMgr.SetFlow(sessionID, resp.Flow, analyzer.UserRequest{
				Message:             req.Message,
				ConversationHistory: history,
			}, resp.Analysis)
			if err != nil {
				logger.ErrorErr(err, "failed to store question flow", "session_id", sessionID)
			}
		}

		c.JSON(http.StatusOK, AgentResponse{
			SessionID: sessionID,
			Response:  resp,
		})
	}
}

// AnswerHandler godoc
// @Summary Answer one question
// @Description Record a single answer for the session's active question flow
// @Tags agent
// @Accept json
// @Produce json
// @Param request body AnswerRequest true "Answer"
// @Success 200 {object} FlowResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/agent/answer [post]
func AnswerHandler(sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnswerRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		err := sessionMgr.UpdateFlow(req.SessionID, func(flow *questions.Flow) error {
			return flow.Answer(req.QuestionID, req.Answer)
		})
		if err != nil {
			respondFlowError(c, err)
			return
		}

		flow, _, _, err := sessionMgr.FlowSnapshot(req.SessionID)
		if err != nil {
			respondFlowError(c, err)
			return
		}

		c.JSON(http.StatusOK, FlowResponse{
			SessionID: req.SessionID,
			Flow:      flow,
		})
	}
}

// CompleteHandler godoc
// @Summary Complete the question flow
// @Description Submit any remaining answers and resume generation with the enriched context
// @Tags agent
// @Accept json
// @Produce json
// @Param request body CompleteRequest true "Completion"
// @Success 200 {object} AgentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/agent/complete [post]
func CompleteHandler(agentClient *agent.Agent, sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CompleteRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if len(req.Answers) > 0 {
			err := sessionMgr.UpdateFlow(req.SessionID, func(flow *questions.Flow) error {
				return flow.AnswerAll(req.Answers)
			})
			if err != nil {
				respondFlowError(c, err)
				return
			}
		}

		continueFlow(c, agentClient, sessionMgr, req.SessionID, nil)
	}
}

// SkipHandler godoc
// @Summary Skip remaining questions
// @Description Abandon the remaining skipable questions and generate with defaults
// @Tags agent
// @Accept json
// @Produce json
// @Param request body SkipRequest true "Skip"
// @Success 200 {object} AgentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/v1/agent/skip [post]
func SkipHandler(agentClient *agent.Agent, sessionMgr *sessions.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SkipRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		continueFlow(c, agentClient, sessionMgr, req.SessionID, func(flow *questions.Flow) error {
			return flow.SkipAll()
		})
	}
}

// continueFlow optionally mutates the active flow, then hands a snapshot
// of it to the agent for generation. The flow is discarded only on a
// non-error outcome; a rejected continuation leaves the flow and its
// collected answers in place so the caller can retry.
func continueFlow(c *gin.Context, agentClient *agent.Agent, sessionMgr *sessions.Manager, sessionID string, mutate func(flow *questions.Flow) error) {
	if mutate != nil {
		if err := sessionMgr.UpdateFlow(sessionID, mutate); err != nil {
			respondFlowError(c, err)
			return
		}
	}

	flow, flowReq, flowAnalysis, err := sessionMgr.FlowSnapshot(sessionID)
	if err != nil {
		respondFlowError(c, err)
		return
	}

	var analysis analyzer.IntentAnalysis
	if flowAnalysis != nil {
		analysis = *flowAnalysis
	}

	resp := agentClient.ContinueWithAnswers(c.Request.Context(), flow, flowReq, analysis)

	// a cancelled request commits nothing to the session
	if c.Request.Context().Err() != nil {
		return
	}

	if resp.Type != agent.TypeError {
		if err := sessionMgr.ClearFlow(sessionID); err != nil {
			logger.ErrorErr(err, "failed to clear question flow", "session_id", sessionID)
		}
	}

	recordTurn(sessionMgr, sessionID, "", resp)

	c.JSON(http.StatusOK, AgentResponse{
		SessionID: sessionID,
		Response:  resp,
	})
}

// resolveSession loads the caller's session history, creating a fresh
// session when the ID is absent or expired
func resolveSession(sessionMgr *sessions.Manager, sessionID string) (string, []analyzer.Message) {
	if sessionID != "" {
		if session, ok := sessionMgr.GetSession(sessionID); ok {
			history, err := sessionMgr.History(session.ID)
			if err == nil {
				return session.ID, history
			}
		}
	}

	newSession, err := sessionMgr.CreateSession()
	if err != nil {
		logger.ErrorErr(err, "failed to create session")
		return "", nil
	}

	return newSession.ID, nil
}

// recordTurn appends the user message and any generated code to the
// session's conversation history
func recordTurn(sessionMgr *sessions.Manager, sessionID, userMessage string, resp *agent.Response) {
	if sessionID == "" {
		return
	}

	if userMessage != "" {
		if err := sessionMgr.AppendTurn(sessionID, "user", userMessage); err != nil {
			logger.ErrorErr(err, "failed to record user turn", "session_id", sessionID)
			return
		}
	}

	if resp.Type == agent.TypeGeneration && resp.Generation != nil {
		if err := sessionMgr.AppendTurn(sessionID, "assistant", resp.Generation.Code.Code); err != nil {
			logger.ErrorErr(err, "failed to record assistant turn", "session_id", sessionID)
		}
	}
}

func respondFlowError(c *gin.Context, err error) {
	switch {
	case stderrors.Is(err, sessions.ErrSessionNotFound), stderrors.Is(err, sessions.ErrSessionExpired):
		errors.SessionNotFound(c)
	case stderrors.Is(err, sessions.ErrNoActiveFlow):
		errors.InvalidOperation(c, "no active question flow")
	case stderrors.Is(err, questions.ErrQuestionNotFound):
		errors.NotFound(c, "question")
	case stderrors.Is(err, questions.ErrFlowCompleted):
		errors.InvalidOperation(c, "question flow already completed")
	case stderrors.Is(err, questions.ErrRequiredUnanswered):
		errors.InvalidOperation(c, "required questions are still unanswered")
	case stderrors.Is(err, questions.ErrInvalidAnswer):
		errors.BadRequest(c, "invalid answer", err)
	default:
		errors.InternalError(c, "failed to update question flow", err)
	}
}
