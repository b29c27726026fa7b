package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	agentcore "codeberg.org/vibecode/server/internal/agent"
	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/provider"
	"codeberg.org/vibecode/server/internal/sessions"
)

type stubAnalyzer struct {
	analysis analyzer.IntentAnalysis
	gaps     []analyzer.ContextGap
}

func (s *stubAnalyzer) Analyze(req analyzer.UserRequest) analyzer.IntentAnalysis {
	return s.analysis
}

func (s *stubAnalyzer) FindGaps(analysis analyzer.IntentAnalysis, req analyzer.UserRequest) []analyzer.ContextGap {
	return s.gaps
}

type stubGenerator struct {
	calls int
}

func (s *stubGenerator) Generate(ctx context.Context, enriched provider.EnrichedContext) (*provider.Generation, error) {
	s.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &provider.Generation{
		Code: provider.GeneratedCode{
			Code:          "export function Dashboard() {}",
			Language:      "tsx",
			ComponentName: "Dashboard",
		},
		Model: "vibecode-mock-1",
	}, nil
}

func dashboardAnalyzer() *stubAnalyzer {
	return &stubAnalyzer{
		analysis: analyzer.IntentAnalysis{
			Intent:     analyzer.IntentCreateComponent,
			Confidence: 0.8,
			Entities:   analyzer.Entities{ComponentKind: "dashboard"},
		},
		gaps: []analyzer.ContextGap{
			{ID: "gap-platform", Category: analyzer.GapCategoryPlatform, Importance: analyzer.GapRequired},
			{ID: "gap-visual-style", Category: analyzer.GapCategoryVisualStyle, Importance: analyzer.GapOptional},
		},
	}
}

func newTestRouter(an *stubAnalyzer, gen *stubGenerator, mgr *sessions.Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)

	agentClient := agentcore.New(an, gen, agentcore.DefaultConfig())

	router := gin.New()
	router.POST("/agent/process", ProcessHandler(agentClient, mgr))
	router.POST("/agent/answer", AnswerHandler(mgr))
	router.POST("/agent/complete", CompleteHandler(agentClient, mgr))
	router.POST("/agent/skip", SkipHandler(agentClient, mgr))

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}

	return w
}

func TestProcessAnswerCompleteLifecycle(t *testing.T) {
	mgr := sessions.NewManager(time.Minute)
	router := newTestRouter(dashboardAnalyzer(), &stubGenerator{}, mgr)

	var processed AgentResponse
	w := postJSON(t, router, "/agent/process", ProcessRequest{Message: "build a dashboard"}, &processed)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, agentcore.TypeQuestions, processed.Response.Type)
	require.NotEmpty(t, processed.SessionID)
	require.NotNil(t, processed.Response.Flow)

	var answered FlowResponse
	w = postJSON(t, router, "/agent/answer", AnswerRequest{
		SessionID:  processed.SessionID,
		QuestionID: "gap-platform",
		Answer:     "Web",
	}, &answered)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, answered.Flow)
	assert.Equal(t, "Web", answered.Flow.Answers["gap-platform"])
	assert.False(t, answered.Flow.Completed)

	var completed AgentResponse
	w = postJSON(t, router, "/agent/complete", CompleteRequest{
		SessionID: processed.SessionID,
		Answers:   map[string]string{"gap-visual-style": "Dark"},
	}, &completed)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, agentcore.TypeGeneration, completed.Response.Type)
	assert.NotEmpty(t, completed.Response.Generation.Code.Code)

	// the flow is consumed by a successful continuation
	_, _, _, err := mgr.FlowSnapshot(processed.SessionID)
	assert.ErrorIs(t, err, sessions.ErrNoActiveFlow)
}

func TestPrematureCompleteKeepsFlow(t *testing.T) {
	mgr := sessions.NewManager(time.Minute)
	gen := &stubGenerator{}
	router := newTestRouter(dashboardAnalyzer(), gen, mgr)

	var processed AgentResponse
	postJSON(t, router, "/agent/process", ProcessRequest{Message: "build a dashboard"}, &processed)
	require.Equal(t, agentcore.TypeQuestions, processed.Response.Type)

	// completing with a required question still unanswered is rejected
	var completed AgentResponse
	w := postJSON(t, router, "/agent/complete", CompleteRequest{SessionID: processed.SessionID}, &completed)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, agentcore.TypeError, completed.Response.Type)
	assert.Zero(t, gen.calls)

	// the flow survives the rejection so the caller can retry
	flow, _, _, err := mgr.FlowSnapshot(processed.SessionID)
	require.NoError(t, err)
	assert.False(t, flow.Completed)

	postJSON(t, router, "/agent/answer", AnswerRequest{
		SessionID:  processed.SessionID,
		QuestionID: "gap-platform",
		Answer:     "Web",
	}, nil)

	var retried AgentResponse
	postJSON(t, router, "/agent/complete", CompleteRequest{
		SessionID: processed.SessionID,
		Answers:   map[string]string{"gap-visual-style": "Dark"},
	}, &retried)

	require.Equal(t, agentcore.TypeGeneration, retried.Response.Type)
}

func TestSkipGeneratesWithDefaults(t *testing.T) {
	mgr := sessions.NewManager(time.Minute)
	router := newTestRouter(dashboardAnalyzer(), &stubGenerator{}, mgr)

	var processed AgentResponse
	postJSON(t, router, "/agent/process", ProcessRequest{Message: "build a dashboard"}, &processed)

	postJSON(t, router, "/agent/answer", AnswerRequest{
		SessionID:  processed.SessionID,
		QuestionID: "gap-platform",
		Answer:     "Web",
	}, nil)

	var skipped AgentResponse
	w := postJSON(t, router, "/agent/skip", SkipRequest{SessionID: processed.SessionID}, &skipped)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, agentcore.TypeGeneration, skipped.Response.Type)

	_, _, _, err := mgr.FlowSnapshot(processed.SessionID)
	assert.ErrorIs(t, err, sessions.ErrNoActiveFlow)
}

func TestAnswerUnknownSessionNotFound(t *testing.T) {
	mgr := sessions.NewManager(time.Minute)
	router := newTestRouter(dashboardAnalyzer(), &stubGenerator{}, mgr)

	w := postJSON(t, router, "/agent/answer", AnswerRequest{
		SessionID:  "nope",
		QuestionID: "gap-platform",
		Answer:     "Web",
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelledRequestCommitsNothing(t *testing.T) {
	mgr := sessions.NewManager(time.Minute)
	router := newTestRouter(dashboardAnalyzer(), &stubGenerator{}, mgr)

	var processed AgentResponse
	postJSON(t, router, "/agent/process", ProcessRequest{Message: "build a dashboard"}, &processed)

	historyBefore, err := mgr.History(processed.SessionID)
	require.NoError(t, err)

	postJSON(t, router, "/agent/answer", AnswerRequest{
		SessionID:  processed.SessionID,
		QuestionID: "gap-platform",
		Answer:     "Web",
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload, err := json.Marshal(CompleteRequest{
		SessionID: processed.SessionID,
		Answers:   map[string]string{"gap-visual-style": "Dark"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/agent/complete", bytes.NewReader(payload)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// the turn is abandoned: the flow stays active and no conversation
	// turn is recorded
	flow, _, _, err := mgr.FlowSnapshot(processed.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Web", flow.Answers["gap-platform"])

	historyAfter, err := mgr.History(processed.SessionID)
	require.NoError(t, err)
	assert.Equal(t, len(historyBefore), len(historyAfter))
}
