package sessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vibecode/server/internal/analyzer"
	"codeberg.org/vibecode/server/internal/questions"
)

func TestCreateAndGetSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.ID, got.ID)
	assert.Empty(t, got.ConversationHistory)
	assert.Nil(t, got.ActiveFlow)

	_, ok = m.GetSession("missing")
	assert.False(t, ok)
}

func TestSessionExpiry(t *testing.T) {
	m := NewManager(-time.Second)

	session, err := m.CreateSession()
	require.NoError(t, err)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)

	err = m.AppendTurn(session.ID, "user", "hello")
	assert.ErrorIs(t, err, ErrSessionExpired)

	// the expired session was evicted, so the next touch misses entirely
	err = m.AppendTurn(session.ID, "user", "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestAppendTurnAndHistory(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	require.NoError(t, m.AppendTurn(session.ID, "user", "build a card"))
	require.NoError(t, m.AppendTurn(session.ID, "assistant", "here you go"))

	history, err := m.History(session.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, analyzer.Message{Role: "user", Content: "build a card"}, history[0])
	assert.Equal(t, "assistant", history[1].Role)
}

func TestFlowLifecycle(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	// updating before a flow exists fails
	err = m.UpdateFlow(session.ID, func(flow *questions.Flow) error { return nil })
	assert.ErrorIs(t, err, ErrNoActiveFlow)

	flow, err := questions.BuildFlow([]analyzer.ContextGap{
		{ID: "gap-platform", Category: analyzer.GapCategoryPlatform, Importance: analyzer.GapRequired},
	})
	require.NoError(t, err)

	req := analyzer.UserRequest{Message: "build a dashboard"}
	analysis := &analyzer.IntentAnalysis{Intent: analyzer.IntentCreateComponent}

	require.NoError(t, m.SetFlow(session.ID, flow, req, analysis))

	err = m.UpdateFlow(session.ID, func(flow *questions.Flow) error {
		return flow.Answer("gap-platform", "Web")
	})
	require.NoError(t, err)

	got, ok := m.GetSession(session.ID)
	require.True(t, ok)
	require.NotNil(t, got.ActiveFlow)
	assert.True(t, got.ActiveFlow.Completed)
	assert.Equal(t, req, got.FlowRequest)
	assert.Equal(t, analysis, got.FlowAnalysis)

	require.NoError(t, m.ClearFlow(session.ID))

	got, ok = m.GetSession(session.ID)
	require.True(t, ok)
	assert.Nil(t, got.ActiveFlow)
	assert.Nil(t, got.FlowAnalysis)
}

func TestFlowSnapshotIsDetachedCopy(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	_, _, _, err = m.FlowSnapshot(session.ID)
	assert.ErrorIs(t, err, ErrNoActiveFlow)

	flow, err := questions.BuildFlow([]analyzer.ContextGap{
		{ID: "gap-platform", Category: analyzer.GapCategoryPlatform, Importance: analyzer.GapRequired},
		{ID: "gap-visual-style", Category: analyzer.GapCategoryVisualStyle, Importance: analyzer.GapOptional},
	})
	require.NoError(t, err)

	req := analyzer.UserRequest{
		Message:             "build a dashboard",
		ConversationHistory: []analyzer.Message{{Role: "user", Content: "build a dashboard"}},
	}
	analysis := &analyzer.IntentAnalysis{Intent: analyzer.IntentCreateComponent, Confidence: 0.8}

	require.NoError(t, m.SetFlow(session.ID, flow, req, analysis))

	snap, snapReq, snapAnalysis, err := m.FlowSnapshot(session.ID)
	require.NoError(t, err)
	require.NotSame(t, flow, snap)
	assert.Equal(t, req, snapReq)
	require.NotNil(t, snapAnalysis)
	assert.Equal(t, *analysis, *snapAnalysis)

	// mutating the live flow does not leak into the snapshot
	err = m.UpdateFlow(session.ID, func(live *questions.Flow) error {
		return live.Answer("gap-platform", "Web")
	})
	require.NoError(t, err)

	_, ok := snap.Answers["gap-platform"]
	assert.False(t, ok)

	// and mutating the snapshot does not reach the live flow
	snap.Answers["gap-visual-style"] = "Dark"

	live, _, _, err := m.FlowSnapshot(session.ID)
	require.NoError(t, err)
	_, ok = live.Answers["gap-visual-style"]
	assert.False(t, ok)
}

func TestUpdateFlowPropagatesAnswerErrors(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)

	flow, err := questions.BuildFlow([]analyzer.ContextGap{
		{ID: "gap-platform", Category: analyzer.GapCategoryPlatform, Importance: analyzer.GapRequired},
	})
	require.NoError(t, err)

	require.NoError(t, m.SetFlow(session.ID, flow, analyzer.UserRequest{}, nil))

	err = m.UpdateFlow(session.ID, func(flow *questions.Flow) error {
		return flow.Answer("gap-platform", "Gameboy")
	})
	assert.ErrorIs(t, err, questions.ErrInvalidAnswer)
}

func TestDeleteSession(t *testing.T) {
	m := NewManager(time.Hour)

	session, err := m.CreateSession()
	require.NoError(t, err)
	assert.Equal(t, 1, m.GetSessionCount())

	m.DeleteSession(session.ID)

	_, ok := m.GetSession(session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, m.GetSessionCount())
}

func TestGenerateSessionIDUnique(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)

	b, err := GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
