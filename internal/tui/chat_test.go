package tui

import "testing"

func TestResolveAnswerMapsNumericChoice(t *testing.T) {
	question := &apiQuestion{
		ID:      "gap-platform",
		Type:    "single_choice",
		Options: []string{"Mobile (iOS)", "Mobile (Android)", "Web", "Desktop"},
	}

	if got := resolveAnswer(question, "3"); got != "Web" {
		t.Errorf("resolveAnswer(3) = %q, want Web", got)
	}

	// out of range numbers pass through unchanged
	if got := resolveAnswer(question, "9"); got != "9" {
		t.Errorf("resolveAnswer(9) = %q, want 9", got)
	}

	// literal option text passes through
	if got := resolveAnswer(question, "Desktop"); got != "Desktop" {
		t.Errorf("resolveAnswer(Desktop) = %q, want Desktop", got)
	}
}

func TestResolveAnswerLeavesTextQuestionsAlone(t *testing.T) {
	question := &apiQuestion{ID: "gap-data-shape", Type: "text"}

	if got := resolveAnswer(question, "42"); got != "42" {
		t.Errorf("resolveAnswer(42) = %q, want 42", got)
	}
}

func TestFlowCurrent(t *testing.T) {
	var flow *apiFlow
	if flow.current() != nil {
		t.Error("nil flow should have no current question")
	}

	flow = &apiFlow{
		Questions:    []apiQuestion{{ID: "gap-platform"}, {ID: "gap-data-shape"}},
		CurrentIndex: 1,
	}

	if got := flow.current(); got == nil || got.ID != "gap-data-shape" {
		t.Errorf("current() = %v, want gap-data-shape", got)
	}

	flow.CurrentIndex = 2
	if flow.current() != nil {
		t.Error("completed flow should have no current question")
	}
}
