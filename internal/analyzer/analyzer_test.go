package analyzer

import (
	"reflect"
	"testing"
)

func TestAnalyzeEmptyMessage(t *testing.T) {
	a := New()

	analysis := a.Analyze(UserRequest{Message: ""})

	if analysis.Intent != IntentUnknown {
		t.Errorf("expected unknown intent, got %s", analysis.Intent)
	}

	if analysis.Confidence != 0 {
		t.Errorf("expected zero confidence, got %f", analysis.Confidence)
	}
}

func TestAnalyzeWhitespaceOnlyMessage(t *testing.T) {
	a := New()

	analysis := a.Analyze(UserRequest{Message: "   \n\t  "})

	if analysis.Intent != IntentUnknown {
		t.Errorf("expected unknown intent, got %s", analysis.Intent)
	}
}

func TestAnalyzeCreateIntent(t *testing.T) {
	a := New()

	analysis := a.Analyze(UserRequest{Message: "Build a login form"})

	if analysis.Intent != IntentCreateComponent {
		t.Errorf("expected create_component, got %s", analysis.Intent)
	}

	if analysis.Entities.ComponentKind != "login form" {
		t.Errorf("expected login form kind, got %q", analysis.Entities.ComponentKind)
	}

	if analysis.Confidence < 0.5 {
		t.Errorf("expected confidence >= 0.5, got %f", analysis.Confidence)
	}
}

func TestAnalyzeQuestionIntent(t *testing.T) {
	a := New()

	analysis := a.Analyze(UserRequest{Message: "How does the preview work?"})

	if analysis.Intent != IntentQuestion {
		t.Errorf("expected question intent, got %s", analysis.Intent)
	}
}

func TestAnalyzeModifyRequiresAssistantTurn(t *testing.T) {
	a := New()

	// without an assistant turn, "make it darker" is a create request
	analysis := a.Analyze(UserRequest{Message: "make it darker"})

	if analysis.Intent != IntentCreateComponent {
		t.Errorf("expected create_component without history, got %s", analysis.Intent)
	}

	// with an assistant turn, the same message is a modification
	analysis = a.Analyze(UserRequest{
		Message: "make it darker",
		ConversationHistory: []Message{
			{Role: "user", Content: "Build a card"},
			{Role: "assistant", Content: "export function Card() {}"},
		},
	})

	if analysis.Intent != IntentModifyExisting {
		t.Errorf("expected modify_existing with history, got %s", analysis.Intent)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	a := New()

	req := UserRequest{
		Message: "Create a modern dashboard for mobile",
		ConversationHistory: []Message{
			{Role: "user", Content: "hello"},
		},
	}

	first := a.Analyze(req)
	second := a.Analyze(req)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical analyses, got %+v vs %+v", first, second)
	}
}

func TestAnalyzeWholeWordMatching(t *testing.T) {
	a := New()

	// "curious" must not register as an iOS platform hint
	analysis := a.Analyze(UserRequest{Message: "build a curious little card"})

	if len(analysis.Entities.PlatformHints) != 0 {
		t.Errorf("expected no platform hints, got %v", analysis.Entities.PlatformHints)
	}
}

func TestAnalyzePlatformFromHistory(t *testing.T) {
	a := New()

	analysis := a.Analyze(UserRequest{
		Message: "Build a settings page",
		ConversationHistory: []Message{
			{Role: "user", Content: "I'm making an app for Android"},
		},
	})

	if len(analysis.Entities.PlatformHints) == 0 {
		t.Error("expected platform hint carried over from history")
	}
}

func TestFindGapsDashboard(t *testing.T) {
	a := New()

	req := UserRequest{Message: "Build a dashboard"}
	analysis := a.Analyze(req)
	gaps := a.FindGaps(analysis, req)

	// platform and data-shape are required, style and interaction optional
	var required, optional int

	for _, gap := range gaps {
		switch gap.Importance {
		case GapRequired:
			required++
		case GapOptional:
			optional++
		}
	}

	if required != 2 {
		t.Errorf("expected 2 required gaps, got %d (%+v)", required, gaps)
	}

	if optional != 2 {
		t.Errorf("expected 2 optional gaps, got %d (%+v)", optional, gaps)
	}

	if gaps[0].Category != GapCategoryPlatform {
		t.Errorf("expected platform gap first, got %s", gaps[0].Category)
	}
}

func TestFindGapsFullySpecifiedButton(t *testing.T) {
	a := New()

	req := UserRequest{Message: "Build a red button for iOS that animates on tap"}
	analysis := a.Analyze(req)
	gaps := a.FindGaps(analysis, req)

	for _, gap := range gaps {
		if gap.Importance == GapRequired {
			t.Errorf("expected no required gaps, got %+v", gap)
		}
	}
}

func TestFindGapsQuestionIntent(t *testing.T) {
	a := New()

	req := UserRequest{Message: "What can you build?"}
	analysis := a.Analyze(req)
	gaps := a.FindGaps(analysis, req)

	if len(gaps) != 0 {
		t.Errorf("expected no gaps for a question, got %+v", gaps)
	}
}

func TestFindGapsStableIDs(t *testing.T) {
	a := New()

	req := UserRequest{Message: "Build a dashboard"}
	analysis := a.Analyze(req)

	first := a.FindGaps(analysis, req)
	second := a.FindGaps(analysis, req)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical gap lists, got %+v vs %+v", first, second)
	}

	for _, gap := range first {
		if gap.ID != "gap-"+string(gap.Category) {
			t.Errorf("gap ID %q does not trace to category %q", gap.ID, gap.Category)
		}
	}
}
