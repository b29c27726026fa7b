package analyzer

import (
	"strings"
)

// classifies user requests and detects context gaps. Purely heuristic:
// no external calls, deterministic for identical input, so the whole
// question flow stays testable without a model dependency.
type Analyzer struct{}

func New() *Analyzer {
	return &Analyzer{}
}

// keyword tables for entity extraction. Longer phrases first so
// "sign up form" wins over "form".
var componentKinds = []struct {
	keyword string
	kind    string
}{
	{"login form", "login form"},
	{"login page", "login form"},
	{"login screen", "login form"},
	{"sign in", "login form"},
	{"sign up", "signup form"},
	{"signup", "signup form"},
	{"dashboard", "dashboard"},
	{"navigation bar", "navigation bar"},
	{"navbar", "navigation bar"},
	{"profile page", "profile page"},
	{"profile screen", "profile page"},
	{"settings page", "settings page"},
	{"settings screen", "settings page"},
	{"todo list", "todo list"},
	{"todo app", "todo list"},
	{"chart", "chart"},
	{"graph", "chart"},
	{"table", "table"},
	{"card", "card"},
	{"modal", "modal"},
	{"button", "button"},
	{"form", "form"},
	{"list", "list"},
}

var styleKeywords = []string{
	"dark", "light", "minimal", "minimalist", "modern", "playful",
	"colorful", "retro", "rounded", "gradient", "red", "blue", "green",
	"purple", "monochrome", "clean",
}

var platformKeywords = []string{
	"mobile", "ios", "iphone", "android", "web", "browser", "desktop",
	"tablet", "responsive",
}

var dataKeywords = []string{
	"data", "fields", "items", "records", "api", "users", "products",
	"orders", "columns", "rows", "entries", "stats", "metrics",
}

var interactionKeywords = []string{
	"click", "tap", "hover", "submit", "drag", "swipe", "animation",
	"animate", "navigate", "scroll", "toggle",
}

var questionStarters = []string{
	"how ", "what ", "why ", "when ", "where ", "can you explain",
	"could you explain",
}

var modifyKeywords = []string{
	"make it", "change", "instead", "update the", "remove the",
	"bigger", "smaller", "darker", "lighter", "rename", "move the",
}

var createKeywords = []string{
	"build", "create", "make", "design", "generate", "i want", "i need",
	"add",
}

// classifies a request into an intent with confidence and extracted
// entities. Never fails: empty or unparseable input degrades to a
// low-confidence unknown intent.
func (a *Analyzer) Analyze(req UserRequest) IntentAnalysis {
	message := strings.ToLower(strings.TrimSpace(req.Message))

	if message == "" {
		return IntentAnalysis{
			Intent:     IntentUnknown,
			Confidence: 0,
		}
	}

	entities := extractEntities(message, req.ConversationHistory)

	intent, confidence := classify(message, req.ConversationHistory)

	// a recognized component kind is a strong signal for what to build
	if entities.ComponentKind != "" {
		confidence += 0.2
	}

	if len(entities.StyleHints) > 0 {
		confidence += 0.05
	}

	if len(entities.PlatformHints) > 0 {
		confidence += 0.05
	}

	if confidence > 0.95 {
		confidence = 0.95
	}

	return IntentAnalysis{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
	}
}

func classify(message string, history []Message) (Intent, float64) {
	for _, starter := range questionStarters {
		if strings.HasPrefix(message, starter) {
			return IntentQuestion, 0.7
		}
	}

	// modification only makes sense if the assistant produced something
	// earlier in the conversation
	if hasAssistantTurn(history) {
		for _, kw := range modifyKeywords {
			if strings.Contains(message, kw) {
				return IntentModifyExisting, 0.6
			}
		}
	}

	for _, kw := range createKeywords {
		if strings.Contains(message, kw) {
			return IntentCreateComponent, 0.6
		}
	}

	// trailing question mark without a recognized verb reads as a question
	if strings.HasSuffix(message, "?") {
		return IntentQuestion, 0.5
	}

	return IntentUnknown, 0.2
}

func hasAssistantTurn(history []Message) bool {
	for _, msg := range history {
		if msg.Role == "assistant" && msg.Content != "" {
			return true
		}
	}

	return false
}

// extractEntities scans the message and prior user turns. History counts:
// if the user said "for mobile" two turns ago, the platform is known.
func extractEntities(message string, history []Message) Entities {
	combined := message

	for _, msg := range history {
		if msg.Role == "user" {
			combined += " " + strings.ToLower(msg.Content)
		}
	}

	var entities Entities

	for _, ck := range componentKinds {
		if strings.Contains(message, ck.keyword) {
			entities.ComponentKind = ck.kind
			break
		}
	}

	entities.StyleHints = matchKeywords(combined, styleKeywords)
	entities.PlatformHints = matchKeywords(combined, platformKeywords)
	entities.DataHints = matchKeywords(combined, dataKeywords)
	entities.InteractionHints = matchKeywords(combined, interactionKeywords)

	return entities
}

func matchKeywords(text string, keywords []string) []string {
	var matched []string

	for _, kw := range keywords {
		if containsWord(text, kw) {
			matched = append(matched, kw)
		}
	}

	return matched
}

// containsWord matches whole words only, so "ios" does not match "curious"
func containsWord(text, word string) bool {
	idx := 0

	for {
		i := strings.Index(text[idx:], word)
		if i == -1 {
			return false
		}

		start := idx + i
		end := start + len(word)

		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])

		if beforeOK && afterOK {
			return true
		}

		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}
