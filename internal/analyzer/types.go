package analyzer

// represents a single conversation turn
type Message struct {
	Role    string `json:"role"`    // "user" or "assistant"
	Content string `json:"content"` // message content
}

// immutable input to one agent turn
type UserRequest struct {
	Message             string    `json:"message"`
	ConversationHistory []Message `json:"conversation_history,omitempty"`
}

// coarse classification of what the user is asking for
type Intent string

const (
	IntentCreateComponent Intent = "create_component"
	IntentModifyExisting  Intent = "modify_existing"
	IntentQuestion        Intent = "question"
	IntentUnknown         Intent = "unknown"
)

// entities extracted from the request text
type Entities struct {
	ComponentKind    string   `json:"component_kind,omitempty"`
	StyleHints       []string `json:"style_hints,omitempty"`
	PlatformHints    []string `json:"platform_hints,omitempty"`
	DataHints        []string `json:"data_hints,omitempty"`
	InteractionHints []string `json:"interaction_hints,omitempty"`
}

// result of classifying a request; produced fresh per request, never persisted
type IntentAnalysis struct {
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}

// identifies the type of missing information behind a gap
type GapCategory string

const (
	GapCategoryPlatform    GapCategory = "platform"
	GapCategoryDataShape   GapCategory = "data-shape"
	GapCategoryVisualStyle GapCategory = "visual-style"
	GapCategoryInteraction GapCategory = "interaction-behavior"
)

// how strongly a gap blocks generation
type GapImportance string

const (
	GapRequired GapImportance = "required"
	GapOptional GapImportance = "optional"
)

// represents one piece of missing information needed before generation
type ContextGap struct {
	ID          string        `json:"id"`
	Category    GapCategory   `json:"category"`
	Importance  GapImportance `json:"importance"`
	Description string        `json:"description"`
}
