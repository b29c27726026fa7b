package analyzer

// a gapRule decides whether the request already supplies enough signal
// for its category; if not, a ContextGap is emitted
type gapRule struct {
	category    GapCategory
	importance  GapImportance
	description string
	applies     func(analysis IntentAnalysis) bool
	satisfied   func(analysis IntentAnalysis) bool
}

// component kinds whose output depends on the shape of the data shown
var dataDrivenKinds = map[string]bool{
	"dashboard": true,
	"table":     true,
	"chart":     true,
	"list":      true,
	"todo list": true,
}

// the fixed gap catalog; evaluation order is the discovery order callers
// see, so the question flow is reproducible
var gapCatalog = []gapRule{
	{
		category:    GapCategoryPlatform,
		importance:  GapRequired,
		description: "The target platform (mobile, web, desktop) was not specified.",
		applies: func(a IntentAnalysis) bool {
			return a.Intent == IntentCreateComponent || a.Intent == IntentUnknown
		},
		satisfied: func(a IntentAnalysis) bool {
			return len(a.Entities.PlatformHints) > 0
		},
	},
	{
		category:    GapCategoryDataShape,
		importance:  GapRequired,
		description: "The component displays data, but the shape of that data is unknown.",
		applies: func(a IntentAnalysis) bool {
			return a.Intent == IntentCreateComponent && dataDrivenKinds[a.Entities.ComponentKind]
		},
		satisfied: func(a IntentAnalysis) bool {
			return len(a.Entities.DataHints) > 0
		},
	},
	{
		category:    GapCategoryVisualStyle,
		importance:  GapOptional,
		description: "No visual style or color scheme was mentioned.",
		applies: func(a IntentAnalysis) bool {
			return a.Intent == IntentCreateComponent || a.Intent == IntentModifyExisting
		},
		satisfied: func(a IntentAnalysis) bool {
			return len(a.Entities.StyleHints) > 0
		},
	},
	{
		category:    GapCategoryInteraction,
		importance:  GapOptional,
		description: "No interaction behavior (clicks, hover states) was described.",
		applies: func(a IntentAnalysis) bool {
			return a.Intent == IntentCreateComponent
		},
		satisfied: func(a IntentAnalysis) bool {
			return len(a.Entities.InteractionHints) > 0
		},
	},
}

// enumerates the gap catalog against an analysis and returns every gap
// whose rule finds insufficient signal. Order is stable: catalog order.
func (a *Analyzer) FindGaps(analysis IntentAnalysis, req UserRequest) []ContextGap {
	// questions about the tool itself need no clarification flow
	if analysis.Intent == IntentQuestion {
		return nil
	}

	gaps := make([]ContextGap, 0, len(gapCatalog))

	for _, rule := range gapCatalog {
		if !rule.applies(analysis) {
			continue
		}

		if rule.satisfied(analysis) {
			continue
		}

		gaps = append(gaps, ContextGap{
			ID:          "gap-" + string(rule.category),
			Category:    rule.category,
			Importance:  rule.importance,
			Description: rule.description,
		})
	}

	return gaps
}
