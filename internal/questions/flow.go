package questions

import (
	"errors"
	"fmt"
	"sort"

	"codeberg.org/vibecode/server/internal/analyzer"
	"github.com/google/uuid"
)

var (
	ErrFlowCompleted      = errors.New("flow already completed")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrRequiredUnanswered = errors.New("required questions unanswered")
)

// question templates keyed by gap category. Every category the gap
// catalog can produce has exactly one template.
var templates = map[analyzer.GapCategory]Question{
	analyzer.GapCategoryPlatform: {
		Text:    "Which platform is this for?",
		Type:    TypeSingleChoice,
		Options: []string{"Mobile (iOS)", "Mobile (Android)", "Web", "Desktop"},
	},
	analyzer.GapCategoryDataShape: {
		Text: "What data should it display? Describe the fields or items.",
		Type: TypeText,
	},
	analyzer.GapCategoryVisualStyle: {
		Text:     "Which visual style do you prefer?",
		Type:     TypeSingleChoice,
		Options:  []string{"Minimal", "Modern", "Playful", "Dark"},
		Default:  "Modern",
		Skipable: true,
	},
	analyzer.GapCategoryInteraction: {
		Text:     "Should elements respond to clicks and taps?",
		Type:     TypeBoolean,
		Default:  "true",
		Skipable: true,
	},
}

// BuildFlow turns detected gaps into a question flow. Required questions
// come before optional ones; within each group the gap order is kept, so
// the same gaps always yield the same flow.
func BuildFlow(gaps []analyzer.ContextGap) (*Flow, error) {
	qs := make([]Question, 0, len(gaps))

	for _, gap := range gaps {
		tmpl, ok := templates[gap.Category]
		if !ok {
			return nil, fmt.Errorf("no question template for gap category %q", gap.Category)
		}

		q := tmpl
		q.ID = gap.ID
		qs = append(qs, q)
	}

	sort.SliceStable(qs, func(i, j int) bool {
		return !qs[i].Skipable && qs[j].Skipable
	})

	return &Flow{
		ID:        uuid.New().String(),
		Questions: qs,
		Answers:   make(map[string]string),
		Completed: len(qs) == 0,
	}, nil
}

// Answer records a validated answer and advances the flow. Re-answering
// an already answered question overwrites the value but never rewinds
// progress.
func (f *Flow) Answer(questionID, value string) error {
	if f.Completed {
		return ErrFlowCompleted
	}

	q := f.question(questionID)
	if q == nil {
		return fmt.Errorf("%w: %s", ErrQuestionNotFound, questionID)
	}

	if err := validateAnswer(q, value); err != nil {
		return err
	}

	if f.Answers == nil {
		f.Answers = make(map[string]string)
	}

	f.Answers[questionID] = value
	f.advance()

	return nil
}

// AnswerAll records a batch of answers in question order. Validation is
// all-or-nothing: a single invalid answer leaves the flow untouched.
func (f *Flow) AnswerAll(answers map[string]string) error {
	if f.Completed {
		return ErrFlowCompleted
	}

	if err := f.ValidateAnswers(answers); err != nil {
		return err
	}

	if f.Answers == nil {
		f.Answers = make(map[string]string)
	}

	for _, q := range f.Questions {
		if value, ok := answers[q.ID]; ok {
			f.Answers[q.ID] = value
		}
	}

	f.advance()

	return nil
}

// SkipAll completes the flow without recording answers for the remaining
// questions. Fails if any unanswered question is not skipable; defaults
// for skipped questions are substituted later, at enrichment time.
func (f *Flow) SkipAll() error {
	if f.Completed {
		return nil
	}

	for _, q := range f.Questions {
		if _, answered := f.Answers[q.ID]; !answered && !q.Skipable {
			return fmt.Errorf("%w: %s", ErrRequiredUnanswered, q.ID)
		}
	}

	f.CurrentIndex = len(f.Questions)
	f.Completed = true

	return nil
}

// ValidateAnswers checks a set of answers against the flow's questions
// without recording anything.
func (f *Flow) ValidateAnswers(answers map[string]string) error {
	for id, value := range answers {
		q := f.question(id)
		if q == nil {
			return fmt.Errorf("%w: %s", ErrQuestionNotFound, id)
		}

		if err := validateAnswer(q, value); err != nil {
			return err
		}
	}

	return nil
}

// EffectiveAnswers returns the collected answers plus defaults for every
// skipable question left unanswered. The flow's own answer map is not
// modified.
func (f *Flow) EffectiveAnswers() map[string]string {
	effective := make(map[string]string, len(f.Questions))

	for _, q := range f.Questions {
		if value, ok := f.Answers[q.ID]; ok {
			effective[q.ID] = value
			continue
		}

		if q.Skipable && q.Default != "" {
			effective[q.ID] = q.Default
		}
	}

	return effective
}

// advance moves CurrentIndex to the first unanswered question and
// re-derives Completed
func (f *Flow) advance() {
	f.CurrentIndex = len(f.Questions)

	for i, q := range f.Questions {
		if _, answered := f.Answers[q.ID]; !answered {
			f.CurrentIndex = i
			break
		}
	}

	f.Completed = f.CurrentIndex == len(f.Questions)
}

func validateAnswer(q *Question, value string) error {
	switch q.Type {
	case TypeSingleChoice:
		for _, opt := range q.Options {
			if value == opt {
				return nil
			}
		}

		return fmt.Errorf("%w: %q is not an option for %s", ErrInvalidAnswer, value, q.ID)

	case TypeBoolean:
		if value == "true" || value == "false" {
			return nil
		}

		return fmt.Errorf("%w: %s expects true or false", ErrInvalidAnswer, q.ID)

	case TypeText:
		if value == "" {
			return fmt.Errorf("%w: %s cannot be empty", ErrInvalidAnswer, q.ID)
		}

		return nil

	default:
		return fmt.Errorf("%w: unknown question type %q", ErrInvalidAnswer, q.Type)
	}
}
