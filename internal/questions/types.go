package questions

// how a question is answered
type QuestionType string

const (
	TypeSingleChoice QuestionType = "single_choice"
	TypeText         QuestionType = "text"
	TypeBoolean      QuestionType = "boolean"
)

// one clarifying question presented to the user. The ID equals the ID
// of the context gap it resolves, so answers can be traced back.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Options  []string     `json:"options,omitempty"` // single_choice only
	Default  string       `json:"default,omitempty"` // substituted when skipped
	Skipable bool         `json:"skipable"`
}

// an ordered sequence of questions with collected answers.
//
// Invariants held by every mutating method:
//   - 0 <= CurrentIndex <= len(Questions)
//   - Completed is true exactly when CurrentIndex == len(Questions)
//   - Answers only grows; keys always match a question ID
type Flow struct {
	ID           string            `json:"id"`
	Questions    []Question        `json:"questions"`
	CurrentIndex int               `json:"current_index"`
	Answers      map[string]string `json:"answers"`
	Completed    bool              `json:"completed"`
}

// Clone returns a deep copy of the flow. Mutating the copy's questions
// or answers never affects the original.
func (f *Flow) Clone() *Flow {
	if f == nil {
		return nil
	}

	qs := make([]Question, len(f.Questions))

	for i, q := range f.Questions {
		qs[i] = q
		if q.Options != nil {
			qs[i].Options = append([]string(nil), q.Options...)
		}
	}

	answers := make(map[string]string, len(f.Answers))
	for id, value := range f.Answers {
		answers[id] = value
	}

	return &Flow{
		ID:           f.ID,
		Questions:    qs,
		CurrentIndex: f.CurrentIndex,
		Answers:      answers,
		Completed:    f.Completed,
	}
}

// returns the question awaiting an answer, or nil once the flow is done
func (f *Flow) Current() *Question {
	if f.CurrentIndex >= len(f.Questions) {
		return nil
	}

	return &f.Questions[f.CurrentIndex]
}

func (f *Flow) question(id string) *Question {
	for i := range f.Questions {
		if f.Questions[i].ID == id {
			return &f.Questions[i]
		}
	}

	return nil
}
