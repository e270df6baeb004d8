package domain

import (
	"encoding/json"
	"strconv"
)

// QuestionType discriminates how a question is answered and scored.
type QuestionType string

const (
	// QuestionSingle has options with exactly one correct choice.
	QuestionSingle QuestionType = "single"
	// QuestionMultiple has options with one or more correct choices.
	QuestionMultiple QuestionType = "multiple"
	// QuestionText is free-form and never auto-scored.
	QuestionText QuestionType = "text"
)

// Option is a possible answer belonging to exactly one question.
type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// Question is owned by its parent quiz. Options are absent for text questions.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []Option     `json:"options,omitempty"`
}

// Quiz is the unit of persistence: the whole document is read, mutated in
// memory, and written back per mutation.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// QuizMetadata is the id+title projection used for listings.
type QuizMetadata struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// OptionPayload is authoring input for one option.
type OptionPayload struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionPayload is the raw authoring input validated before a question is
// constructed and persisted.
type QuestionPayload struct {
	Text    string          `json:"text"`
	Type    QuestionType    `json:"type"`
	Options []OptionPayload `json:"options"`
}

// Answer is one submitted response. It exists only for the duration of an
// evaluation call and is never persisted.
type Answer struct {
	QuestionID string   `json:"questionId"`
	Selected   []string `json:"selected"`
}

// UnmarshalJSON decodes leniently: ids may arrive as numbers or booleans and
// are coerced to their canonical string form, and a missing or non-array
// selected field is treated as an empty selection. Every array element is
// kept, uninterpretable ones included, so the selection cardinality the
// evaluator compares against is exactly what the client submitted.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw struct {
		QuestionID json.RawMessage `json:"questionId"`
		Selected   json.RawMessage `json:"selected"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.QuestionID = canonicalID(raw.QuestionID)
	a.Selected = canonicalIDs(raw.Selected)
	return nil
}

// Evaluation is the outcome of scoring one answer submission against a quiz.
// Total counts the quiz's non-text questions.
type Evaluation struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

func canonicalID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func canonicalIDs(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = canonicalID(item)
	}
	return ids
}
