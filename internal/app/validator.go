package app

import (
	"unicode/utf8"

	"quiz-builder-service/internal/domain"
)

const maxQuestionTextLen = 300

// ValidateQuestion checks an authoring payload against the per-type rules.
// Pure; checks run in order and the first failure wins. A nil return marks
// the payload as safe to persist.
func ValidateQuestion(p domain.QuestionPayload) error {
	if p.Text == "" || utf8.RuneCountInString(p.Text) > maxQuestionTextLen {
		return domain.ErrInvalidQuestionText
	}

	switch p.Type {
	case domain.QuestionSingle, domain.QuestionMultiple, domain.QuestionText:
	default:
		return domain.ErrInvalidQuestionType
	}

	if p.Type == domain.QuestionText {
		if len(p.Options) > 0 {
			return domain.ErrUnexpectedOptions
		}
		return nil
	}

	if len(p.Options) == 0 {
		return domain.ErrMissingOptions
	}

	correct := 0
	for _, opt := range p.Options {
		if opt.Text == "" {
			return domain.ErrInvalidOptionText
		}
		if opt.IsCorrect {
			correct++
		}
	}

	if p.Type == domain.QuestionSingle && correct != 1 {
		return domain.ErrSingleChoiceCorrectCount
	}
	if p.Type == domain.QuestionMultiple && correct < 1 {
		return domain.ErrMultipleChoiceCorrectCount
	}
	return nil
}
