package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz id resolves to no stored document.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidTitle rejects quiz creation with an empty title.
	ErrInvalidTitle = errors.New("quiz title must be a non-empty string")

	// ErrInvalidQuestionText rejects empty question text or text over 300 characters.
	ErrInvalidQuestionText = errors.New("question text must be a non-empty string of at most 300 characters")
	// ErrInvalidQuestionType rejects types outside single, multiple, text.
	ErrInvalidQuestionType = errors.New("question type must be one of 'single', 'multiple', 'text'")
	// ErrUnexpectedOptions rejects text questions that carry options.
	ErrUnexpectedOptions = errors.New("text questions must not include options")
	// ErrMissingOptions rejects choice questions without options.
	ErrMissingOptions = errors.New("options must be a non-empty array")
	// ErrInvalidOptionText rejects options whose text is empty.
	ErrInvalidOptionText = errors.New("every option must include a text string")
	// ErrSingleChoiceCorrectCount rejects single-choice questions without exactly one correct option.
	ErrSingleChoiceCorrectCount = errors.New("single choice questions must have exactly 1 correct option")
	// ErrMultipleChoiceCorrectCount rejects multiple-choice questions without any correct option.
	ErrMultipleChoiceCorrectCount = errors.New("multiple choice questions must have at least 1 correct option")
)

// IsValidation reports whether err is one of the authoring rejections that a
// boundary layer should surface as a bad request rather than a failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidTitle,
		ErrInvalidQuestionText,
		ErrInvalidQuestionType,
		ErrUnexpectedOptions,
		ErrMissingOptions,
		ErrInvalidOptionText,
		ErrSingleChoiceCorrectCount,
		ErrMultipleChoiceCorrectCount,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
