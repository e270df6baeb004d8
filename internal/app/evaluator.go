package app

import "quiz-builder-service/internal/domain"

// Evaluate scores a submission against a quiz document. Pure; neither input
// is mutated. Answers that cannot be interpreted (unknown question id,
// free-text question) are skipped rather than failing the submission, so
// scoring is deterministic best-effort. Total counts the quiz's non-text
// questions regardless of what was submitted.
//
// Each submitted answer is scored on its own merits: repeated questionIds
// within one submission are not deduplicated.
func Evaluate(quiz domain.Quiz, answers []domain.Answer) domain.Evaluation {
	questions := make(map[string]domain.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions[q.ID] = q
	}

	score := 0
	for _, ans := range answers {
		q, ok := questions[ans.QuestionID]
		if !ok {
			continue
		}
		switch q.Type {
		case domain.QuestionSingle:
			if singleChoiceCorrect(q, ans.Selected) {
				score++
			}
		case domain.QuestionMultiple:
			if multipleChoiceCorrect(q, ans.Selected) {
				score++
			}
		case domain.QuestionText:
			// never auto-scored
		}
	}

	total := 0
	for _, q := range quiz.Questions {
		if q.Type != domain.QuestionText {
			total++
		}
	}

	return domain.Evaluation{Score: score, Total: total}
}

// singleChoiceCorrect awards the point iff exactly one option was selected
// and it is the question's correct option. A document with no correct option
// marked yields no credit.
func singleChoiceCorrect(q domain.Question, selected []string) bool {
	var correct *domain.Option
	for i := range q.Options {
		if q.Options[i].IsCorrect {
			correct = &q.Options[i]
			break
		}
	}
	if correct == nil {
		return false
	}
	return len(selected) == 1 && selected[0] == correct.ID
}

// multipleChoiceCorrect awards the point iff the selected ids form exactly
// the set of correct option ids. Duplicates in the selection do not inflate
// the comparison; subsets and supersets both score zero.
func multipleChoiceCorrect(q domain.Question, selected []string) bool {
	correct := make(map[string]struct{})
	for _, opt := range q.Options {
		if opt.IsCorrect {
			correct[opt.ID] = struct{}{}
		}
	}

	chosen := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		chosen[id] = struct{}{}
	}

	if len(chosen) != len(correct) {
		return false
	}
	for id := range correct {
		if _, ok := chosen[id]; !ok {
			return false
		}
	}
	return true
}
