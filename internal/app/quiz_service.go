package app

import (
	"context"
	"fmt"

	"quiz-builder-service/internal/domain"
)

// QuizStore abstracts durable keyed storage of quiz documents (in-memory,
// Postgres, a caching decorator, etc). Writes replace the whole document;
// there are no partial updates. GetQuiz returns domain.ErrQuizNotFound for
// unknown ids.
type QuizStore interface {
	CreateQuiz(ctx context.Context, quiz domain.Quiz) error
	GetQuiz(ctx context.Context, id string) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
	ListQuizzes(ctx context.Context) ([]domain.QuizMetadata, error)
}

// IDGenerator produces opaque unique identifiers.
type IDGenerator interface {
	NewID() string
}

// QuizService contains the quiz authoring and scoring use cases.
//
// Mutations follow a load-mutate-save cycle against the store with no
// cross-request locking, so two concurrent mutations of the same quiz race
// last-writer-wins. Multi-client deployments need per-quiz mutual exclusion
// or versioned writes on top of this service.
type QuizService struct {
	store QuizStore
	ids   IDGenerator
}

func NewQuizService(store QuizStore, ids IDGenerator) *QuizService {
	return &QuizService{store: store, ids: ids}
}

// CreateQuiz persists a new quiz with no questions and a fresh id. Only the
// empty title is rejected; whitespace-only titles are accepted as given.
func (s *QuizService) CreateQuiz(ctx context.Context, title string) (domain.Quiz, error) {
	if title == "" {
		return domain.Quiz{}, domain.ErrInvalidTitle
	}

	quiz := domain.Quiz{
		ID:        "quiz-" + s.ids.NewID(),
		Title:     title,
		Questions: []domain.Question{},
	}
	if err := s.store.CreateQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("create quiz: %w", err)
	}
	return quiz, nil
}

// LoadQuiz fetches the full quiz document, including correct-answer data.
func (s *QuizService) LoadQuiz(ctx context.Context, id string) (domain.Quiz, error) {
	return s.store.GetQuiz(ctx, id)
}

// AddQuestion validates the payload, assigns fresh identifiers to the
// question and its options, appends it to the quiz and rewrites the whole
// document. The not-found check deliberately precedes validation so an
// unknown quiz id is reported ahead of payload problems.
func (s *QuizService) AddQuestion(ctx context.Context, quizID string, payload domain.QuestionPayload) (domain.Question, error) {
	quiz, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Question{}, err
	}

	if err := ValidateQuestion(payload); err != nil {
		return domain.Question{}, err
	}

	question := domain.Question{
		ID:   s.ids.NewID(),
		Text: payload.Text,
		Type: payload.Type,
	}
	if payload.Type != domain.QuestionText {
		question.Options = make([]domain.Option, 0, len(payload.Options))
		for _, opt := range payload.Options {
			question.Options = append(question.Options, domain.Option{
				// opt- prefix visually separates option ids from quiz/question ids
				ID:        "opt-" + s.ids.NewID(),
				Text:      opt.Text,
				IsCorrect: opt.IsCorrect,
			})
		}
	}

	quiz.Questions = append(quiz.Questions, question)
	if err := s.store.SaveQuiz(ctx, quiz); err != nil {
		return domain.Question{}, fmt.Errorf("save quiz: %w", err)
	}
	return question, nil
}

// ListQuizzes enumerates stored quizzes as id+title only; question bodies
// are never included in listings.
func (s *QuizService) ListQuizzes(ctx context.Context) ([]domain.QuizMetadata, error) {
	return s.store.ListQuizzes(ctx)
}

// Score loads the quiz and evaluates the submitted answers against it.
func (s *QuizService) Score(ctx context.Context, quizID string, answers []domain.Answer) (domain.Evaluation, error) {
	quiz, err := s.store.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return Evaluate(quiz, answers), nil
}
