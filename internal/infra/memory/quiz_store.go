package memory

import (
	"context"
	"sort"
	"sync"

	"quiz-builder-service/internal/domain"
)

// QuizStore is an in-memory implementation of app.QuizStore, used when no
// Postgres URL is configured and throughout the unit tests. Documents are
// deep-copied at the boundary so callers never alias stored state.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{quizzes: make(map[string]domain.Quiz)}
}

func (s *QuizStore) CreateQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

func (s *QuizStore) GetQuiz(_ context.Context, id string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[id]
	if !ok {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return cloneQuiz(quiz), nil
}

// SaveQuiz overwrites the whole document, mirroring the durable stores.
func (s *QuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

// ListQuizzes projects id+title for every stored quiz, ordered by id for
// deterministic listings.
func (s *QuizStore) ListQuizzes(_ context.Context) ([]domain.QuizMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]domain.QuizMetadata, 0, len(s.quizzes))
	for _, quiz := range s.quizzes {
		list = append(list, domain.QuizMetadata{ID: quiz.ID, Title: quiz.Title})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func cloneQuiz(quiz domain.Quiz) domain.Quiz {
	out := quiz
	out.Questions = make([]domain.Question, len(quiz.Questions))
	copy(out.Questions, quiz.Questions)
	for i := range out.Questions {
		if out.Questions[i].Options == nil {
			continue
		}
		options := make([]domain.Option, len(out.Questions[i].Options))
		copy(options, out.Questions[i].Options)
		out.Questions[i].Options = options
	}
	return out
}
