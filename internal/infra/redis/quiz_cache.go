package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-builder-service/internal/app"
	"quiz-builder-service/internal/domain"
)

// QuizCache decorates another QuizStore with a Redis document cache.
// Documents are stored as: SET quiz:{quizID}:doc {json} with TTL.
// Reads go through the cache with singleflight stampede control; writes go
// to the backing store first and then refresh the cached document.
type QuizCache struct {
	client *redis.Client
	store  app.QuizStore
	ttl    time.Duration
	sf     singleflight.Group
}

func NewQuizCache(client *redis.Client, store app.QuizStore, ttl time.Duration) *QuizCache {
	return &QuizCache{
		client: client,
		store:  store,
		ttl:    ttl,
	}
}

func (c *QuizCache) CreateQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := c.store.CreateQuiz(ctx, quiz); err != nil {
		return err
	}
	c.cacheQuiz(ctx, quiz)
	return nil
}

func (c *QuizCache) SaveQuiz(ctx context.Context, quiz domain.Quiz) error {
	if err := c.store.SaveQuiz(ctx, quiz); err != nil {
		return err
	}
	c.cacheQuiz(ctx, quiz)
	return nil
}

func (c *QuizCache) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	key := c.docKey(quizID)

	if quiz, ok := c.cachedQuiz(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if quiz, ok := c.cachedQuiz(ctx, key); ok {
			return quiz, nil
		}

		quiz, err := c.store.GetQuiz(ctx, quizID)
		if err != nil {
			return domain.Quiz{}, err
		}
		c.cacheQuiz(ctx, quiz)
		return quiz, nil
	})
	if err != nil {
		return domain.Quiz{}, err
	}
	return result.(domain.Quiz), nil
}

// ListQuizzes always reads through to the backing store; listings are cheap
// projections and caching them would complicate invalidation.
func (c *QuizCache) ListQuizzes(ctx context.Context) ([]domain.QuizMetadata, error) {
	return c.store.ListQuizzes(ctx)
}

func (c *QuizCache) cachedQuiz(ctx context.Context, key string) (domain.Quiz, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil || len(raw) == 0 {
		return domain.Quiz{}, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return domain.Quiz{}, false
	}
	return quiz, true
}

// cacheQuiz is best-effort; a cache write failure never fails the request.
func (c *QuizCache) cacheQuiz(ctx context.Context, quiz domain.Quiz) {
	data, err := json.Marshal(quiz)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.docKey(quiz.ID), data, ttlWithJitter(c.ttl)).Err()
}

func (c *QuizCache) docKey(quizID string) string {
	return "quiz:" + quizID + ":doc"
}

// ttlWithJitter adds up to 10% jitter to spread expirations. The top-level
// rand functions are used because cacheQuiz runs on every concurrent write
// and read-miss path.
func ttlWithJitter(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	jitterMax := int64(ttl) / 10
	return ttl + time.Duration(rand.Int63n(jitterMax+1))
}
