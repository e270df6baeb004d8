package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"quiz-builder-service/internal/app"
	"quiz-builder-service/internal/domain"
	"quiz-builder-service/internal/idgen"
	pgstore "quiz-builder-service/internal/infra/postgres"
	pgmigrations "quiz-builder-service/internal/infra/postgres/migrations"
	rediscache "quiz-builder-service/internal/infra/redis"
)

func TestAuthorAndScoreEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	store := rediscache.NewQuizCache(redisClient, pgstore.NewQuizStore(pool), 5*time.Minute)
	service := app.NewQuizService(store, idgen.New())

	quiz, err := service.CreateQuiz(ctx, "Geography")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	single, err := service.AddQuestion(ctx, quiz.ID, domain.QuestionPayload{
		Text: "Capital of France?",
		Type: domain.QuestionSingle,
		Options: []domain.OptionPayload{
			{Text: "Paris", IsCorrect: true},
			{Text: "Lyon"},
		},
	})
	if err != nil {
		t.Fatalf("add single question: %v", err)
	}
	multi, err := service.AddQuestion(ctx, quiz.ID, domain.QuestionPayload{
		Text: "Which are EU members?",
		Type: domain.QuestionMultiple,
		Options: []domain.OptionPayload{
			{Text: "France", IsCorrect: true},
			{Text: "Norway"},
			{Text: "Spain", IsCorrect: true},
		},
	})
	if err != nil {
		t.Fatalf("add multiple question: %v", err)
	}
	if _, err := service.AddQuestion(ctx, quiz.ID, domain.QuestionPayload{
		Text: "Describe the Alps",
		Type: domain.QuestionText,
	}); err != nil {
		t.Fatalf("add text question: %v", err)
	}

	// Round-trip through Postgres matches what was authored.
	reloaded, err := pgstore.NewQuizStore(pool).GetQuiz(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("reload from postgres: %v", err)
	}
	if reloaded.Title != "Geography" || len(reloaded.Questions) != 3 {
		t.Fatalf("unexpected persisted quiz: %+v", reloaded)
	}

	correct := map[string][]string{}
	for _, q := range reloaded.Questions {
		for _, opt := range q.Options {
			if opt.IsCorrect {
				correct[q.ID] = append(correct[q.ID], opt.ID)
			}
		}
	}

	result, err := service.Score(ctx, quiz.ID, []domain.Answer{
		{QuestionID: single.ID, Selected: correct[single.ID]},
		{QuestionID: multi.ID, Selected: correct[multi.ID]},
	})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("expected 2/2 (text question excluded), got %+v", result)
	}

	list, err := service.ListQuizzes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != quiz.ID || list[0].Title != "Geography" {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
