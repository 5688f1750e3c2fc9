package cli

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quizzle/internal/app"
	"quizzle/internal/config"
	"quizzle/internal/infra/content"
	pgsource "quizzle/internal/infra/postgres"
	redisinfra "quizzle/internal/infra/redis"
)

// backends holds the optional external clients named in the config.
type backends struct {
	redis *redis.Client
	pool  *pgxpool.Pool
}

func openBackends(ctx context.Context, cfg config.Config) (*backends, error) {
	b := &backends{}
	if cfg.Redis.Addr != "" {
		b.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.pool = pool
	}
	return b, nil
}

func (b *backends) Close() {
	if b.pool != nil {
		b.pool.Close()
	}
	if b.redis != nil {
		_ = b.redis.Close()
	}
}

// questionSource picks where question files come from: Postgres, then an
// HTTP base URL, then a local directory, then Redis.
func questionSource(cfg config.Config, b *backends, log *zap.Logger) app.QuestionSource {
	switch {
	case b.pool != nil:
		log.Info("questions from postgres")
		return pgsource.NewQuestionSource(b.pool)
	case cfg.Content.BaseURL != "":
		log.Info("questions from http", zap.String("base_url", cfg.Content.BaseURL))
		client := &http.Client{Timeout: config.TTLDuration(cfg.Content.Timeout, 10*time.Second)}
		return content.NewHTTPSource(cfg.Content.BaseURL, client)
	case cfg.Content.Dir != "" || b.redis == nil:
		dir := cfg.Content.Dir
		if dir == "" {
			dir = "questions"
		}
		log.Info("questions from directory", zap.String("dir", dir))
		return content.NewDirSource(os.DirFS(dir))
	default:
		log.Info("questions from redis")
		return redisinfra.NewQuestionSource(b.redis, 0)
	}
}
