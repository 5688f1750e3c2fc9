package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quizzle/internal/domain"
)

// QuestionSource serves question files stored as JSON strings under
// quizzle:questions:{YYYY-MM-DD}.
type QuestionSource struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionSource builds a source; ttl applies to published files (0 keeps them forever).
func NewQuestionSource(client *redis.Client, ttl time.Duration) *QuestionSource {
	return &QuestionSource{client: client, ttl: ttl}
}

func (r *QuestionSource) FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error) {
	raw, err := r.client.Get(ctx, r.key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.QuestionFile{}, domain.ErrQuestionSetNotFound
	}
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("get question set: %w", err)
	}
	var file domain.QuestionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return domain.QuestionFile{}, fmt.Errorf("%w: %v", domain.ErrMalformedQuestionSet, err)
	}
	return file, nil
}

// Publish stores the question file for date, replacing any previous one.
func (r *QuestionSource) Publish(ctx context.Context, date time.Time, file domain.QuestionFile) error {
	if err := file.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	return r.client.Set(ctx, r.key(date), data, r.ttl).Err()
}

func (r *QuestionSource) key(date time.Time) string {
	return "quizzle:questions:" + date.Format(domain.DateLayout)
}
