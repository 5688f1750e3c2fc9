package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizzle/internal/domain"
)

// QuestionSource loads dated question sets stored as JSONB in Postgres.
type QuestionSource struct {
	pool *pgxpool.Pool
}

func NewQuestionSource(pool *pgxpool.Pool) *QuestionSource {
	return &QuestionSource{pool: pool}
}

func (s *QuestionSource) FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE quiz_date=$1`, calendarDay(date)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionFile{}, domain.ErrQuestionSetNotFound
	}
	if err != nil {
		return domain.QuestionFile{}, fmt.Errorf("load question set: %w", err)
	}
	var file domain.QuestionFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return domain.QuestionFile{}, fmt.Errorf("%w: %v", domain.ErrMalformedQuestionSet, err)
	}
	return file, nil
}

// Publish upserts the question set for date.
func (s *QuestionSource) Publish(ctx context.Context, date time.Time, file domain.QuestionFile) error {
	if err := file.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("marshal question set: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO question_sets (quiz_date, data) VALUES ($1, $2::jsonb)
		 ON CONFLICT (quiz_date) DO UPDATE SET data=EXCLUDED.data, published_at=now()`,
		calendarDay(date), string(data))
	if err != nil {
		return fmt.Errorf("publish question set: %w", err)
	}
	return nil
}

// calendarDay drops the clock and zone so the DATE column sees the local calendar day.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
