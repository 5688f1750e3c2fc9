package memory

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"quizzle/internal/domain"
)

// Source mirrors app.QuestionSource so this package does not import app.
type Source interface {
	FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error)
}

// StaticSource serves question files from a map keyed by YYYY-MM-DD (useful for tests/demos).
type StaticSource struct {
	files map[string]domain.QuestionFile
}

func NewStaticSource(files map[string]domain.QuestionFile) *StaticSource {
	return &StaticSource{files: files}
}

func (s *StaticSource) FetchQuestions(_ context.Context, date time.Time) (domain.QuestionFile, error) {
	if file, ok := s.files[date.Format(domain.DateLayout)]; ok {
		return file, nil
	}
	return domain.QuestionFile{}, domain.ErrQuestionSetNotFound
}

// CoalescingSource shares one in-flight fetch between concurrent callers asking
// for the same date. Nothing is kept once the fetch returns, so every new game
// still sees fresh content.
type CoalescingSource struct {
	source Source
	sf     singleflight.Group
}

func NewCoalescingSource(source Source) *CoalescingSource {
	return &CoalescingSource{source: source}
}

// FetchQuestions joins or starts the flight for date. The shared fetch ignores
// the caller's cancellation; each caller stops waiting when its own ctx ends.
func (c *CoalescingSource) FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error) {
	key := date.Format(domain.DateLayout)
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		return c.source.FetchQuestions(shared, date)
	})
	select {
	case <-ctx.Done():
		return domain.QuestionFile{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.QuestionFile{}, res.Err
		}
		return res.Val.(domain.QuestionFile), nil
	}
}
