package app

import (
	"context"
	"fmt"
	"iter"
	"time"

	"go.uber.org/zap"

	"quizzle/internal/domain"
)

// DefaultLookbackDays is how many days before today the loader may fall back to.
const DefaultLookbackDays = 4

// LoadResult is a successfully loaded question set.
type LoadResult struct {
	Set   domain.QuestionSet
	Today time.Time
	// Stale is true when the set is for an earlier date than today.
	Stale bool
}

// Candidates yields today and then each of the lookback preceding calendar days,
// most recent first. The sequence can be ranged over any number of times.
func Candidates(today time.Time, lookback int) iter.Seq[time.Time] {
	start := truncateDay(today)
	return func(yield func(time.Time) bool) {
		for i := 0; i <= lookback; i++ {
			if !yield(start.AddDate(0, 0, -i)) {
				return
			}
		}
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Loader finds the most recent question set within the lookback window.
type Loader struct {
	source   QuestionSource
	lookback int
	log      *zap.Logger
}

func NewLoader(source QuestionSource, lookback int, log *zap.Logger) *Loader {
	if lookback < 0 {
		lookback = DefaultLookbackDays
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{source: source, lookback: lookback, log: log}
}

// Load tries each candidate date in turn and stops at the first valid set.
// Individual failures are logged and skipped; only exhausting the window is an error.
func (l *Loader) Load(ctx context.Context, today time.Time) (LoadResult, error) {
	today = truncateDay(today)
	for date := range Candidates(today, l.lookback) {
		if err := ctx.Err(); err != nil {
			return LoadResult{}, err
		}
		file, err := l.source.FetchQuestions(ctx, date)
		if err == nil {
			err = file.Validate()
		}
		if err != nil {
			l.log.Debug("question set unavailable",
				zap.String("date", date.Format(domain.DateLayout)),
				zap.Error(err))
			continue
		}
		return LoadResult{
			Set:   domain.QuestionSet{Date: date, Questions: file.Questions},
			Today: today,
			Stale: !date.Equal(today),
		}, nil
	}
	return LoadResult{}, fmt.Errorf("%w: tried %d days from %s",
		domain.ErrContentUnavailable, l.lookback+1, today.Format(domain.DateLayout))
}
