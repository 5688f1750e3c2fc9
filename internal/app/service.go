package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

// QuestionSource fetches the question file for one calendar date (HTTP, disk, Postgres, Redis).
type QuestionSource interface {
	FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error)
}

// SlotStore is a durable key-value slot store. Set replaces the whole value.
// Get returns domain.ErrSlotNotFound for keys that were never written.
type SlotStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Service opens games: it loads the day's questions and resumes saved progress.
type Service struct {
	loader     *Loader
	slotPrefix string
	tr         *i18n.Translator
	log        *zap.Logger
	now        func() time.Time
}

func NewService(loader *Loader, slotPrefix string, tr *i18n.Translator, log *zap.Logger) *Service {
	return NewServiceWithClock(loader, slotPrefix, tr, log, time.Now)
}

// NewServiceWithClock lets tests pin "today".
func NewServiceWithClock(loader *Loader, slotPrefix string, tr *i18n.Translator, log *zap.Logger, now func() time.Time) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		loader:     loader,
		slotPrefix: slotPrefix,
		tr:         tr,
		log:        log,
		now:        now,
	}
}

// Translator exposes the service's message catalogue to front-ends.
func (s *Service) Translator() *i18n.Translator {
	return s.tr
}

// Open loads today's question set and resumes any progress stored for its
// effective date. It returns domain.ErrContentUnavailable when nothing loads.
func (s *Service) Open(ctx context.Context, store SlotStore) (*Game, error) {
	result, err := s.loader.Load(ctx, s.now())
	if err != nil {
		s.log.Error("load question set", zap.Error(err))
		return nil, err
	}

	progress := NewProgress(store, s.slotPrefix, s.log)
	session := NewSession(result.Set)
	if decoded, ok := progress.Load(ctx, result.Set.Date); ok {
		session = RestoreSession(result.Set, decoded.Record)
		s.log.Info("resumed saved progress",
			zap.String("key", progress.Key(result.Set.Date)),
			zap.Stringer("format", decoded.Format),
			zap.Int("answered", session.AnsweredCount()))
	}

	if result.Stale {
		s.log.Info("serving stale question set",
			zap.String("today", result.Today.Format(domain.DateLayout)),
			zap.String("effective", result.Set.Date.Format(domain.DateLayout)))
	}

	return newGame(session, progress, s.tr, s.log, result.Stale), nil
}
