package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"quizzle/internal/domain"
)

// ThemeKey is the slot holding the colour scheme preference.
const ThemeKey = "quizzle-theme"

// Themes reads and toggles the persisted theme preference.
type Themes struct {
	store SlotStore
	log   *zap.Logger
}

func NewThemes(store SlotStore, log *zap.Logger) *Themes {
	if log == nil {
		log = zap.NewNop()
	}
	return &Themes{store: store, log: log}
}

// Current returns the stored theme, or platformDefault when nothing valid is stored.
func (t *Themes) Current(ctx context.Context, platformDefault domain.Theme) domain.Theme {
	if !platformDefault.Valid() {
		platformDefault = domain.ThemeLight
	}
	raw, err := t.store.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			t.log.Warn("read theme failed", zap.Error(err))
		}
		return platformDefault
	}
	theme := domain.Theme(raw)
	if !theme.Valid() {
		return platformDefault
	}
	return theme
}

// Toggle flips the current theme and persists it.
func (t *Themes) Toggle(ctx context.Context, platformDefault domain.Theme) (domain.Theme, error) {
	next := t.Current(ctx, platformDefault).Toggled()
	if err := t.store.Set(ctx, ThemeKey, string(next)); err != nil {
		return next, err
	}
	return next, nil
}
