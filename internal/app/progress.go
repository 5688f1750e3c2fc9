package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizzle/internal/domain"
)

// DefaultSlotPrefix namespaces save slots; the date is appended as YYYY-MM-DD.
const DefaultSlotPrefix = "quizzle-"

// SlotKey derives the save slot key for an effective date.
func SlotKey(prefix string, date time.Time) string {
	return prefix + date.Format(domain.DateLayout)
}

// savePayload is the structured save encoding.
type savePayload struct {
	ResultGlyphs string         `json:"resultGlyphs"`
	UserAnswers  map[string]int `json:"userAnswers"`
}

// DecodedSave is a save slot value tagged with the encoding it came from.
type DecodedSave struct {
	Format domain.SaveFormat
	Record domain.SaveRecord
}

// EncodeSave renders a record in the structured format.
func EncodeSave(rec domain.SaveRecord) (string, error) {
	answers := make(map[string]int, len(rec.Answers))
	for idx, choice := range rec.Answers {
		answers[strconv.Itoa(idx)] = choice
	}
	data, err := json.Marshal(savePayload{
		ResultGlyphs: rec.Glyphs.String(),
		UserAnswers:  answers,
	})
	if err != nil {
		return "", fmt.Errorf("encode save: %w", err)
	}
	return string(data), nil
}

// DecodeSave tries the structured format, then the legacy glyph string. The
// second return is false when the value matches neither.
func DecodeSave(raw string) (DecodedSave, bool) {
	if rec, ok := decodeStructured(raw); ok {
		return DecodedSave{Format: domain.SaveFormatStructured, Record: rec}, true
	}
	if rec, ok := decodeLegacy(raw); ok {
		return DecodedSave{Format: domain.SaveFormatLegacy, Record: rec}, true
	}
	return DecodedSave{}, false
}

func decodeStructured(raw string) (domain.SaveRecord, bool) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return domain.SaveRecord{}, false
	}
	var payload savePayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return domain.SaveRecord{}, false
	}
	glyphs, ok := domain.ParseGlyphs(payload.ResultGlyphs)
	if !ok {
		return domain.SaveRecord{}, false
	}
	answers := make(map[int]int, len(payload.UserAnswers))
	for key, choice := range payload.UserAnswers {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return domain.SaveRecord{}, false
		}
		answers[idx] = choice
	}
	return domain.SaveRecord{Glyphs: glyphs, Answers: answers}, true
}

func decodeLegacy(raw string) (domain.SaveRecord, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.SaveRecord{}, false
	}
	glyphs, ok := domain.ParseGlyphs(raw)
	if !ok {
		return domain.SaveRecord{}, false
	}
	return domain.SaveRecord{Glyphs: glyphs, Answers: map[int]int{}}, true
}

// Progress persists session records in date-keyed save slots.
type Progress struct {
	store  SlotStore
	prefix string
	log    *zap.Logger
}

func NewProgress(store SlotStore, prefix string, log *zap.Logger) *Progress {
	if prefix == "" {
		prefix = DefaultSlotPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Progress{store: store, prefix: prefix, log: log}
}

// Key returns the slot key for date.
func (p *Progress) Key(date time.Time) string {
	return SlotKey(p.prefix, date)
}

// Save replaces the whole slot for date with rec.
func (p *Progress) Save(ctx context.Context, date time.Time, rec domain.SaveRecord) error {
	value, err := EncodeSave(rec)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, p.Key(date), value); err != nil {
		return fmt.Errorf("save progress %s: %w", p.Key(date), err)
	}
	return nil
}

// Load returns the saved record for date. Missing, unreadable and corrupt slots
// all report ok=false so the caller starts fresh.
func (p *Progress) Load(ctx context.Context, date time.Time) (DecodedSave, bool) {
	key := p.Key(date)
	raw, err := p.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrSlotNotFound) {
			p.log.Warn("read save slot failed", zap.String("key", key), zap.Error(err))
		}
		return DecodedSave{}, false
	}
	decoded, ok := DecodeSave(raw)
	if !ok {
		p.log.Info("ignoring undecodable save slot", zap.String("key", key))
		return DecodedSave{}, false
	}
	return decoded, true
}
