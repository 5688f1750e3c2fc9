package app

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"quizzle/internal/domain"
	"quizzle/internal/infra/memory"
)

func TestCandidatesOrderAndRestart(t *testing.T) {
	seq := Candidates(time.Date(2026, 3, 2, 15, 30, 0, 0, time.UTC), 4)
	want := []string{"2026-03-02", "2026-03-01", "2026-02-28", "2026-02-27", "2026-02-26"}
	for pass := 0; pass < 2; pass++ {
		var got []string
		for d := range seq {
			got = append(got, d.Format(domain.DateLayout))
		}
		if !slices.Equal(got, want) {
			t.Fatalf("pass %d: got %v, want %v", pass, got, want)
		}
	}
}

// Scenario B: every attempt fails.
func TestLoaderReportsUnavailable(t *testing.T) {
	source := &recordingSource{inner: memory.NewStaticSource(map[string]domain.QuestionFile{
		// Six days back is outside the window.
		"2026-10-12": sampleFile(5),
	})}
	loader := NewLoader(source, DefaultLookbackDays, nil)

	_, err := loader.Load(context.Background(), day(2026, 10, 18))
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("expected content unavailable, got %v", err)
	}
	want := []string{"2026-10-18", "2026-10-17", "2026-10-16", "2026-10-15", "2026-10-14"}
	if !slices.Equal(source.dates, want) {
		t.Fatalf("attempts %v, want %v", source.dates, want)
	}
}

// Scenario C: yesterday's file is used when today's is missing.
func TestLoaderFallsBackToYesterday(t *testing.T) {
	source := &recordingSource{inner: memory.NewStaticSource(map[string]domain.QuestionFile{
		"2026-10-17": sampleFile(5),
		"2026-10-16": sampleFile(3),
	})}
	loader := NewLoader(source, DefaultLookbackDays, nil)

	result, err := loader.Load(context.Background(), time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !result.Stale {
		t.Fatalf("expected stale result")
	}
	if got := result.Set.Date.Format(domain.DateLayout); got != "2026-10-17" {
		t.Fatalf("effective date %s", got)
	}
	if result.Set.Len() != 5 {
		t.Fatalf("expected the most recent set, got %d questions", result.Set.Len())
	}
	if len(source.dates) != 2 {
		t.Fatalf("expected to stop at first success, attempts %v", source.dates)
	}
}

func TestLoaderSkipsMalformedSets(t *testing.T) {
	bad := sampleFile(2)
	bad.Questions[1].CorrectAnswer = 7
	loader := NewLoader(memory.NewStaticSource(map[string]domain.QuestionFile{
		"2026-10-18": bad,
		"2026-10-17": {},
		"2026-10-16": sampleFile(4),
	}), DefaultLookbackDays, nil)

	result, err := loader.Load(context.Background(), day(2026, 10, 18))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := result.Set.Date.Format(domain.DateLayout); got != "2026-10-16" {
		t.Fatalf("effective date %s", got)
	}
}

func TestLoaderFreshToday(t *testing.T) {
	loader := NewLoader(memory.NewStaticSource(map[string]domain.QuestionFile{
		"2026-10-18": sampleFile(5),
	}), DefaultLookbackDays, nil)

	result, err := loader.Load(context.Background(), day(2026, 10, 18))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if result.Stale {
		t.Fatalf("today's set must not be stale")
	}
}

type recordingSource struct {
	inner *memory.StaticSource
	dates []string
}

func (r *recordingSource) FetchQuestions(ctx context.Context, date time.Time) (domain.QuestionFile, error) {
	r.dates = append(r.dates, date.Format(domain.DateLayout))
	return r.inner.FetchQuestions(ctx, date)
}
