package app

import (
	"errors"
	"testing"

	"quizzle/internal/domain"
)

func TestSessionPhases(t *testing.T) {
	s := NewSession(sampleSet(2))
	if s.Phase() != PhaseNotStarted {
		t.Fatalf("expected not started, got %s", s.Phase())
	}
	s.Start()
	if s.Phase() != PhaseInProgress || s.CurrentIndex() != 0 {
		t.Fatalf("expected in progress at 0, got %s at %d", s.Phase(), s.CurrentIndex())
	}
	for i := 0; i < 2; i++ {
		if _, err := s.SubmitAnswer(i, 1); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		s.Advance()
	}
	if !s.IsFinal() || s.Phase() != PhaseFinal {
		t.Fatalf("expected final, got %s", s.Phase())
	}
}

func TestSubmitAnswerOnlyForCurrentQuestion(t *testing.T) {
	s := NewSession(sampleSet(3))

	if _, err := s.SubmitAnswer(0, 1); !errors.Is(err, domain.ErrNotCurrentQuestion) {
		t.Fatalf("expected not-current before start, got %v", err)
	}

	s.Start()
	for _, idx := range []int{-1, 1, 2, 3} {
		if _, err := s.SubmitAnswer(idx, 1); !errors.Is(err, domain.ErrNotCurrentQuestion) {
			t.Fatalf("index %d: expected not-current, got %v", idx, err)
		}
	}
	if _, err := s.SubmitAnswer(0, 4); !errors.Is(err, domain.ErrAnswerOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if s.AnsweredCount() != 0 {
		t.Fatalf("rejected submissions must not record anything")
	}

	fb, err := s.SubmitAnswer(0, 2)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if fb.Correct || fb.CorrectAnswer != 1 || fb.Explanation != "Because 1." || fb.Source == "" {
		t.Fatalf("unexpected feedback %+v", fb)
	}
	if _, err := s.SubmitAnswer(0, 1); !errors.Is(err, domain.ErrAlreadyAnswered) {
		t.Fatalf("expected already answered, got %v", err)
	}
}

func TestScoreDerivedFromGlyphs(t *testing.T) {
	s := NewSession(sampleSet(5))
	s.Start()
	choices := []int{1, 0, 1, 1, 3}
	for i, choice := range choices {
		before := s.Record()
		if _, err := s.SubmitAnswer(i, choice); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		after := s.Record()
		if len(after.Glyphs) != len(before.Glyphs)+1 || len(after.Answers) != len(before.Answers)+1 {
			t.Fatalf("submit %d must grow glyphs and answers by one", i)
		}
		if s.Score().Correct != after.Glyphs.Correct() {
			t.Fatalf("score drifted from glyphs")
		}
		s.Advance()
	}
	score := s.Score()
	if score.Correct != 3 || score.Total != 5 {
		t.Fatalf("expected 3/5, got %d/%d", score.Correct, score.Total)
	}
	if score.Glyphs.String() != "✅❌✅✅❌" {
		t.Fatalf("unexpected glyphs %q", score.Glyphs.String())
	}
}

func TestRestoreSessionPositionsAfterLastAnswer(t *testing.T) {
	set := sampleSet(5)
	s := RestoreSession(set, domain.SaveRecord{
		Glyphs:  domain.Glyphs{domain.GlyphCorrect, domain.GlyphIncorrect},
		Answers: map[int]int{0: 1, 1: 3},
	})
	if s.CurrentIndex() != 2 || s.Phase() != PhaseInProgress {
		t.Fatalf("expected resume at 2, got %d (%s)", s.CurrentIndex(), s.Phase())
	}
	if s.Score().Correct != 1 {
		t.Fatalf("expected 1 correct, got %d", s.Score().Correct)
	}

	full := RestoreSession(set, domain.SaveRecord{
		Glyphs: domain.Glyphs{
			domain.GlyphCorrect, domain.GlyphCorrect, domain.GlyphCorrect,
			domain.GlyphCorrect, domain.GlyphCorrect,
		},
	})
	if !full.IsFinal() {
		t.Fatalf("expected final for a complete save")
	}
}

func TestViewReconstructsAnsweredQuestion(t *testing.T) {
	set := sampleSet(3)
	s := RestoreSession(set, domain.SaveRecord{
		Glyphs:  domain.Glyphs{domain.GlyphIncorrect},
		Answers: map[int]int{0: 3},
	})

	view, ok := s.View(0)
	if !ok || !view.Answered {
		t.Fatalf("expected answered view")
	}
	if view.Chosen == nil || *view.Chosen != 3 {
		t.Fatalf("expected chosen 3, got %v", view.Chosen)
	}
	if view.CorrectAnswer == nil || *view.CorrectAnswer != 1 {
		t.Fatalf("expected correct answer 1")
	}
	if view.Correct == nil || *view.Correct {
		t.Fatalf("expected incorrect outcome")
	}

	unanswered, _ := s.View(1)
	if unanswered.Answered || unanswered.CorrectAnswer != nil {
		t.Fatalf("unanswered view must not leak the correct answer")
	}
	if _, ok := s.View(3); ok {
		t.Fatalf("expected no view past the last question")
	}
}

func TestViewFromLegacySaveLacksChoice(t *testing.T) {
	s := RestoreSession(sampleSet(3), domain.SaveRecord{
		Glyphs:  domain.Glyphs{domain.GlyphIncorrect, domain.GlyphCorrect},
		Answers: map[int]int{},
	})
	view, _ := s.View(0)
	if !view.Answered || view.Chosen != nil {
		t.Fatalf("legacy view should be answered without a chosen option: %+v", view)
	}
	if view.CorrectAnswer == nil || *view.CorrectAnswer != 1 {
		t.Fatalf("correct answer highlight must come from the question")
	}
	if view.Correct == nil || *view.Correct {
		t.Fatalf("outcome must come from the glyph")
	}
}

func TestRestoreIgnoresInvalidAnswers(t *testing.T) {
	s := RestoreSession(sampleSet(2), domain.SaveRecord{
		Glyphs:  domain.Glyphs{domain.GlyphCorrect},
		Answers: map[int]int{0: 9, 1: 1},
	})
	rec := s.Record()
	if len(rec.Answers) != 0 {
		t.Fatalf("expected invalid answers dropped, got %v", rec.Answers)
	}
}
