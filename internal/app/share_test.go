package app

import (
	"strings"
	"testing"

	"quizzle/internal/domain"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		correct, total int
		want           Tier
	}{
		{5, 5, TierFlawless},
		{4, 5, TierSharp},
		{3, 5, TierSolid},
		{2, 5, TierWarming},
		{1, 5, TierWarming},
		{0, 5, TierFresh},
		{0, 0, TierFresh},
		{8, 10, TierSharp},
	}
	for _, tc := range cases {
		if got := TierFor(tc.correct, tc.total); got != tc.want {
			t.Errorf("TierFor(%d, %d)=%s, want %s", tc.correct, tc.total, got, tc.want)
		}
	}
}

// Scenario D: a perfect run.
func TestShareTextForPerfectRun(t *testing.T) {
	tr := newTranslator(t)
	s := NewSession(sampleSet(5))
	nav := NewNavigator(s)
	s.Start()
	for i := 0; i < 5; i++ {
		if _, err := s.SubmitAnswer(i, 1); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		nav.Advance()
	}

	score := s.Score()
	if score.Correct != 5 || TierFor(score.Correct, score.Total) != TierFlawless {
		t.Fatalf("expected a flawless 5/5, got %d/%d", score.Correct, score.Total)
	}
	if FinalComment(tr, score) != "Flawless! You're on top of the news." {
		t.Fatalf("unexpected comment %q", FinalComment(tr, score))
	}

	text := ShareText(tr, day(2026, 10, 18), score)
	want := "Quizzle Oct 18, 2026\n5/5\n\n" + domain.CategoryRow + "\n✅✅✅✅✅\n"
	if text != want {
		t.Fatalf("share text:\n%q\nwant:\n%q", text, want)
	}
	if strings.Count(text, domain.GlyphCorrect.String()) != 5 {
		t.Fatalf("expected 5 correct glyphs")
	}
}
