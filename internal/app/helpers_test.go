package app

import (
	"fmt"
	"testing"
	"time"

	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleFile builds n questions whose correct answer is always option 1.
func sampleFile(n int) domain.QuestionFile {
	categories := []domain.Category{
		domain.CategoryGlobal,
		domain.CategoryNational,
		domain.CategoryLocal,
		domain.CategorySports,
		domain.CategoryEntertainment,
	}
	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = domain.Question{
			Question: fmt.Sprintf("Question %d?", i+1),
			Category: categories[i%len(categories)],
			Answers: []domain.Answer{
				{Text: "A"}, {Text: "B"}, {Text: "C"}, {Text: "D"},
			},
			CorrectAnswer: 1,
			Explanation:   fmt.Sprintf("Because %d.", i+1),
			Source:        "https://example.com/news",
		}
	}
	return domain.QuestionFile{Questions: questions}
}

func sampleSet(n int) domain.QuestionSet {
	return domain.QuestionSet{Date: day(2026, 10, 18), Questions: sampleFile(n).Questions}
}

func newTranslator(t *testing.T) *i18n.Translator {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n: %v", err)
	}
	return tr
}
