package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for question files and save keys.
const DateLayout = "2006-01-02"

// Category groups questions by news section.
type Category string

const (
	CategoryGlobal        Category = "Global"
	CategoryNational      Category = "National"
	CategoryLocal         Category = "Local"
	CategorySports        Category = "Sports"
	CategoryEntertainment Category = "Entertainment"
)

var categoryIcons = map[Category]string{
	CategoryGlobal:        "🌍",
	CategoryNational:      "🇦🇺",
	CategoryLocal:         "📍",
	CategorySports:        "⚽",
	CategoryEntertainment: "🎬",
}

// CategoryRow is the fixed icon banner printed in the shareable summary.
const CategoryRow = "🌍🇦🇺📍⚽🎬"

// Icon returns the category's emoji, or an empty string for unknown categories.
func (c Category) Icon() string {
	return categoryIcons[c]
}

// Answer is one selectable option of a question.
type Answer struct {
	Text string `json:"text" yaml:"text"`
}

// Question models a multiple-choice news question with exactly one correct answer.
type Question struct {
	Question      string   `json:"question" yaml:"question"`
	Category      Category `json:"category" yaml:"category"`
	Answers       []Answer `json:"answers" yaml:"answers"`
	CorrectAnswer int      `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string   `json:"explanation" yaml:"explanation"`
	Source        string   `json:"source,omitempty" yaml:"source,omitempty"`
}

// Validate checks that the correct answer indexes a real option.
func (q Question) Validate() error {
	if len(q.Answers) == 0 {
		return fmt.Errorf("%w: question %q has no answers", ErrMalformedQuestionSet, q.Question)
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Answers) {
		return fmt.Errorf("%w: question %q has correct answer %d of %d",
			ErrMalformedQuestionSet, q.Question, q.CorrectAnswer, len(q.Answers))
	}
	return nil
}

// QuestionFile is the wire shape of a dated question file.
type QuestionFile struct {
	Questions []Question `json:"questions" yaml:"questions"`
}

// Validate rejects empty files and questions with out-of-range answers.
func (f QuestionFile) Validate() error {
	if len(f.Questions) == 0 {
		return fmt.Errorf("%w: no questions", ErrMalformedQuestionSet)
	}
	for _, q := range f.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuestionSet is the immutable, non-empty list of questions for one effective date.
type QuestionSet struct {
	Date      time.Time
	Questions []Question
}

// Len returns the number of questions in the set.
func (s QuestionSet) Len() int {
	return len(s.Questions)
}

// Glyph is the one-character outcome marker of an answered question.
type Glyph rune

const (
	GlyphCorrect   Glyph = '✅'
	GlyphIncorrect Glyph = '❌'
)

// GlyphFor maps an outcome to its glyph.
func GlyphFor(correct bool) Glyph {
	if correct {
		return GlyphCorrect
	}
	return GlyphIncorrect
}

func (g Glyph) String() string {
	return string(rune(g))
}

// Glyphs is an ordered outcome history, in answer order.
type Glyphs []Glyph

func (gs Glyphs) String() string {
	var b strings.Builder
	for _, g := range gs {
		b.WriteRune(rune(g))
	}
	return b.String()
}

// Correct counts the CORRECT glyphs.
func (gs Glyphs) Correct() int {
	n := 0
	for _, g := range gs {
		if g == GlyphCorrect {
			n++
		}
	}
	return n
}

// ParseGlyphs decodes a glyph string; any other character makes it invalid.
func ParseGlyphs(raw string) (Glyphs, bool) {
	out := make(Glyphs, 0, len(raw)/3)
	for _, r := range raw {
		switch Glyph(r) {
		case GlyphCorrect, GlyphIncorrect:
			out = append(out, Glyph(r))
		default:
			return nil, false
		}
	}
	return out, true
}

// SaveRecord is everything needed to resume a day's quiz.
// Position and score are derived from Glyphs and never stored.
type SaveRecord struct {
	Glyphs  Glyphs
	Answers map[int]int
}

// SaveFormat tells which encoding a save slot value was decoded from.
type SaveFormat int

const (
	SaveFormatStructured SaveFormat = iota + 1
	SaveFormatLegacy
)

func (f SaveFormat) String() string {
	switch f {
	case SaveFormatStructured:
		return "structured"
	case SaveFormatLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
