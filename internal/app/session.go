package app

import (
	"fmt"
	"maps"

	"quizzle/internal/domain"
)

// Phase is the coarse state of a Session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseFinal
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseFinal:
		return "final"
	default:
		return "unknown"
	}
}

// Feedback is returned after an answer is recorded.
type Feedback struct {
	Index         int    `json:"index"`
	Choice        int    `json:"choice"`
	Correct       bool   `json:"correct"`
	CorrectAnswer int    `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
	Source        string `json:"source,omitempty"`
}

// Score summarises a session for the end screen and the share text.
type Score struct {
	Correct int
	Total   int
	Glyphs  domain.Glyphs
}

// QuestionView is what a front-end needs to draw one question, answered or not.
type QuestionView struct {
	Index         int             `json:"index"`
	Question      domain.Question `json:"question"`
	Answered      bool            `json:"answered"`
	Chosen        *int            `json:"chosen,omitempty"`
	CorrectAnswer *int            `json:"correctAnswer,omitempty"`
	Correct       *bool           `json:"correct,omitempty"`
}

// Session holds one day's quiz progress. It is not safe for concurrent use.
type Session struct {
	set     domain.QuestionSet
	started bool
	current int
	answers map[int]int
	glyphs  domain.Glyphs
}

// NewSession returns a session on the splash screen.
func NewSession(set domain.QuestionSet) *Session {
	return &Session{
		set:     set,
		answers: make(map[int]int),
	}
}

// RestoreSession rebuilds a session from a save record, positioned at the first
// unanswered question (or Final when every question has an outcome).
func RestoreSession(set domain.QuestionSet, rec domain.SaveRecord) *Session {
	s := NewSession(set)
	glyphs := rec.Glyphs
	if len(glyphs) > set.Len() {
		glyphs = glyphs[:set.Len()]
	}
	s.glyphs = append(domain.Glyphs(nil), glyphs...)
	for idx, choice := range rec.Answers {
		if idx < 0 || idx >= len(s.glyphs) {
			continue
		}
		if choice < 0 || choice >= len(set.Questions[idx].Answers) {
			continue
		}
		s.answers[idx] = choice
	}
	s.started = true
	s.current = len(s.glyphs)
	return s
}

// Set returns the question set the session plays.
func (s *Session) Set() domain.QuestionSet {
	return s.set
}

// Start leaves the splash screen. It has no effect once started.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true
	s.current = 0
}

func (s *Session) Phase() Phase {
	switch {
	case !s.started:
		return PhaseNotStarted
	case s.IsFinal():
		return PhaseFinal
	default:
		return PhaseInProgress
	}
}

// CurrentIndex is the position in [0, n]; n means Final.
func (s *Session) CurrentIndex() int {
	return s.current
}

func (s *Session) IsFinal() bool {
	return s.started && s.current == s.set.Len()
}

// AnsweredCount is the number of recorded outcomes.
func (s *Session) AnsweredCount() int {
	return len(s.glyphs)
}

// IsComplete reports whether every question has an outcome.
func (s *Session) IsComplete() bool {
	return len(s.glyphs) == s.set.Len()
}

// IsAnswered reports whether question idx has an outcome. Answers are given in
// order, so an index below the glyph count is answered even when the chosen
// option was lost to a legacy save.
func (s *Session) IsAnswered(idx int) bool {
	if _, ok := s.answers[idx]; ok {
		return true
	}
	return idx >= 0 && idx < len(s.glyphs)
}

// SubmitAnswer records the choice for the current question.
func (s *Session) SubmitAnswer(idx, choice int) (Feedback, error) {
	if !s.started || idx != s.current || idx >= s.set.Len() {
		return Feedback{}, fmt.Errorf("%w: got %d, current %d", domain.ErrNotCurrentQuestion, idx, s.current)
	}
	if s.IsAnswered(idx) {
		return Feedback{}, fmt.Errorf("%w: %d", domain.ErrAlreadyAnswered, idx)
	}
	q := s.set.Questions[idx]
	if choice < 0 || choice >= len(q.Answers) {
		return Feedback{}, fmt.Errorf("%w: %d of %d", domain.ErrAnswerOutOfRange, choice, len(q.Answers))
	}

	correct := choice == q.CorrectAnswer
	s.answers[idx] = choice
	s.glyphs = append(s.glyphs, domain.GlyphFor(correct))

	return Feedback{
		Index:         idx,
		Choice:        choice,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Source:        q.Source,
	}, nil
}

// Advance moves one question forward. Bounds are enforced by the Navigator.
func (s *Session) Advance() {
	s.current++
}

// Retreat moves one question back. Bounds are enforced by the Navigator.
func (s *Session) Retreat() {
	s.current--
}

// MoveTo jumps to idx. Bounds are enforced by the Navigator.
func (s *Session) MoveTo(idx int) {
	s.current = idx
}

// Score derives the total from the glyph history.
func (s *Session) Score() Score {
	return Score{
		Correct: s.glyphs.Correct(),
		Total:   s.set.Len(),
		Glyphs:  append(domain.Glyphs(nil), s.glyphs...),
	}
}

// Record snapshots the persisted part of the session.
func (s *Session) Record() domain.SaveRecord {
	return domain.SaveRecord{
		Glyphs:  append(domain.Glyphs(nil), s.glyphs...),
		Answers: maps.Clone(s.answers),
	}
}

// View reconstructs the render state of question idx. For answered questions the
// correct option and the outcome are always known; the chosen option is only
// known when the save kept it.
func (s *Session) View(idx int) (QuestionView, bool) {
	if idx < 0 || idx >= s.set.Len() {
		return QuestionView{}, false
	}
	q := s.set.Questions[idx]
	view := QuestionView{Index: idx, Question: q}
	if !s.IsAnswered(idx) {
		return view, true
	}

	view.Answered = true
	correctAnswer := q.CorrectAnswer
	view.CorrectAnswer = &correctAnswer
	if choice, ok := s.answers[idx]; ok {
		chosen := choice
		view.Chosen = &chosen
	}
	if idx < len(s.glyphs) {
		correct := s.glyphs[idx] == domain.GlyphCorrect
		view.Correct = &correct
	}
	return view, true
}
