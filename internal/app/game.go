package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

// Outcome reports what a dispatched command did. Rejected commands leave the
// game untouched and set Applied to false.
type Outcome struct {
	Command  string
	Applied  bool
	Feedback *Feedback
}

// Snapshot is the render model handed to front-ends after every command.
type Snapshot struct {
	Date       string        `json:"date"`
	Subtitle   string        `json:"subtitle"`
	Phase      string        `json:"phase"`
	Current    int           `json:"current"`
	Total      int           `json:"total"`
	Answered   int           `json:"answered"`
	Glyphs     string        `json:"glyphs"`
	Correct    int           `json:"correct"`
	CanAdvance bool          `json:"canAdvance"`
	CanRetreat bool          `json:"canRetreat"`
	Question   *QuestionView `json:"question,omitempty"`
	Comment    string        `json:"comment,omitempty"`
	Share      string        `json:"share,omitempty"`
}

// Game owns a single Session and applies user commands to it through the
// Navigator, saving after every accepted answer.
type Game struct {
	session  *Session
	nav      *Navigator
	progress *Progress
	tr       *i18n.Translator
	log      *zap.Logger
	stale    bool
	noticed  bool
}

func newGame(session *Session, progress *Progress, tr *i18n.Translator, log *zap.Logger, stale bool) *Game {
	return &Game{
		session:  session,
		nav:      NewNavigator(session),
		progress: progress,
		tr:       tr,
		log:      log,
		stale:    stale,
	}
}

// Session exposes the underlying state for read-only use.
func (g *Game) Session() *Session {
	return g.session
}

// Navigator exposes the permission checks for front-ends that grey out controls.
func (g *Game) Navigator() *Navigator {
	return g.nav
}

// Date is the effective date of the question set.
func (g *Game) Date() time.Time {
	return g.session.Set().Date
}

// Stale reports whether the question set is older than today.
func (g *Game) Stale() bool {
	return g.stale
}

// TakeNotice returns the stale-content notice the first time it is called and
// nothing afterwards.
func (g *Game) TakeNotice() (string, bool) {
	if !g.stale || g.noticed {
		return "", false
	}
	g.noticed = true
	return g.tr.T(i18n.MsgNoticeStale, map[string]any{"Date": FormatDisplayDate(g.Date())}), true
}

// Dispatch applies cmd if the navigator allows it.
func (g *Game) Dispatch(ctx context.Context, cmd Command) Outcome {
	out := Outcome{Command: cmd.commandName()}
	switch c := cmd.(type) {
	case StartCommand:
		if g.session.Phase() == PhaseNotStarted {
			g.session.Start()
			out.Applied = true
		}
	case AnswerCommand:
		if !g.nav.CanAnswer() {
			break
		}
		fb, err := g.session.SubmitAnswer(g.session.CurrentIndex(), c.Choice)
		if err != nil {
			g.log.Debug("answer rejected", zap.Int("choice", c.Choice), zap.Error(err))
			break
		}
		out.Applied = true
		out.Feedback = &fb
		g.save(ctx)
	case AdvanceCommand:
		out.Applied = g.nav.Advance()
	case RetreatCommand:
		out.Applied = g.nav.Retreat()
	case JumpCommand:
		out.Applied = g.nav.JumpTo(c.Index)
	case SwipeCommand:
		out.Applied = g.nav.Swipe(c.DeltaX)
	}
	return out
}

func (g *Game) save(ctx context.Context) {
	if err := g.progress.Save(ctx, g.Date(), g.session.Record()); err != nil {
		g.log.Warn("persist progress failed", zap.Error(err))
	}
}

// Score is the session's running score.
func (g *Game) Score() Score {
	return g.session.Score()
}

// ShareText is the shareable summary for the current score.
func (g *Game) ShareText() string {
	return ShareText(g.tr, g.Date(), g.session.Score())
}

// Snapshot builds the render model for the current state.
func (g *Game) Snapshot() Snapshot {
	s := g.session
	score := s.Score()
	snap := Snapshot{
		Date:       g.Date().Format(domain.DateLayout),
		Subtitle:   g.tr.T(i18n.MsgSubtitle, map[string]any{"Date": FormatDisplayDate(g.Date())}),
		Phase:      s.Phase().String(),
		Current:    s.CurrentIndex(),
		Total:      score.Total,
		Answered:   s.AnsweredCount(),
		Glyphs:     score.Glyphs.String(),
		Correct:    score.Correct,
		CanAdvance: g.nav.CanAdvance(),
		CanRetreat: g.nav.CanRetreat(),
	}
	if s.Phase() == PhaseInProgress {
		if view, ok := s.View(s.CurrentIndex()); ok {
			snap.Question = &view
		}
	}
	if s.IsFinal() {
		snap.Comment = FinalComment(g.tr, score)
		snap.Share = ShareText(g.tr, g.Date(), score)
	}
	return snap
}
