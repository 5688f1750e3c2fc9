package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"quizzle/internal/app"
	"quizzle/internal/domain"
	"quizzle/internal/i18n"
)

const terminalHelp = `commands:
  start           begin the quiz
  1..9            answer with that option
  next | n        continue (or swipe -60)
  back | p        previous question (or swipe 60)
  jump N          revisit answered question N
  swipe DX        horizontal drag of DX pixels
  share           print the shareable summary
  theme           toggle light/dark
  quit | q        leave
`

// terminal is a line-based front-end for one game.
type terminal struct {
	in            *bufio.Scanner
	out           io.Writer
	game          *app.Game
	themes        *app.Themes
	tr            *i18n.Translator
	platformTheme domain.Theme
	log           *zap.Logger
}

func newTerminal(in io.Reader, out io.Writer, game *app.Game, themes *app.Themes, tr *i18n.Translator, platformTheme domain.Theme, log *zap.Logger) *terminal {
	return &terminal{
		in:            bufio.NewScanner(in),
		out:           out,
		game:          game,
		themes:        themes,
		tr:            tr,
		platformTheme: platformTheme,
		log:           log,
	}
}

// Run reads commands until quit or end of input.
func (t *terminal) Run(ctx context.Context) error {
	fmt.Fprintf(t.out, "theme: %s\n", t.themes.Current(ctx, t.platformTheme))
	if notice, ok := t.game.TakeNotice(); ok {
		fmt.Fprintln(t.out, notice)
	}
	t.render()

	for t.in.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(t.in.Text())
		if line == "" {
			continue
		}
		if !t.handle(ctx, line) {
			return nil
		}
	}
	return t.in.Err()
}

func (t *terminal) handle(ctx context.Context, line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	var cmd app.Command

	switch fields[0] {
	case "q", "quit", "exit":
		return false
	case "?", "help":
		fmt.Fprint(t.out, terminalHelp)
		return true
	case "start", "s":
		cmd = app.StartCommand{}
	case "next", "n", "continue":
		cmd = app.AdvanceCommand{}
	case "back", "p", "prev":
		cmd = app.RetreatCommand{}
	case "jump", "j":
		n, ok := intArg(fields)
		if !ok {
			fmt.Fprintln(t.out, "usage: jump N")
			return true
		}
		cmd = app.JumpCommand{Index: n - 1}
	case "swipe":
		if len(fields) < 2 {
			fmt.Fprintln(t.out, "usage: swipe DX")
			return true
		}
		dx, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			fmt.Fprintln(t.out, "usage: swipe DX")
			return true
		}
		cmd = app.SwipeCommand{DeltaX: dx}
	case "share":
		if !t.game.Session().IsFinal() {
			fmt.Fprintln(t.out, "finish the quiz to share your result")
			return true
		}
		fmt.Fprint(t.out, t.game.ShareText())
		return true
	case "theme":
		theme, err := t.themes.Toggle(ctx, t.platformTheme)
		if err != nil {
			t.log.Warn("persist theme failed", zap.Error(err))
		}
		fmt.Fprintf(t.out, "theme: %s\n", theme)
		return true
	default:
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Fprintf(t.out, "unknown command %q (try help)\n", fields[0])
			return true
		}
		cmd = app.AnswerCommand{Choice: n - 1}
	}

	out := t.game.Dispatch(ctx, cmd)
	if !out.Applied {
		fmt.Fprintln(t.out, "not allowed right now")
		return true
	}
	if out.Feedback != nil {
		t.renderFeedback(*out.Feedback)
		return true
	}
	t.render()
	return true
}

func intArg(fields []string) (int, bool) {
	if len(fields) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[1])
	return n, err == nil
}

func (t *terminal) renderFeedback(fb app.Feedback) {
	result := t.tr.T(i18n.MsgResultIncorrect, nil)
	if fb.Correct {
		result = t.tr.T(i18n.MsgResultCorrect, nil)
	}
	fmt.Fprintf(t.out, "%s! %s\n", result, fb.Explanation)
	if fb.Source != "" {
		fmt.Fprintf(t.out, "source: %s\n", fb.Source)
	}
	fmt.Fprintln(t.out, "(next to continue)")
}

func (t *terminal) render() {
	snap := t.game.Snapshot()
	switch snap.Phase {
	case app.PhaseNotStarted.String():
		fmt.Fprintln(t.out, snap.Subtitle)
		fmt.Fprintf(t.out, "%d questions today. Type start to begin.\n", snap.Total)
	case app.PhaseFinal.String():
		fmt.Fprintf(t.out, "%d/%d %s\n", snap.Correct, snap.Total, snap.Comment)
		fmt.Fprint(t.out, snap.Share)
	default:
		if snap.Question != nil {
			t.renderQuestion(snap)
		}
	}
}

func (t *terminal) renderQuestion(snap app.Snapshot) {
	view := snap.Question
	q := view.Question
	fmt.Fprintf(t.out, "[%d/%d] %s %s  %s\n", view.Index+1, snap.Total, q.Category.Icon(), q.Category, snap.Glyphs)
	fmt.Fprintln(t.out, q.Question)
	for i, answer := range q.Answers {
		marker := " "
		if view.CorrectAnswer != nil && *view.CorrectAnswer == i {
			marker = "✓"
		} else if view.Chosen != nil && *view.Chosen == i {
			marker = "✗"
		}
		fmt.Fprintf(t.out, " %s %d) %s\n", marker, i+1, answer.Text)
	}
	if view.Answered {
		if view.Correct != nil && *view.Correct {
			fmt.Fprintln(t.out, t.tr.T(i18n.MsgResultCorrect, nil))
		} else {
			fmt.Fprintln(t.out, t.tr.T(i18n.MsgResultIncorrect, nil))
		}
		fmt.Fprintln(t.out, q.Explanation)
	}
}
