package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"quizzle/internal/app"
	"quizzle/internal/domain"
	"quizzle/internal/i18n"
	"quizzle/internal/infra/memory"
)

var today = time.Date(2026, 10, 18, 8, 0, 0, 0, time.Local)

func twoQuestions() domain.QuestionFile {
	q := func(text string) domain.Question {
		return domain.Question{
			Question:      text,
			Category:      domain.CategoryNational,
			Answers:       []domain.Answer{{Text: "no"}, {Text: "yes"}},
			CorrectAnswer: 1,
			Explanation:   "It was yes.",
			Source:        "https://example.com/story",
		}
	}
	return domain.QuestionFile{Questions: []domain.Question{q("first?"), q("second?")}}
}

func openGame(t *testing.T, files map[string]domain.QuestionFile, store app.SlotStore) (*app.Game, *i18n.Translator) {
	t.Helper()
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("translator: %v", err)
	}
	log := zap.NewNop()
	loader := app.NewLoader(memory.NewStaticSource(files), app.DefaultLookbackDays, log)
	service := app.NewServiceWithClock(loader, app.DefaultSlotPrefix, tr, log, func() time.Time { return today })
	game, err := service.Open(context.Background(), store)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return game, tr
}

func playScript(t *testing.T, game *app.Game, tr *i18n.Translator, store app.SlotStore, script string) string {
	t.Helper()
	var out bytes.Buffer
	themes := app.NewThemes(store, zap.NewNop())
	term := newTerminal(strings.NewReader(script), &out, game, themes, tr, domain.ThemeLight, zap.NewNop())
	if err := term.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out.String()
}

func TestTerminalPlaysThroughToShare(t *testing.T) {
	store := memory.NewSlotStore()
	game, tr := openGame(t, map[string]domain.QuestionFile{"2026-10-18": twoQuestions()}, store)

	script := strings.Join([]string{
		"next",
		"start",
		"2",
		"next",
		"1",
		"back",
		"jump 2",
		"swipe -80",
		"next",
		"share",
		"theme",
		"q",
		"start",
	}, "\n")
	out := playScript(t, game, tr, store, script)

	for _, want := range []string{
		"theme: light",
		"Daily news quiz for Oct 18, 2026",
		"2 questions today",
		"[1/2]",
		"Correct! It was yes.",
		"source: https://example.com/story",
		"Incorrect! It was yes.",
		"1/2",
		"Quizzle Oct 18, 2026",
		"✅❌",
		"theme: dark",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "not allowed right now") != 2 {
		t.Fatalf("expected next before start and next at final to be rejected:\n%s", out)
	}
	if !game.Session().IsFinal() {
		t.Fatalf("expected final phase")
	}

	saved, err := store.Get(context.Background(), app.SlotKey(app.DefaultSlotPrefix, today))
	if err != nil || !strings.Contains(saved, "✅❌") {
		t.Fatalf("unexpected saved slot %q %v", saved, err)
	}
}

func TestTerminalResumesAndRejectsBadInput(t *testing.T) {
	store := memory.NewSlotStore()
	files := map[string]domain.QuestionFile{"2026-10-17": twoQuestions()}
	game, tr := openGame(t, files, store)
	playScript(t, game, tr, store, "start\n2\n")

	resumed, tr := openGame(t, files, store)
	out := playScript(t, resumed, tr, store, "share\nbogus\njump\nswipe left\n3\n")

	if !strings.Contains(out, "Here's the one from Oct 17, 2026") {
		t.Fatalf("expected stale notice:\n%s", out)
	}
	if !strings.Contains(out, "[2/2]") {
		t.Fatalf("expected resume at second question:\n%s", out)
	}
	for _, want := range []string{
		"finish the quiz to share",
		`unknown command "bogus"`,
		"usage: jump N",
		"usage: swipe DX",
		"not allowed right now",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunPlayReportsUnavailableContent(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "content:\n  dir: " + filepath.Join(dir, "empty") + "\nstorage:\n  sqlite_path: " + filepath.Join(dir, "play.db") + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	err := runPlay(context.Background(), cfgPath, playOptions{scheme: "dark", date: "2026-10-18"}, strings.NewReader(""), &out)
	if !errors.Is(err, domain.ErrContentUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if !strings.Contains(out.String(), "No quiz is available right now") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunPlayFromDirectory(t *testing.T) {
	dir := t.TempDir()
	questions := filepath.Join(dir, "questions")
	if err := os.Mkdir(questions, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	body := `{"questions":[{"question":"Who?","category":"Global","answers":[{"text":"A"},{"text":"B"}],"correctAnswer":0,"explanation":"A."}]}`
	if err := os.WriteFile(filepath.Join(questions, "2026-10-18.json"), []byte(body), 0o644); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "content:\n  dir: " + questions + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	opts := playOptions{dbPath: filepath.Join(dir, "play.db"), scheme: "dark", date: "2026-10-18"}
	var out bytes.Buffer
	if err := runPlay(context.Background(), cfgPath, opts, strings.NewReader("start\n1\nnext\nq\n"), &out); err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out.String(), "theme: dark") || !strings.Contains(out.String(), "1/1") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}

	// Progress survives in the SQLite file.
	out.Reset()
	if err := runPlay(context.Background(), cfgPath, opts, strings.NewReader(""), &out); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out.String(), "1/1") {
		t.Fatalf("expected saved final state:\n%s", out.String())
	}
}
