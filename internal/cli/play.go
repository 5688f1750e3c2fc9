package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"quizzle/internal/app"
	"quizzle/internal/config"
	"quizzle/internal/domain"
	"quizzle/internal/i18n"
	"quizzle/internal/infra/sqlite"
	"quizzle/internal/logger"
)

type playOptions struct {
	dbPath string
	scheme string
	date   string
}

// NewPlayCmd runs the quiz in the terminal, saving progress to a local SQLite file.
func NewPlayCmd(configPath *string) *cobra.Command {
	opts := playOptions{}
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play today's quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "SQLite file for saved progress (default from config)")
	cmd.Flags().StringVar(&opts.scheme, "scheme", "light", "platform colour scheme used when no theme is saved")
	cmd.Flags().StringVar(&opts.date, "date", "", "play as if today were YYYY-MM-DD")
	return cmd
}

func runPlay(ctx context.Context, configPath string, opts playOptions, in io.Reader, out io.Writer) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	now := time.Now
	if opts.date != "" {
		today, err := time.ParseInLocation(domain.DateLayout, opts.date, time.Local)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
		now = func() time.Time { return today }
	}

	dbPath := opts.dbPath
	if dbPath == "" {
		dbPath = cfg.Storage.SQLitePath
	}
	if dbPath == "" {
		dbPath = "quizzle.db"
	}
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}
	loader := app.NewLoader(questionSource(cfg, b, log), cfg.Lookback(app.DefaultLookbackDays), log)
	service := app.NewServiceWithClock(loader, cfg.Storage.SlotPrefix, tr, log, now)

	game, err := service.Open(ctx, store)
	if errors.Is(err, domain.ErrContentUnavailable) {
		fmt.Fprintln(out, tr.T(i18n.MsgErrorUnavailable, nil))
		return err
	}
	if err != nil {
		return err
	}

	themes := app.NewThemes(store, log)
	return newTerminal(in, out, game, themes, tr, domain.Theme(opts.scheme), log).Run(ctx)
}
