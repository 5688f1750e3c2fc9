package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizzle/internal/config"
	"quizzle/internal/domain"
	"quizzle/internal/infra/content"
	pgsource "quizzle/internal/infra/postgres"
	redisinfra "quizzle/internal/infra/redis"
	"quizzle/internal/logger"
)

// NewImportCmd publishes a question file to the configured Postgres and/or Redis.
func NewImportCmd(configPath *string) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Publish a question file (JSON or YAML) for a date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, args[0], date)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "quiz date YYYY-MM-DD (default: file name)")
	return cmd
}

func runImport(ctx context.Context, configPath, path, date string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if date == "" {
		date = stem
	}
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return fmt.Errorf("quiz date %q: %w", date, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	file, err := content.Decode(base, data)
	if err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return err
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()
	if b.pool == nil && b.redis == nil {
		return errors.New("neither postgres nor redis is configured")
	}

	if b.pool != nil {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
		if err := pgsource.NewQuestionSource(b.pool).Publish(ctx, day, file); err != nil {
			return err
		}
		log.Info("published to postgres", zap.String("date", date), zap.Int("questions", len(file.Questions)))
	}
	if b.redis != nil {
		if err := redisinfra.NewQuestionSource(b.redis, 0).Publish(ctx, day, file); err != nil {
			return err
		}
		log.Info("published to redis", zap.String("date", date), zap.Int("questions", len(file.Questions)))
	}
	return nil
}
