package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizzle/internal/app"
	"quizzle/internal/config"
	"quizzle/internal/i18n"
	"quizzle/internal/infra/memory"
	redisinfra "quizzle/internal/infra/redis"
	"quizzle/internal/logger"
	transport "quizzle/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string, envPort string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Serve the quiz over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
	cmd.Flags().StringVar(port, "port", envPort, "port to listen on")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openBackends(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	tr, err := i18n.New(cfg.Locale)
	if err != nil {
		return err
	}

	source := memory.NewCoalescingSource(questionSource(cfg, b, log))
	loader := app.NewLoader(source, cfg.Lookback(app.DefaultLookbackDays), log)
	service := app.NewService(loader, cfg.Storage.SlotPrefix, tr, log)

	var stores transport.SlotStores
	if b.redis != nil {
		slots := redisinfra.NewSlotStore(b.redis, config.TTLDuration(cfg.Redis.TTL, 72*time.Hour))
		stores = func(id string) app.SlotStore { return slots.Device(id) }
	} else {
		log.Warn("redis not configured, progress is kept in memory only")
		slots := memory.NewSlotStore()
		stores = func(id string) app.SlotStore { return slots.Device(id) }
	}

	wsHandler := transport.NewWSHandler(service, stores, log)
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(wsHandler, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info("starting quiz server", zap.String("port", finalPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info("shutting down server")
	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
