package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/megatictactoe/internal/config"
	"github.com/rocketscienceinc/megatictactoe/internal/entity"
	"github.com/rocketscienceinc/megatictactoe/internal/metrics"
	"github.com/rocketscienceinc/megatictactoe/internal/transport/redis"
	"github.com/rocketscienceinc/megatictactoe/internal/usecase"
	"github.com/rocketscienceinc/megatictactoe/transport/console"
	"github.com/rocketscienceinc/megatictactoe/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	state := entity.NewGameState()
	log.Info("Starting new game", "gameID", state.ID)

	var observers []usecase.Observer

	if conf.Redis.Enabled {
		client, err := redis.Connect(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		publisher := redis.NewSnapshotPublisher(client, conf.Redis.ChannelPrefix)
		observers = append(observers, publisher)
		log.Info("Publishing snapshots", "channel", publisher.Channel(state.ID))
	}

	gameManager := usecase.NewGameManager(logger, state, metrics.New(registry), observers...)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPPort != "" {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			if httpErr := rest.Start(ctx, conf.HTTPPort, registry); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run console
	consoleErrCh := make(chan error, 1)
	go func() {
		consoleErrCh <- console.New(logger, gameManager, in, out).Run(ctx)
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-consoleErrCh:
		if err != nil {
			return fmt.Errorf("console error: %w", err)
		}

		log.Info("Console stopped, shutting down")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
