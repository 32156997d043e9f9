package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/domain/event"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"chat-relay/runtime/workers"
	"chat-relay/server"
	"chat-relay/services"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Relay terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes
// error reporting, so that defers (database close, worker drain) always execute
// before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	logger := logs.GetLoggerFromString(config.LogLevel)
	ctx := context.Background()

	// 2. Storage (BadgerDB for the message log, Postgres for memberships)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("message log opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	pg, err := repositories.Connect(config.PostgresDSN)
	if err != nil {
		return exitRuntime, fmt.Errorf("postgres connection failed: %w", err)
	}
	defer func() {
		logger.Info("Closing Postgres...")
		_ = pg.Close()
	}()
	if err := repositories.Migrate(ctx, pg); err != nil {
		return exitRuntime, fmt.Errorf("postgres migration failed: %w", err)
	}

	observability.Init()

	messageRepository := repositories.NewMessageRepository(db, logger)
	membershipRepository := repositories.NewMembershipRepository(pg)

	// 3. Supervision & Orchestration
	deliveries := make(chan domain.Message, config.DeliveryBufferSize)
	events := make(chan event.DomainEvent, config.EventBufferSize)

	sup := workers.NewSupervisor(logger)
	reconciler := workers.NewReconcilerWorker(logger, config.ReconcilerQueueSize,
		messageRepository, membershipRepository, events,
		config.ReconcilerAttempts, config.ReconcilerBackoff)

	orchestrator := runtime.NewOrchestrator(logger, runtime.Config{
		RoomTailSize:      config.RoomTailSize,
		SweepInterval:     config.SweepInterval,
		AwayAfter:         config.AwayAfter,
		UnresponsiveAfter: config.UnresponsiveAfter,
		MetricInterval:    config.MetricInterval,
		HealthInterval:    config.HealthInterval,
	}, sup, messageRepository, membershipRepository, reconciler, deliveries, events)

	// 4. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	orchestrator.Start(ctx)

	// 5. Transport
	tokens := auth.NewTokenValidator(config.AuthSecret, config.AuthIssuer)
	chatService := services.NewChatService(orchestrator)
	srv := server.New(logger, chatService, tokens, server.Config{
		ConnectionBufferSize:      config.ConnectionBufferSize,
		ConnectionEventBufferSize: config.ConnectionEventBufferSize,
		MaxPayloadLength:          config.MaxPayloadLength,
		WriteWait:                 config.WriteWait,
		PongWait:                  config.PongWait,
		PingPeriod:                config.PingPeriod,
		HistoryLimit:              config.HistoryLimit,
	})

	errChan := make(chan error, 1)
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	go func() {
		logger.Info("Starting relay server", "address", address, "at", time.Now().UTC())
		if err := srv.Listen(address); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	// 6. Wait for Stop or Error
	// The execution blocks here until either a signal is received or the server crashes.
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errChan:
		return exitRuntime, err
	}

	// 7. Final Cleanup (Graceful Shutdown)
	// Active sockets are closed first, then the workers drain their queues.
	logger.Info("Shutting down gracefully...")
	if err := srv.Shutdown(); err != nil {
		logger.Warn("Server shutdown error", "error", err)
	}
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}

func buildBadgerOpts(config Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.DataDir)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.INFO)
	}

	return options
}
