package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	reservationrepo "library-backend/internal/domains/reservation/repository"
	reservationservice "library-backend/internal/domains/reservation/service"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/queue"
	"library-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load database config")
	}

	ctx := context.Background()
	db := database.NewPostgresDB(dbConfig)
	if err := db.Connect(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Worker chỉ cần reservation service để sweep; notification tasks
	// đã nằm trên queue nên dùng NoopNotifier.
	reservationService := reservationservice.NewReservationService(
		reservationrepo.NewPostgresRepository(db.Pool),
		nil, nil,
		queue.NoopNotifier{},
	)

	srv := setupAsynqServer(cfg, newTaskHandlers())
	scheduler := setupScheduler(cfg, reservationService)

	log.Info().
		Int("concurrency", cfg.Worker.Concurrency).
		Str("sweep_spec", cfg.Worker.ExpireSweepSpec).
		Msg("worker started")

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqWorker, scheduler *expireScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("gracefully stopping worker")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("worker stopped")
}
