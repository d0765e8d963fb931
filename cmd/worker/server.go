package main

import (
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	"library-backend/internal/infrastructure/queue"
)

type asynqWorker struct {
	srv *asynq.Server
}

func setupAsynqServer(cfg *config.Config, handlers *taskHandlers) *asynqWorker {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: cfg.Worker.Concurrency,
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeReservationCreated, handlers.HandleReservationCreated)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("asynq server failed")
		}
	}()

	return &asynqWorker{srv: srv}
}

func (w *asynqWorker) Shutdown() {
	log.Info().Msg("shutting down asynq server")
	w.srv.Shutdown()
}
