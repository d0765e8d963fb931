package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	reservationservice "library-backend/internal/domains/reservation/service"
)

// expireScheduler chạy cron sweep chuyển pending reservation quá hạn
// sang expired.
type expireScheduler struct {
	cron *cron.Cron
}

func setupScheduler(cfg *config.Config, reservations reservationservice.ServiceInterface) *expireScheduler {
	c := cron.New()

	_, err := c.AddFunc(cfg.Worker.ExpireSweepSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := reservations.ExpireDue(ctx, time.Now()); err != nil {
			log.Error().Err(err).Msg("reservation expiry sweep failed")
		}
	})
	if err != nil {
		log.Fatal().Err(err).Str("spec", cfg.Worker.ExpireSweepSpec).Msg("failed to register expiry sweep")
	}

	c.Start()
	return &expireScheduler{cron: c}
}

func (s *expireScheduler) Shutdown() {
	log.Info().Msg("shutting down scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
}
