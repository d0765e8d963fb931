package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"library-backend/internal/infrastructure/queue"
)

type taskHandlers struct{}

func newTaskHandlers() *taskHandlers {
	return &taskHandlers{}
}

// HandleReservationCreated consume reservation:created tasks.
// Hiện tại notification channel là log; mail/SMS gateway cắm vào đây khi có.
func (h *taskHandlers) HandleReservationCreated(ctx context.Context, t *asynq.Task) error {
	var payload queue.ReservationNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	log.Info().
		Str("reservation_id", payload.ReservationID.String()).
		Str("reader_id", payload.ReaderID.String()).
		Str("book_id", payload.BookID.String()).
		Time("expires_at", payload.ExpiresAt).
		Msg("reservation created notification")

	return nil
}
