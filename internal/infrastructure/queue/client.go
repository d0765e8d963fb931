package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Notifier là producer interface mà reservation service dùng.
// Worker ở đầu bên kia của queue; service không biết gì về asynq.
type Notifier interface {
	NotifyReservationCreated(ctx context.Context, payload ReservationNotificationPayload) error
}

// AsynqNotifier implements Notifier trên asynq/Redis.
type AsynqNotifier struct {
	client *asynq.Client
}

func NewAsynqNotifier(redisAddr, redisPassword string, redisDB int) *AsynqNotifier {
	return &AsynqNotifier{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisAddr,
			Password: redisPassword,
			DB:       redisDB,
		}),
	}
}

func (n *AsynqNotifier) NotifyReservationCreated(ctx context.Context, payload ReservationNotificationPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeReservationCreated, data)
	info, err := n.client.EnqueueContext(ctx, task,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	log.Info().
		Str("task_id", info.ID).
		Str("reservation_id", payload.ReservationID.String()).
		Msg("reservation notification enqueued")

	return nil
}

func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}

// NoopNotifier dùng khi worker/Redis không được cấu hình (tests, dev tối giản).
type NoopNotifier struct{}

func (NoopNotifier) NotifyReservationCreated(ctx context.Context, payload ReservationNotificationPayload) error {
	log.Debug().Str("reservation_id", payload.ReservationID.String()).Msg("notification skipped (noop notifier)")
	return nil
}
