package queue

import (
	"time"

	"github.com/google/uuid"
)

// Task type names shared giữa API (producer) và worker (consumer).
const (
	TypeReservationCreated = "reservation:created"
	TypeReservationExpired = "reservation:expired"
)

// ReservationNotificationPayload là payload cho reservation notification tasks.
type ReservationNotificationPayload struct {
	ReservationID uuid.UUID `json:"reservationId"`
	ReaderID      uuid.UUID `json:"readerId"`
	BookID        uuid.UUID `json:"bookId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}
