package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

// Status transitions: pending → fulfilled | cancelled | expired.
// Mọi transition khác đều invalid.
const (
	StatusPending   = "pending"
	StatusFulfilled = "fulfilled"
	StatusCancelled = "cancelled"
	StatusExpired   = "expired"
)

var (
	ErrReservationNotFound = apperror.NotFound("reservation not found")
	ErrInvalidTransition   = apperror.Conflict("reservation is not pending")
)

type Reservation struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ReaderID   uuid.UUID `json:"reader_id" db:"reader_id"`
	BookID     uuid.UUID `json:"book_id" db:"book_id"`
	Status     string    `json:"status" db:"status"`
	ReservedAt time.Time `json:"reserved_at" db:"reserved_at"`
	ExpiresAt  time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

type CreateReservationRequest struct {
	ReaderID  uuid.UUID  `json:"reader_id"`
	BookID    uuid.UUID  `json:"book_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func (r CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReaderID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.BookID, validation.Required, validation.By(notNilUUID)),
	)
}

func notNilUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
