package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrReaderNotFound     = apperror.NotFound("reader not found")
	ErrCardNumberTaken    = apperror.Conflict("card number already in use")
	ErrDuplicateSlug      = apperror.Conflict("reader with this slug already exists")
	ErrReaderTypeRequired = apperror.InvalidInput("reader type does not exist")
)

type Reader struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	FullName     string     `json:"full_name" db:"full_name"`
	Slug         string     `json:"slug" db:"slug"`
	CardNumber   string     `json:"card_number" db:"card_number"`
	Email        *string    `json:"email,omitempty" db:"email"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty" db:"date_of_birth"`
	ReaderTypeID uuid.UUID  `json:"reader_type_id" db:"reader_type_id"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateReaderRequest struct {
	FullName     string     `json:"full_name"`
	CardNumber   string     `json:"card_number"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	ReaderTypeID uuid.UUID  `json:"reader_type_id"`
}

func (r CreateReaderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CardNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Phone, validation.Length(0, 20)),
		validation.Field(&r.ReaderTypeID, validation.Required, validation.By(notNilUUID)),
	)
}

type UpdateReaderRequest struct {
	FullName     *string    `json:"full_name,omitempty"`
	CardNumber   *string    `json:"card_number,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	ReaderTypeID *uuid.UUID `json:"reader_type_id,omitempty"`
}

func (r UpdateReaderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.CardNumber, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&r.Email, is.Email),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

type CreateManyReadersRequest struct {
	Readers []CreateReaderRequest `json:"readers"`
}

func (r CreateManyReadersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Readers, validation.Required, validation.Length(1, 500)),
	)
}

func notNilUUID(value interface{}) error {
	id, ok := value.(uuid.UUID)
	if ok && id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
