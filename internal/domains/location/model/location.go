package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrLocationNotFound = apperror.NotFound("location not found")
	ErrDuplicateSlug    = apperror.Conflict("location with this slug already exists")
)

// Location là vị trí kệ sách trong thư viện.
type Location struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Floor       *string   `json:"floor,omitempty" db:"floor"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateLocationRequest struct {
	Name        string  `json:"name"`
	Floor       *string `json:"floor,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r CreateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Floor, validation.Length(0, 50)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

type UpdateLocationRequest struct {
	Name        *string `json:"name,omitempty"`
	Floor       *string `json:"floor,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r UpdateLocationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Floor, validation.Length(0, 50)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

type CreateManyLocationsRequest struct {
	Locations []CreateLocationRequest `json:"locations"`
}

func (r CreateManyLocationsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Locations, validation.Required, validation.Length(1, 100)),
	)
}
