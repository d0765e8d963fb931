package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrPublisherNotFound = apperror.NotFound("publisher not found")
	ErrDuplicateSlug     = apperror.Conflict("publisher with this slug already exists")
)

type Publisher struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Phone     *string   `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreatePublisherRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (r CreatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Address, validation.Length(0, 500)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

type UpdatePublisherRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (r UpdatePublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Address, validation.Length(0, 500)),
		validation.Field(&r.Phone, validation.Length(0, 20)),
	)
}

type CreateManyPublishersRequest struct {
	Publishers []CreatePublisherRequest `json:"publishers"`
}

func (r CreateManyPublishersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Publishers, validation.Required, validation.Length(1, 100)),
	)
}
