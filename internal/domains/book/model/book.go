package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrBookNotFound  = apperror.NotFound("book not found")
	ErrDuplicateSlug = apperror.Conflict("book with this slug already exists")
	ErrBadReference  = apperror.InvalidInput("referenced publisher or location does not exist")
)

type Book struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Slug        string     `json:"slug" db:"slug"`
	ISBN        *string    `json:"isbn,omitempty" db:"isbn"`
	Description *string    `json:"description,omitempty" db:"description"`
	PublishYear *int       `json:"publish_year,omitempty" db:"publish_year"`
	PublisherID *uuid.UUID `json:"publisher_id,omitempty" db:"publisher_id"`
	LocationID  *uuid.UUID `json:"location_id,omitempty" db:"location_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateBookRequest struct {
	Title       string     `json:"title"`
	ISBN        *string    `json:"isbn,omitempty"`
	Description *string    `json:"description,omitempty"`
	PublishYear *int       `json:"publish_year,omitempty"`
	PublisherID *uuid.UUID `json:"publisher_id,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 500)),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.PublishYear, validation.Min(0), validation.Max(9999)),
	)
}

type UpdateBookRequest struct {
	Title       *string    `json:"title,omitempty"`
	ISBN        *string    `json:"isbn,omitempty"`
	Description *string    `json:"description,omitempty"`
	PublishYear *int       `json:"publish_year,omitempty"`
	PublisherID *uuid.UUID `json:"publisher_id,omitempty"`
	LocationID  *uuid.UUID `json:"location_id,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 500)),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.PublishYear, validation.Min(0), validation.Max(9999)),
	)
}

type CreateManyBooksRequest struct {
	Books []CreateBookRequest `json:"books"`
}

func (r CreateManyBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Books, validation.Required, validation.Length(1, 500)),
	)
}
