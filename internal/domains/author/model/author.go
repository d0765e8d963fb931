package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

// Domain errors. Wrap apperror kinds để handler map status code qua errors.Is.
var (
	ErrAuthorNotFound = apperror.NotFound("author not found")
	ErrDuplicateSlug  = apperror.Conflict("author with this slug already exists")
)

type Author struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AuthorName  string    `json:"author_name" db:"author_name"`
	Slug        string    `json:"slug" db:"slug"`
	Nationality *string   `json:"nationality,omitempty" db:"nationality"`
	Bio         *string   `json:"bio,omitempty" db:"bio"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateAuthorRequest struct {
	AuthorName  string  `json:"author_name"`
	Nationality *string `json:"nationality,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Nationality, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
	)
}

// UpdateAuthorRequest: chỉ field non-nil được merge (PATCH behavior).
type UpdateAuthorRequest struct {
	AuthorName  *string `json:"author_name,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Bio         *string `json:"bio,omitempty"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorName, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.Nationality, validation.Length(0, 100)),
		validation.Field(&r.Bio, validation.Length(0, 5000)),
	)
}

type CreateManyAuthorsRequest struct {
	Authors []CreateAuthorRequest `json:"authors"`
}

func (r CreateManyAuthorsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Authors, validation.Required, validation.Length(1, 100)),
	)
}
