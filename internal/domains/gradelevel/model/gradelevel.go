package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrGradeLevelNotFound = apperror.NotFound("grade level not found")
	ErrNameTaken          = apperror.Conflict("grade level name already in use")
	ErrDuplicateSlug      = apperror.Conflict("grade level with this slug already exists")
)

// GradeLevel là khối lớp (vd "Lớp 1"). Name là business-unique field.
type GradeLevel struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Slug         string    `json:"slug" db:"slug"`
	DisplayOrder int       `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type CreateGradeLevelRequest struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

func (r CreateGradeLevelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.DisplayOrder, validation.Min(0)),
	)
}

type UpdateGradeLevelRequest struct {
	Name         *string `json:"name,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

func (r UpdateGradeLevelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
	)
}

type CreateManyGradeLevelsRequest struct {
	GradeLevels []CreateGradeLevelRequest `json:"grade_levels"`
}

func (r CreateManyGradeLevelsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GradeLevels, validation.Required, validation.Length(1, 100)),
	)
}
