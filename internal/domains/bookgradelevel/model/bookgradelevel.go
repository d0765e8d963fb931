package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrLinkNotFound  = apperror.NotFound("book-grade-level link not found")
	ErrDuplicateLink = apperror.Conflict("book-grade-level link already exists")
)

// BookGradeLevel gắn book với khối lớp phù hợp. Composite primary key.
type BookGradeLevel struct {
	BookID       uuid.UUID `json:"book_id" db:"book_id"`
	GradeLevelID uuid.UUID `json:"grade_level_id" db:"grade_level_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type LinkRequest struct {
	BookID       uuid.UUID `json:"book_id"`
	GradeLevelID uuid.UUID `json:"grade_level_id"`
}

func (r LinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.GradeLevelID, validation.Required, validation.By(notNilUUID)),
	)
}

type SetForBookRequest struct {
	BookID        uuid.UUID   `json:"book_id"`
	GradeLevelIDs []uuid.UUID `json:"grade_level_ids"`
}

func (r SetForBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(notNilUUID)),
	)
}

func notNilUUID(value interface{}) error {
	if id, ok := value.(uuid.UUID); ok && id == uuid.Nil {
		return validation.NewError("validation_required", "cannot be blank")
	}
	return nil
}
