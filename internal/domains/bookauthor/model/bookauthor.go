package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrLinkNotFound  = apperror.NotFound("book-author link not found")
	ErrDuplicateLink = apperror.Conflict("book-author link already exists")
)

// BookAuthor là composite link row giữa books và authors.
type BookAuthor struct {
	BookID    uuid.UUID `json:"book_id" db:"book_id"`
	AuthorID  uuid.UUID `json:"author_id" db:"author_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type LinkRequest struct {
	BookID   uuid.UUID `json:"book_id"`
	AuthorID uuid.UUID `json:"author_id"`
}

func (r LinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required, validation.By(notNilUUID)),
		validation.Field(&r.AuthorID, validation.Required, validation.By(notNilUUID)),
	)
}

// SetForBookRequest replace toàn bộ author list của một book.
// AuthorIDs rỗng nghĩa là clear hết link.
type SetForBookRequest struct {
	BookID    uuid.UUID   `json:"book_id"`
	AuthorIDs []uuid.UUID `json:"author_ids"`
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
