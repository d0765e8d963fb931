package model

import (
	"time"

	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

var (
	ErrImageNotFound  = apperror.NotFound("image not found")
	ErrDuplicateSlug  = apperror.Conflict("image with this slug already exists")
	ErrInvalidUpload  = apperror.InvalidInput("uploaded file is not a valid image")
	ErrUploadTooLarge = apperror.InvalidInput("uploaded file exceeds size limit")
)

// Image là metadata row của một file ảnh đã upload lên MinIO.
// ObjectKey là prefix chung của original và thumbnail trên bucket.
type Image struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FileName     string    `json:"file_name" db:"file_name"`
	Slug         string    `json:"slug" db:"slug"`
	URL          string    `json:"url" db:"url"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	ObjectKey    string    `json:"object_key" db:"object_key"`
	ContentType  string    `json:"content_type" db:"content_type"`
	SizeBytes    int64     `json:"size_bytes" db:"size_bytes"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
