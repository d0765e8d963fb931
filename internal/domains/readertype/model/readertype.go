package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"library-backend/internal/shared/apperror"
)

var (
	ErrReaderTypeNotFound = apperror.NotFound("reader type not found")
	ErrNameTaken          = apperror.Conflict("reader type name already in use")
	ErrDuplicateSlug      = apperror.Conflict("reader type with this slug already exists")
)

// ReaderType là hạng bạn đọc (học sinh, giáo viên...) quyết định quota mượn.
type ReaderType struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Slug           string          `json:"slug" db:"slug"`
	MaxBorrowDays  int             `json:"max_borrow_days" db:"max_borrow_days"`
	MaxBorrowItems int             `json:"max_borrow_items" db:"max_borrow_items"`
	LateFeePerDay  decimal.Decimal `json:"late_fee_per_day" db:"late_fee_per_day"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateReaderTypeRequest struct {
	Name           string          `json:"name"`
	MaxBorrowDays  int             `json:"max_borrow_days"`
	MaxBorrowItems int             `json:"max_borrow_items"`
	LateFeePerDay  decimal.Decimal `json:"late_fee_per_day"`
}

func (r CreateReaderTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.MaxBorrowDays, validation.Required, validation.Min(1), validation.Max(365)),
		validation.Field(&r.MaxBorrowItems, validation.Required, validation.Min(1), validation.Max(100)),
		validation.Field(&r.LateFeePerDay, validation.By(nonNegativeDecimal)),
	)
}

type UpdateReaderTypeRequest struct {
	Name           *string          `json:"name,omitempty"`
	MaxBorrowDays  *int             `json:"max_borrow_days,omitempty"`
	MaxBorrowItems *int             `json:"max_borrow_items,omitempty"`
	LateFeePerDay  *decimal.Decimal `json:"late_fee_per_day,omitempty"`
}

func (r UpdateReaderTypeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.MaxBorrowDays, validation.Min(1), validation.Max(365)),
		validation.Field(&r.MaxBorrowItems, validation.Min(1), validation.Max(100)),
	)
}

type CreateManyReaderTypesRequest struct {
	ReaderTypes []CreateReaderTypeRequest `json:"reader_types"`
}

func (r CreateManyReaderTypesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ReaderTypes, validation.Required, validation.Length(1, 100)),
	)
}

func nonNegativeDecimal(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		if p, ok := value.(*decimal.Decimal); ok && p != nil {
			d = *p
		} else {
			return nil
		}
	}
	if d.IsNegative() {
		return validation.NewError("validation_min", "must be no less than 0")
	}
	return nil
}
