package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"library-backend/internal/shared/apperror"
)

const (
	RoleAdmin     = "admin"
	RoleLibrarian = "librarian"
	RoleReader    = "reader"
)

var (
	ErrUserNotFound       = apperror.NotFound("user not found")
	ErrEmailTaken         = apperror.Conflict("email already in use")
	ErrInvalidCredentials = apperror.InvalidInput("invalid email or password")
	ErrInvalidRole        = apperror.InvalidInput("role must be admin, librarian or reader")
)

// User là staff/reader account đăng nhập vào backend.
// PasswordHash không bao giờ serialize ra JSON.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleLibrarian, RoleReader:
		return true
	}
	return false
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Role, validation.Required, validation.In(RoleAdmin, RoleLibrarian, RoleReader)),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
	)
}

// BulkUserRow là một dòng import, từ JSON body hoặc sheet XLSX.
// Password do service generate, không nằm trong input.
type BulkUserRow struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (r BulkUserRow) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Role, validation.Required, validation.In(RoleAdmin, RoleLibrarian, RoleReader)),
	)
}

type CreateManyUsersRequest struct {
	Users []BulkUserRow `json:"users"`
}

func (r CreateManyUsersRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Users, validation.Required, validation.Length(1, 1000)),
	)
}

// BulkCreateResult trả về account mới cùng initial password đã generate.
// Password chỉ xuất hiện một lần ở response này.
type BulkCreateResult struct {
	User            User   `json:"user"`
	InitialPassword string `json:"initial_password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
