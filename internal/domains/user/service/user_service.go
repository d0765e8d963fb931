package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/domains/user/repository"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/jwt"
)

const initialPasswordLen = 12

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	// CreateMany generate initial password cho từng row và persist cả batch
	// trong một transaction. Một row hỏng thì không row nào được tạo.
	CreateMany(ctx context.Context, rows []model.BulkUserRow) ([]model.BulkCreateResult, error)
	// ParseXLSX đọc sheet đầu tiên với header full_name,email,role.
	ParseXLSX(r io.Reader) ([]model.BulkUserRow, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.User, int64, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo       repository.RepositoryInterface
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.RepositoryInterface, jwtManager *jwt.Manager) ServiceInterface {
	return &userService{repo: repo, jwtManager: jwtManager}
}

func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	email := normalizeEmail(req.Email)

	taken, err := s.repo.ExistsByEmail(ctx, email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.Create(ctx, &model.User{
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         req.Role,
		PasswordHash: string(hash),
		IsActive:     true,
	})
}

func (s *userService) CreateMany(ctx context.Context, rows []model.BulkUserRow) ([]model.BulkCreateResult, error) {
	if len(rows) == 0 {
		return nil, apperror.InvalidInput("no user rows to import")
	}

	seen := make(map[string]struct{}, len(rows))
	users := make([]*model.User, 0, len(rows))
	passwords := make([]string, 0, len(rows))

	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return nil, apperror.InvalidInput("row %d: %s", i+1, err.Error())
		}

		email := normalizeEmail(row.Email)
		if _, dup := seen[email]; dup {
			return nil, apperror.Conflict("duplicate email %s in batch", email)
		}
		seen[email] = struct{}{}

		taken, err := s.repo.ExistsByEmail(ctx, email, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrEmailTaken
		}

		password, err := generatePassword(initialPasswordLen)
		if err != nil {
			return nil, fmt.Errorf("failed to generate password: %w", err)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}

		users = append(users, &model.User{
			Email:        email,
			FullName:     strings.TrimSpace(row.FullName),
			Role:         row.Role,
			PasswordHash: string(hash),
			IsActive:     true,
		})
		passwords = append(passwords, password)
	}

	created, err := s.repo.CreateMany(ctx, users)
	if err != nil {
		return nil, err
	}

	results := make([]model.BulkCreateResult, 0, len(created))
	for i, u := range created {
		results = append(results, model.BulkCreateResult{User: u, InitialPassword: passwords[i]})
	}
	return results, nil
}

func (s *userService) ParseXLSX(r io.Reader) ([]model.BulkUserRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.InvalidInput("cannot open xlsx file: %s", err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.InvalidInput("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.InvalidInput("cannot read xlsx rows: %s", err.Error())
	}
	if len(rows) < 2 {
		return nil, apperror.InvalidInput("xlsx sheet has no data rows")
	}

	// Row đầu là header full_name,email,role.
	out := make([]model.BulkUserRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		var bulk model.BulkUserRow
		if len(row) > 0 {
			bulk.FullName = strings.TrimSpace(row[0])
		}
		if len(row) > 1 {
			bulk.Email = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			bulk.Role = strings.TrimSpace(strings.ToLower(row[2]))
		}
		if bulk.FullName == "" && bulk.Email == "" {
			continue
		}
		out = append(out, bulk)
	}

	if len(out) == 0 {
		return nil, apperror.InvalidInput("xlsx sheet has no data rows")
	}
	return out, nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		// Không phân biệt user không tồn tại và sai password.
		return nil, model.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *u,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, model.ErrUserNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetAll(ctx context.Context, p pagination.Params) ([]model.User, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if id == uuid.Nil {
		return model.ErrUserNotFound
	}
	return s.repo.SetActive(ctx, id, active)
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrUserNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generatePassword trả về random string từ alphabet không có ký tự dễ nhầm.
func generatePassword(length int) (string, error) {
	const alphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
