package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/user/model"
	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/jwt"
)

type fakeRepository struct {
	users map[uuid.UUID]*model.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{users: make(map[uuid.UUID]*model.User)}
}

func (f *fakeRepository) Create(_ context.Context, u *model.User) (*model.User, error) {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return nil, model.ErrEmailTaken
		}
	}
	stored := *u
	stored.ID = uuid.New()
	f.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

// CreateMany giả lập transaction: một row hỏng thì không row nào được giữ lại.
func (f *fakeRepository) CreateMany(ctx context.Context, users []*model.User) ([]model.User, error) {
	created := make([]model.User, 0, len(users))
	createdIDs := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		stored, err := f.Create(ctx, u)
		if err != nil {
			for _, id := range createdIDs {
				delete(f.users, id)
			}
			return nil, err
		}
		created = append(created, *stored)
		createdIDs = append(createdIDs, stored.ID)
	}
	return created, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (f *fakeRepository) GetAll(_ context.Context, _ pagination.Params) ([]model.User, int64, error) {
	all := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	return all, int64(len(all)), nil
}

func (f *fakeRepository) ExistsByEmail(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for id, u := range f.users {
		if u.Email == email && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	u, ok := f.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.IsActive = active
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return model.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func newTestService(repo *fakeRepository) ServiceInterface {
	return NewUserService(repo, jwt.NewManager("test-secret", 15, 168))
}

func TestCreate_NormalizesEmailAndHashesPassword(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	created, err := svc.Create(ctx, &model.CreateUserRequest{
		Email:    "  Admin@Library.VN ",
		FullName: "Quản trị viên",
		Role:     model.RoleAdmin,
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@library.vn", created.Email)
	assert.True(t, created.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3cret-pass")))
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateUserRequest{
		Email: "a@library.vn", FullName: "A", Role: model.RoleLibrarian, Password: "password1",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateUserRequest{
		Email: "A@Library.VN", FullName: "B", Role: model.RoleLibrarian, Password: "password2",
	})
	assert.ErrorIs(t, err, model.ErrEmailTaken)
}

func TestCreateMany_GeneratesInitialPasswords(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	results, err := svc.CreateMany(ctx, []model.BulkUserRow{
		{FullName: "Thủ thư 1", Email: "tt1@library.vn", Role: model.RoleLibrarian},
		{FullName: "Thủ thư 2", Email: "TT2@Library.VN", Role: model.RoleLibrarian},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, r := range results {
		assert.Len(t, r.InitialPassword, initialPasswordLen)
		// Initial password phải match hash đã persist
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(r.User.PasswordHash), []byte(r.InitialPassword)))
	}
	assert.Equal(t, "tt2@library.vn", results[1].User.Email)
}

func TestCreateMany_DuplicateInBatchRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.CreateMany(ctx, []model.BulkUserRow{
		{FullName: "A", Email: "dup@library.vn", Role: model.RoleReader},
		{FullName: "B", Email: "DUP@library.vn", Role: model.RoleReader},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Empty(t, repo.users)
}

func TestCreateMany_InvalidRowRejectsWholeBatch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.CreateMany(ctx, []model.BulkUserRow{
		{FullName: "A", Email: "a@library.vn", Role: model.RoleReader},
		{FullName: "B", Email: "not-an-email", Role: model.RoleReader},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.users)
}

func TestParseXLSX_RoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"full_name", "email", "role"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Thủ thư 1", " tt1@library.vn ", "LIBRARIAN"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"Độc giả 1", "dg1@library.vn", "reader"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	svc := newTestService(newFakeRepository())
	rows, err := svc.ParseXLSX(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Thủ thư 1", rows[0].FullName)
	assert.Equal(t, "tt1@library.vn", rows[0].Email)
	// Role được lowercase khi parse
	assert.Equal(t, model.RoleLibrarian, rows[0].Role)
	assert.Equal(t, model.RoleReader, rows[1].Role)
}

func TestParseXLSX_HeaderOnlyFails(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"full_name", "email", "role"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	svc := newTestService(newFakeRepository())
	_, err := svc.ParseXLSX(&buf)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestParseXLSX_NotAnXLSXFails(t *testing.T) {
	svc := newTestService(newFakeRepository())
	_, err := svc.ParseXLSX(strings.NewReader("this is not a spreadsheet"))
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestLogin_Succeeds(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	_, err := svc.Create(ctx, &model.CreateUserRequest{
		Email: "admin@library.vn", FullName: "Admin", Role: model.RoleAdmin, Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &model.LoginRequest{Email: "Admin@Library.VN", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin@library.vn", resp.User.Email)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateUserRequest{
		Email: "admin@library.vn", FullName: "Admin", Role: model.RoleAdmin, Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, errWrongPw := svc.Login(ctx, &model.LoginRequest{Email: "admin@library.vn", Password: "wrong"})
	_, errNoUser := svc.Login(ctx, &model.LoginRequest{Email: "ghost@library.vn", Password: "whatever"})

	assert.ErrorIs(t, errWrongPw, model.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoUser, model.ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccountForbidden(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := newTestService(repo)

	created, err := svc.Create(ctx, &model.CreateUserRequest{
		Email: "admin@library.vn", FullName: "Admin", Role: model.RoleAdmin, Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NoError(t, svc.SetActive(ctx, created.ID, false))

	_, err = svc.Login(ctx, &model.LoginRequest{Email: "admin@library.vn", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrForbidden)
}

func TestGeneratePassword_UsesUnambiguousAlphabet(t *testing.T) {
	pw, err := generatePassword(initialPasswordLen)
	require.NoError(t, err)
	assert.Len(t, pw, initialPasswordLen)
	// Không có ký tự dễ nhầm lẫn
	assert.NotContains(t, pw, "0")
	assert.NotContains(t, pw, "O")
	assert.NotContains(t, pw, "l")
	assert.NotContains(t, pw, "1")
	assert.NotContains(t, pw, "I")
}
