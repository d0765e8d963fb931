package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/shared/pagination"
)

type fakeRepository struct {
	levels map[uuid.UUID]*model.GradeLevel
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{levels: make(map[uuid.UUID]*model.GradeLevel)}
}

func (f *fakeRepository) Create(_ context.Context, g *model.GradeLevel) (*model.GradeLevel, error) {
	stored := *g
	stored.ID = uuid.New()
	f.levels[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRepository) CreateMany(ctx context.Context, levels []*model.GradeLevel) ([]model.GradeLevel, error) {
	created := make([]model.GradeLevel, 0, len(levels))
	for _, g := range levels {
		stored, err := f.Create(ctx, g)
		if err != nil {
			return nil, err
		}
		created = append(created, *stored)
	}
	return created, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.GradeLevel, error) {
	g, ok := f.levels[id]
	if !ok {
		return nil, model.ErrGradeLevelNotFound
	}
	out := *g
	return &out, nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*model.GradeLevel, error) {
	for _, g := range f.levels {
		if g.Slug == slug {
			out := *g
			return &out, nil
		}
	}
	return nil, model.ErrGradeLevelNotFound
}

func (f *fakeRepository) GetAll(_ context.Context, _ pagination.Params) ([]model.GradeLevel, int64, error) {
	all := make([]model.GradeLevel, 0, len(f.levels))
	for _, g := range f.levels {
		all = append(all, *g)
	}
	return all, int64(len(all)), nil
}

func (f *fakeRepository) Search(ctx context.Context, _ string, p pagination.Params) ([]model.GradeLevel, int64, error) {
	return f.GetAll(ctx, p)
}

func (f *fakeRepository) ExistsByName(_ context.Context, name string, excludeID uuid.UUID) (bool, error) {
	for id, g := range f.levels {
		if g.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Update(_ context.Context, g *model.GradeLevel) (*model.GradeLevel, error) {
	if _, ok := f.levels[g.ID]; !ok {
		return nil, model.ErrGradeLevelNotFound
	}
	stored := *g
	f.levels[g.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.levels[id]; !ok {
		return model.ErrGradeLevelNotFound
	}
	delete(f.levels, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreate_DerivesSlugAndTrims(t *testing.T) {
	ctx := context.Background()
	svc := NewGradeLevelService(newFakeRepository())

	created, err := svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "  Lớp 1  ", DisplayOrder: 1})
	require.NoError(t, err)
	assert.Equal(t, "Lớp 1", created.Name)
	assert.Equal(t, "lop-1", created.Slug)
}

func TestCreate_DuplicateNameConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewGradeLevelService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "Lớp 1"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "Lớp 1"})
	assert.ErrorIs(t, err, model.ErrNameTaken)
}

func TestUpdate_RenameOntoExistingNameConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewGradeLevelService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "Lớp 1", DisplayOrder: 1})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "Lớp 2", DisplayOrder: 2})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, &model.UpdateGradeLevelRequest{Name: strPtr("Lớp 1")})
	assert.ErrorIs(t, err, model.ErrNameTaken)
}

func TestUpdate_SameNameIsNotAConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewGradeLevelService(newFakeRepository())

	created, err := svc.Create(ctx, &model.CreateGradeLevelRequest{Name: "Lớp 1", DisplayOrder: 1})
	require.NoError(t, err)

	// Giữ nguyên tên, chỉ đổi display order
	order := 5
	updated, err := svc.Update(ctx, created.ID, &model.UpdateGradeLevelRequest{
		Name:         strPtr("Lớp 1"),
		DisplayOrder: &order,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.DisplayOrder)
	assert.Equal(t, "lop-1", updated.Slug)
}

func TestDelete_MissingRowReturnsNotFound(t *testing.T) {
	svc := NewGradeLevelService(newFakeRepository())
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrGradeLevelNotFound)
}
