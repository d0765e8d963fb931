package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/pagination"
)

// fakeRepository giữ authors trong map, mô phỏng unique constraint trên slug.
type fakeRepository struct {
	authors map[uuid.UUID]*model.Author
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{authors: make(map[uuid.UUID]*model.Author)}
}

func (f *fakeRepository) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	for _, existing := range f.authors {
		if existing.Slug == a.Slug {
			return nil, model.ErrDuplicateSlug
		}
	}
	stored := *a
	stored.ID = uuid.New()
	f.authors[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRepository) CreateMany(ctx context.Context, authors []*model.Author) ([]model.Author, error) {
	created := make([]model.Author, 0, len(authors))
	for _, a := range authors {
		stored, err := f.Create(ctx, a)
		if err != nil {
			return nil, err
		}
		created = append(created, *stored)
	}
	return created, nil
}

func (f *fakeRepository) GetByID(_ context.Context, id uuid.UUID) (*model.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	out := *a
	return &out, nil
}

func (f *fakeRepository) GetBySlug(_ context.Context, slug string) (*model.Author, error) {
	for _, a := range f.authors {
		if a.Slug == slug {
			out := *a
			return &out, nil
		}
	}
	return nil, model.ErrAuthorNotFound
}

func (f *fakeRepository) GetAll(_ context.Context, p pagination.Params) ([]model.Author, int64, error) {
	all := make([]model.Author, 0, len(f.authors))
	for _, a := range f.authors {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AuthorName < all[j].AuthorName })

	total := int64(len(all))
	start := p.Offset()
	if start >= len(all) {
		return []model.Author{}, total, nil
	}
	end := start + p.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeRepository) Search(ctx context.Context, _ string, p pagination.Params) ([]model.Author, int64, error) {
	return f.GetAll(ctx, p)
}

func (f *fakeRepository) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, a := range f.authors {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepository) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	if _, ok := f.authors[a.ID]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	stored := *a
	f.authors[a.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	delete(f.authors, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestAuthorLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorService(newFakeRepository())

	// Create: tên có dấu sinh slug ASCII
	created, err := svc.Create(ctx, &model.CreateAuthorRequest{
		AuthorName:  "  Tô Hoài  ",
		Nationality: strPtr("Việt Nam"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tô Hoài", created.AuthorName)
	assert.Equal(t, "to-hoai", created.Slug)

	// Lookup by slug, case-insensitive
	found, err := svc.GetBySlug(ctx, "  TO-HOAI ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// PATCH đổi tên thì slug được re-derive
	renamed, err := svc.Update(ctx, created.ID, &model.UpdateAuthorRequest{
		AuthorName: strPtr("Nguyễn Nhật Ánh"),
	})
	require.NoError(t, err)
	assert.Equal(t, "nguyen-nhat-anh", renamed.Slug)
	// Field không gửi lên giữ nguyên
	require.NotNil(t, renamed.Nationality)
	assert.Equal(t, "Việt Nam", *renamed.Nationality)

	// Slug cũ không còn resolve
	_, err = svc.GetBySlug(ctx, "to-hoai")
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)

	// Delete rồi lookup trả NotFound
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestCreate_DuplicateSlugConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateAuthorRequest{AuthorName: "Tô Hoài"})
	require.NoError(t, err)

	// Tên khác nhau nhưng cùng slug sau khi bỏ dấu
	_, err = svc.Create(ctx, &model.CreateAuthorRequest{AuthorName: "TÔ HOÀI"})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestUpdate_RenameOntoExistingSlugConflicts(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorService(newFakeRepository())

	_, err := svc.Create(ctx, &model.CreateAuthorRequest{AuthorName: "Tô Hoài"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &model.CreateAuthorRequest{AuthorName: "Nam Cao"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, second.ID, &model.UpdateAuthorRequest{AuthorName: strPtr("Tô Hoài")})
	assert.ErrorIs(t, err, model.ErrDuplicateSlug)
}

func TestSearch_EmptyQueryReturnsEmptySlice(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthorService(newFakeRepository())

	results, total, err := svc.Search(ctx, "   ", pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
	assert.Zero(t, total)
}

func TestGetByID_NilUUID(t *testing.T) {
	svc := NewAuthorService(newFakeRepository())
	_, err := svc.GetByID(context.Background(), uuid.Nil)
	assert.ErrorIs(t, err, model.ErrAuthorNotFound)
}

func TestCreateMany_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	svc := NewAuthorService(repo)

	created, err := svc.CreateMany(ctx, &model.CreateManyAuthorsRequest{
		Authors: []model.CreateAuthorRequest{
			{AuthorName: "Tô Hoài"},
			{AuthorName: "Nam Cao"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
	assert.Equal(t, "to-hoai", created[0].Slug)
}
