package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authormodel "library-backend/internal/domains/author/model"
	authorrepo "library-backend/internal/domains/author/repository"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/bookauthor/model"
	"library-backend/internal/shared/pagination"
)

// Fakes embed interface để chỉ override method mà service thực sự gọi.

type fakeBookRepo struct {
	bookrepo.RepositoryInterface
	books map[uuid.UUID]*bookmodel.Book
}

func (f *fakeBookRepo) GetByID(_ context.Context, id uuid.UUID) (*bookmodel.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, bookmodel.ErrBookNotFound
	}
	return b, nil
}

type fakeAuthorRepo struct {
	authorrepo.RepositoryInterface
	authors map[uuid.UUID]*authormodel.Author
}

func (f *fakeAuthorRepo) GetByID(_ context.Context, id uuid.UUID) (*authormodel.Author, error) {
	a, ok := f.authors[id]
	if !ok {
		return nil, authormodel.ErrAuthorNotFound
	}
	return a, nil
}

type fakeLinkRepo struct {
	links map[uuid.UUID][]uuid.UUID // bookID → authorIDs theo insert order
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeLinkRepo) Add(_ context.Context, bookID, authorID uuid.UUID) (*model.BookAuthor, error) {
	for _, id := range f.links[bookID] {
		if id == authorID {
			return nil, model.ErrDuplicateLink
		}
	}
	f.links[bookID] = append(f.links[bookID], authorID)
	return &model.BookAuthor{BookID: bookID, AuthorID: authorID, CreatedAt: time.Now()}, nil
}

func (f *fakeLinkRepo) Remove(_ context.Context, bookID, authorID uuid.UUID) error {
	ids := f.links[bookID]
	for i, id := range ids {
		if id == authorID {
			f.links[bookID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	// Pair vắng mặt vẫn là success
	return nil
}

func (f *fakeLinkRepo) SetForBook(_ context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	f.links[bookID] = append([]uuid.UUID(nil), authorIDs...)
	return nil
}

func (f *fakeLinkRepo) ListAuthorsOfBook(_ context.Context, bookID uuid.UUID, _ pagination.Params) ([]authormodel.Author, int64, error) {
	out := make([]authormodel.Author, 0, len(f.links[bookID]))
	for _, id := range f.links[bookID] {
		out = append(out, authormodel.Author{ID: id})
	}
	return out, int64(len(out)), nil
}

func (f *fakeLinkRepo) ListBooksOfAuthor(_ context.Context, authorID uuid.UUID, _ pagination.Params) ([]bookmodel.Book, int64, error) {
	var out []bookmodel.Book
	for bookID, ids := range f.links {
		for _, id := range ids {
			if id == authorID {
				out = append(out, bookmodel.Book{ID: bookID})
			}
		}
	}
	return out, int64(len(out)), nil
}

func setup() (ServiceInterface, *fakeLinkRepo, uuid.UUID, []uuid.UUID) {
	bookID := uuid.New()
	authorIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	books := &fakeBookRepo{books: map[uuid.UUID]*bookmodel.Book{
		bookID: {ID: bookID, Title: "Dế Mèn Phiêu Lưu Ký"},
	}}
	authors := &fakeAuthorRepo{authors: make(map[uuid.UUID]*authormodel.Author)}
	for _, id := range authorIDs {
		authors.authors[id] = &authormodel.Author{ID: id}
	}

	links := newFakeLinkRepo()
	return NewBookAuthorService(links, books, authors), links, bookID, authorIDs
}

func TestSetForBook_DedupesAndReplaces(t *testing.T) {
	ctx := context.Background()
	svc, links, bookID, authorIDs := setup()

	// Seed một link cũ rồi replace
	_, err := svc.Add(ctx, &model.LinkRequest{BookID: bookID, AuthorID: authorIDs[2]})
	require.NoError(t, err)

	err = svc.SetForBook(ctx, &model.SetForBookRequest{
		BookID:    bookID,
		AuthorIDs: []uuid.UUID{authorIDs[0], authorIDs[1], authorIDs[0], uuid.Nil},
	})
	require.NoError(t, err)

	// Duplicate và Nil bị loại, link cũ bị replace
	assert.Equal(t, []uuid.UUID{authorIDs[0], authorIDs[1]}, links.links[bookID])

	// Gọi lại lần nữa không tạo duplicate hay residue
	err = svc.SetForBook(ctx, &model.SetForBookRequest{
		BookID:    bookID,
		AuthorIDs: []uuid.UUID{authorIDs[0], authorIDs[1]},
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{authorIDs[0], authorIDs[1]}, links.links[bookID])
}

func TestSetForBook_EmptyListClearsLinks(t *testing.T) {
	ctx := context.Background()
	svc, links, bookID, authorIDs := setup()

	_, err := svc.Add(ctx, &model.LinkRequest{BookID: bookID, AuthorID: authorIDs[0]})
	require.NoError(t, err)

	err = svc.SetForBook(ctx, &model.SetForBookRequest{BookID: bookID, AuthorIDs: nil})
	require.NoError(t, err)
	assert.Empty(t, links.links[bookID])
}

func TestSetForBook_UnknownAuthorFails(t *testing.T) {
	ctx := context.Background()
	svc, _, bookID, _ := setup()

	err := svc.SetForBook(ctx, &model.SetForBookRequest{
		BookID:    bookID,
		AuthorIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, authormodel.ErrAuthorNotFound)
}

func TestAdd_UnknownBookFails(t *testing.T) {
	ctx := context.Background()
	svc, _, _, authorIDs := setup()

	_, err := svc.Add(ctx, &model.LinkRequest{BookID: uuid.New(), AuthorID: authorIDs[0]})
	assert.ErrorIs(t, err, bookmodel.ErrBookNotFound)
}

func TestAdd_DuplicateLinkConflicts(t *testing.T) {
	ctx := context.Background()
	svc, _, bookID, authorIDs := setup()

	_, err := svc.Add(ctx, &model.LinkRequest{BookID: bookID, AuthorID: authorIDs[0]})
	require.NoError(t, err)

	_, err = svc.Add(ctx, &model.LinkRequest{BookID: bookID, AuthorID: authorIDs[0]})
	assert.ErrorIs(t, err, model.ErrDuplicateLink)
}

func TestRemove_MissingPairIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _, bookID, authorIDs := setup()

	err := svc.Remove(ctx, &model.LinkRequest{BookID: bookID, AuthorID: authorIDs[0]})
	assert.NoError(t, err)
}
