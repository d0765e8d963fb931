package service

import (
	"context"

	"github.com/google/uuid"

	authormodel "library-backend/internal/domains/author/model"
	authorrepo "library-backend/internal/domains/author/repository"
	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/bookauthor/model"
	"library-backend/internal/domains/bookauthor/repository"
	"library-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	Add(ctx context.Context, req *model.LinkRequest) (*model.BookAuthor, error)
	Remove(ctx context.Context, req *model.LinkRequest) error
	SetForBook(ctx context.Context, req *model.SetForBookRequest) error
	ListAuthorsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]authormodel.Author, int64, error)
	ListBooksOfAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error)
}

type bookAuthorService struct {
	repo       repository.RepositoryInterface
	bookRepo   bookrepo.RepositoryInterface
	authorRepo authorrepo.RepositoryInterface
}

func NewBookAuthorService(
	repo repository.RepositoryInterface,
	bookRepo bookrepo.RepositoryInterface,
	authorRepo authorrepo.RepositoryInterface,
) ServiceInterface {
	return &bookAuthorService{repo: repo, bookRepo: bookRepo, authorRepo: authorRepo}
}

func (s *bookAuthorService) Add(ctx context.Context, req *model.LinkRequest) (*model.BookAuthor, error) {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if _, err := s.authorRepo.GetByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, req.BookID, req.AuthorID)
}

func (s *bookAuthorService) Remove(ctx context.Context, req *model.LinkRequest) error {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return err
	}
	if _, err := s.authorRepo.GetByID(ctx, req.AuthorID); err != nil {
		return err
	}
	// Pair vắng mặt vẫn là success: remove idempotent.
	return s.repo.Remove(ctx, req.BookID, req.AuthorID)
}

func (s *bookAuthorService) SetForBook(ctx context.Context, req *model.SetForBookRequest) error {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return err
	}

	// Dedupe input để batch insert không vấp unique constraint.
	seen := make(map[uuid.UUID]struct{}, len(req.AuthorIDs))
	authorIDs := make([]uuid.UUID, 0, len(req.AuthorIDs))
	for _, id := range req.AuthorIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := s.authorRepo.GetByID(ctx, id); err != nil {
			return err
		}
		authorIDs = append(authorIDs, id)
	}

	return s.repo.SetForBook(ctx, req.BookID, authorIDs)
}

func (s *bookAuthorService) ListAuthorsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]authormodel.Author, int64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListAuthorsOfBook(ctx, bookID, p.Normalize())
}

func (s *bookAuthorService) ListBooksOfAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error) {
	if _, err := s.authorRepo.GetByID(ctx, authorID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListBooksOfAuthor(ctx, authorID, p.Normalize())
}
