package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/repository"
	locationrepo "library-backend/internal/domains/location/repository"
	publisherrepo "library-backend/internal/domains/publisher/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error)
	CreateMany(ctx context.Context, req *model.CreateManyBooksRequest) ([]model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetBySlug(ctx context.Context, slug string) (*model.Book, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Book, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Book, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateBookRequest) (*model.Book, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type bookService struct {
	repo          repository.RepositoryInterface
	publisherRepo publisherrepo.RepositoryInterface
	locationRepo  locationrepo.RepositoryInterface
}

func NewBookService(
	repo repository.RepositoryInterface,
	publisherRepo publisherrepo.RepositoryInterface,
	locationRepo locationrepo.RepositoryInterface,
) ServiceInterface {
	return &bookService{repo: repo, publisherRepo: publisherRepo, locationRepo: locationRepo}
}

func (s *bookService) Create(ctx context.Context, req *model.CreateBookRequest) (*model.Book, error) {
	if err := s.checkReferences(ctx, req.PublisherID, req.LocationID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	return s.repo.Create(ctx, &model.Book{
		Title:       title,
		Slug:        utils.Slugify(title),
		ISBN:        req.ISBN,
		Description: req.Description,
		PublishYear: req.PublishYear,
		PublisherID: req.PublisherID,
		LocationID:  req.LocationID,
	})
}

func (s *bookService) CreateMany(ctx context.Context, req *model.CreateManyBooksRequest) ([]model.Book, error) {
	books := make([]*model.Book, 0, len(req.Books))
	for _, item := range req.Books {
		if err := s.checkReferences(ctx, item.PublisherID, item.LocationID); err != nil {
			return nil, err
		}
		title := strings.TrimSpace(item.Title)
		books = append(books, &model.Book{
			Title:       title,
			Slug:        utils.Slugify(title),
			ISBN:        item.ISBN,
			Description: item.Description,
			PublishYear: item.PublishYear,
			PublisherID: item.PublisherID,
			LocationID:  item.LocationID,
		})
	}
	return s.repo.CreateMany(ctx, books)
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if id == uuid.Nil {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *bookService) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrBookNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *bookService) GetAll(ctx context.Context, p pagination.Params) ([]model.Book, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *bookService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Book, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Book{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *bookService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateBookRequest) (*model.Book, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *bookService) applyUpdate(ctx context.Context, current *model.Book, req *model.UpdateBookRequest) (*model.Book, error) {
	updated := *current

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title != current.Title {
			newSlug := utils.Slugify(title)
			if newSlug != current.Slug {
				exists, err := s.repo.ExistsBySlug(ctx, newSlug)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, model.ErrDuplicateSlug
				}
				updated.Slug = newSlug
			}
			updated.Title = title
		}
	}
	if req.ISBN != nil {
		updated.ISBN = req.ISBN
	}
	if req.Description != nil {
		updated.Description = req.Description
	}
	if req.PublishYear != nil {
		updated.PublishYear = req.PublishYear
	}
	if req.PublisherID != nil || req.LocationID != nil {
		if err := s.checkReferences(ctx, req.PublisherID, req.LocationID); err != nil {
			return nil, err
		}
		if req.PublisherID != nil {
			updated.PublisherID = req.PublisherID
		}
		if req.LocationID != nil {
			updated.LocationID = req.LocationID
		}
	}

	return s.repo.Update(ctx, &updated)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrBookNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *bookService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}

// checkReferences surface NotFound của publisher/location trước khi insert,
// thay vì đợi FK violation từ store.
func (s *bookService) checkReferences(ctx context.Context, publisherID, locationID *uuid.UUID) error {
	if publisherID != nil {
		if _, err := s.publisherRepo.GetByID(ctx, *publisherID); err != nil {
			return err
		}
	}
	if locationID != nil {
		if _, err := s.locationRepo.GetByID(ctx, *locationID); err != nil {
			return err
		}
	}
	return nil
}
