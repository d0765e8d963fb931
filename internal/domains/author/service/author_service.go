package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

// ServiceInterface là business contract của author domain.
type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error)
	CreateMany(ctx context.Context, req *model.CreateManyAuthorsRequest) ([]model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.Author, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Author, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateAuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService nhận repository qua constructor, không có ambient registry.
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{repo: repo}
}

func (s *authorService) Create(ctx context.Context, req *model.CreateAuthorRequest) (*model.Author, error) {
	name := strings.TrimSpace(req.AuthorName)

	a := &model.Author{
		AuthorName:  name,
		Slug:        utils.Slugify(name),
		Nationality: req.Nationality,
		Bio:         req.Bio,
	}

	// Uniqueness cuối cùng do unique constraint của store quyết định;
	// repo map 23505 thành ErrDuplicateSlug.
	return s.repo.Create(ctx, a)
}

func (s *authorService) CreateMany(ctx context.Context, req *model.CreateManyAuthorsRequest) ([]model.Author, error) {
	authors := make([]*model.Author, 0, len(req.Authors))
	for _, item := range req.Authors {
		name := strings.TrimSpace(item.AuthorName)
		authors = append(authors, &model.Author{
			AuthorName:  name,
			Slug:        utils.Slugify(name),
			Nationality: item.Nationality,
			Bio:         item.Bio,
		})
	}

	return s.repo.CreateMany(ctx, authors)
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	if id == uuid.Nil {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *authorService) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrAuthorNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *authorService) GetAll(ctx context.Context, p pagination.Params) ([]model.Author, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *authorService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Author{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}

	// Escape ILIKE metacharacters để user input không inject wildcard
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAuthorRequest) (*model.Author, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *authorService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateAuthorRequest) (*model.Author, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

// applyUpdate shallow-merges non-nil fields lên row hiện tại,
// re-derive slug nếu source field đổi, rồi persist.
func (s *authorService) applyUpdate(ctx context.Context, current *model.Author, req *model.UpdateAuthorRequest) (*model.Author, error) {
	updated := *current

	if req.AuthorName != nil {
		name := strings.TrimSpace(*req.AuthorName)
		if name != current.AuthorName {
			newSlug := utils.Slugify(name)
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
			updated.AuthorName = name
		}
	}

	if req.Nationality != nil {
		updated.Nationality = req.Nationality
	}
	if req.Bio != nil {
		updated.Bio = req.Bio
	}

	return s.repo.Update(ctx, &updated)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrAuthorNotFound
	}

	// Re-fetch trước để absent row surface NotFound
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *authorService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
