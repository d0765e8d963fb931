package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/location/model"
	"library-backend/internal/domains/location/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateLocationRequest) (*model.Location, error)
	CreateMany(ctx context.Context, req *model.CreateManyLocationsRequest) ([]model.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	GetBySlug(ctx context.Context, slug string) (*model.Location, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Location, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Location, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateLocationRequest) (*model.Location, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateLocationRequest) (*model.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type locationService struct {
	repo repository.RepositoryInterface
}

func NewLocationService(repo repository.RepositoryInterface) ServiceInterface {
	return &locationService{repo: repo}
}

func (s *locationService) Create(ctx context.Context, req *model.CreateLocationRequest) (*model.Location, error) {
	name := strings.TrimSpace(req.Name)

	return s.repo.Create(ctx, &model.Location{
		Name:        name,
		Slug:        utils.Slugify(name),
		Floor:       req.Floor,
		Description: req.Description,
	})
}

func (s *locationService) CreateMany(ctx context.Context, req *model.CreateManyLocationsRequest) ([]model.Location, error) {
	locations := make([]*model.Location, 0, len(req.Locations))
	for _, item := range req.Locations {
		name := strings.TrimSpace(item.Name)
		locations = append(locations, &model.Location{
			Name:        name,
			Slug:        utils.Slugify(name),
			Floor:       item.Floor,
			Description: item.Description,
		})
	}
	return s.repo.CreateMany(ctx, locations)
}

func (s *locationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	if id == uuid.Nil {
		return nil, model.ErrLocationNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *locationService) GetBySlug(ctx context.Context, slug string) (*model.Location, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrLocationNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *locationService) GetAll(ctx context.Context, p pagination.Params) ([]model.Location, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *locationService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Location, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Location{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *locationService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateLocationRequest) (*model.Location, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *locationService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateLocationRequest) (*model.Location, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *locationService) applyUpdate(ctx context.Context, current *model.Location, req *model.UpdateLocationRequest) (*model.Location, error) {
	updated := *current

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != current.Name {
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
			updated.Name = name
		}
	}
	if req.Floor != nil {
		updated.Floor = req.Floor
	}
	if req.Description != nil {
		updated.Description = req.Description
	}

	return s.repo.Update(ctx, &updated)
}

func (s *locationService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrLocationNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *locationService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
