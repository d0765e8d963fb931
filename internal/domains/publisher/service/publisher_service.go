package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/publisher/model"
	"library-backend/internal/domains/publisher/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePublisherRequest) (*model.Publisher, error)
	CreateMany(ctx context.Context, req *model.CreateManyPublishersRequest) ([]model.Publisher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error)
	GetBySlug(ctx context.Context, slug string) (*model.Publisher, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Publisher, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Publisher, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdatePublisherRequest) (*model.Publisher, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdatePublisherRequest) (*model.Publisher, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type publisherService struct {
	repo repository.RepositoryInterface
}

func NewPublisherService(repo repository.RepositoryInterface) ServiceInterface {
	return &publisherService{repo: repo}
}

func (s *publisherService) Create(ctx context.Context, req *model.CreatePublisherRequest) (*model.Publisher, error) {
	name := strings.TrimSpace(req.Name)

	return s.repo.Create(ctx, &model.Publisher{
		Name:    name,
		Slug:    utils.Slugify(name),
		Address: req.Address,
		Phone:   req.Phone,
	})
}

func (s *publisherService) CreateMany(ctx context.Context, req *model.CreateManyPublishersRequest) ([]model.Publisher, error) {
	publishers := make([]*model.Publisher, 0, len(req.Publishers))
	for _, item := range req.Publishers {
		name := strings.TrimSpace(item.Name)
		publishers = append(publishers, &model.Publisher{
			Name:    name,
			Slug:    utils.Slugify(name),
			Address: item.Address,
			Phone:   item.Phone,
		})
	}
	return s.repo.CreateMany(ctx, publishers)
}

func (s *publisherService) GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error) {
	if id == uuid.Nil {
		return nil, model.ErrPublisherNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *publisherService) GetBySlug(ctx context.Context, slug string) (*model.Publisher, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrPublisherNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *publisherService) GetAll(ctx context.Context, p pagination.Params) ([]model.Publisher, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *publisherService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Publisher, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Publisher{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *publisherService) Update(ctx context.Context, id uuid.UUID, req *model.UpdatePublisherRequest) (*model.Publisher, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *publisherService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdatePublisherRequest) (*model.Publisher, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *publisherService) applyUpdate(ctx context.Context, current *model.Publisher, req *model.UpdatePublisherRequest) (*model.Publisher, error) {
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
	if req.Address != nil {
		updated.Address = req.Address
	}
	if req.Phone != nil {
		updated.Phone = req.Phone
	}

	return s.repo.Update(ctx, &updated)
}

func (s *publisherService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrPublisherNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *publisherService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
