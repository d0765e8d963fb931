package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/domains/gradelevel/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateGradeLevelRequest) (*model.GradeLevel, error)
	CreateMany(ctx context.Context, req *model.CreateManyGradeLevelsRequest) ([]model.GradeLevel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.GradeLevel, error)
	GetBySlug(ctx context.Context, slug string) (*model.GradeLevel, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.GradeLevel, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.GradeLevel, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateGradeLevelRequest) (*model.GradeLevel, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateGradeLevelRequest) (*model.GradeLevel, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type gradeLevelService struct {
	repo repository.RepositoryInterface
}

func NewGradeLevelService(repo repository.RepositoryInterface) ServiceInterface {
	return &gradeLevelService{repo: repo}
}

func (s *gradeLevelService) Create(ctx context.Context, req *model.CreateGradeLevelRequest) (*model.GradeLevel, error) {
	name := strings.TrimSpace(req.Name)

	// Pre-save uniqueness check trên business-unique name.
	// Race giữa hai create đồng thời vẫn do unique constraint chặn.
	taken, err := s.repo.ExistsByName(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrNameTaken
	}

	return s.repo.Create(ctx, &model.GradeLevel{
		Name:         name,
		Slug:         utils.Slugify(name),
		DisplayOrder: req.DisplayOrder,
	})
}

func (s *gradeLevelService) CreateMany(ctx context.Context, req *model.CreateManyGradeLevelsRequest) ([]model.GradeLevel, error) {
	levels := make([]*model.GradeLevel, 0, len(req.GradeLevels))
	for _, item := range req.GradeLevels {
		name := strings.TrimSpace(item.Name)
		taken, err := s.repo.ExistsByName(ctx, name, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrNameTaken
		}
		levels = append(levels, &model.GradeLevel{
			Name:         name,
			Slug:         utils.Slugify(name),
			DisplayOrder: item.DisplayOrder,
		})
	}
	return s.repo.CreateMany(ctx, levels)
}

func (s *gradeLevelService) GetByID(ctx context.Context, id uuid.UUID) (*model.GradeLevel, error) {
	if id == uuid.Nil {
		return nil, model.ErrGradeLevelNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *gradeLevelService) GetBySlug(ctx context.Context, slug string) (*model.GradeLevel, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrGradeLevelNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *gradeLevelService) GetAll(ctx context.Context, p pagination.Params) ([]model.GradeLevel, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *gradeLevelService) Search(ctx context.Context, query string, p pagination.Params) ([]model.GradeLevel, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.GradeLevel{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *gradeLevelService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateGradeLevelRequest) (*model.GradeLevel, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *gradeLevelService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateGradeLevelRequest) (*model.GradeLevel, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *gradeLevelService) applyUpdate(ctx context.Context, current *model.GradeLevel, req *model.UpdateGradeLevelRequest) (*model.GradeLevel, error) {
	updated := *current

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != current.Name {
			// Rename vào tên đã có ở row khác → Conflict
			taken, err := s.repo.ExistsByName(ctx, name, current.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, model.ErrNameTaken
			}
			updated.Name = name
			updated.Slug = utils.Slugify(name)
		}
	}
	if req.DisplayOrder != nil {
		updated.DisplayOrder = *req.DisplayOrder
	}

	return s.repo.Update(ctx, &updated)
}

func (s *gradeLevelService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrGradeLevelNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *gradeLevelService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
