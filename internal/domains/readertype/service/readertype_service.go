package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/readertype/model"
	"library-backend/internal/domains/readertype/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateReaderTypeRequest) (*model.ReaderType, error)
	CreateMany(ctx context.Context, req *model.CreateManyReaderTypesRequest) ([]model.ReaderType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ReaderType, error)
	GetBySlug(ctx context.Context, slug string) (*model.ReaderType, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.ReaderType, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.ReaderType, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateReaderTypeRequest) (*model.ReaderType, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateReaderTypeRequest) (*model.ReaderType, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type readerTypeService struct {
	repo repository.RepositoryInterface
}

func NewReaderTypeService(repo repository.RepositoryInterface) ServiceInterface {
	return &readerTypeService{repo: repo}
}

func (s *readerTypeService) Create(ctx context.Context, req *model.CreateReaderTypeRequest) (*model.ReaderType, error) {
	name := strings.TrimSpace(req.Name)

	taken, err := s.repo.ExistsByName(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrNameTaken
	}

	return s.repo.Create(ctx, &model.ReaderType{
		Name:           name,
		Slug:           utils.Slugify(name),
		MaxBorrowDays:  req.MaxBorrowDays,
		MaxBorrowItems: req.MaxBorrowItems,
		LateFeePerDay:  req.LateFeePerDay,
	})
}

func (s *readerTypeService) CreateMany(ctx context.Context, req *model.CreateManyReaderTypesRequest) ([]model.ReaderType, error) {
	types := make([]*model.ReaderType, 0, len(req.ReaderTypes))
	for _, item := range req.ReaderTypes {
		name := strings.TrimSpace(item.Name)
		taken, err := s.repo.ExistsByName(ctx, name, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrNameTaken
		}
		types = append(types, &model.ReaderType{
			Name:           name,
			Slug:           utils.Slugify(name),
			MaxBorrowDays:  item.MaxBorrowDays,
			MaxBorrowItems: item.MaxBorrowItems,
			LateFeePerDay:  item.LateFeePerDay,
		})
	}
	return s.repo.CreateMany(ctx, types)
}

func (s *readerTypeService) GetByID(ctx context.Context, id uuid.UUID) (*model.ReaderType, error) {
	if id == uuid.Nil {
		return nil, model.ErrReaderTypeNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *readerTypeService) GetBySlug(ctx context.Context, slug string) (*model.ReaderType, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrReaderTypeNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *readerTypeService) GetAll(ctx context.Context, p pagination.Params) ([]model.ReaderType, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *readerTypeService) Search(ctx context.Context, query string, p pagination.Params) ([]model.ReaderType, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.ReaderType{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *readerTypeService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateReaderTypeRequest) (*model.ReaderType, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *readerTypeService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateReaderTypeRequest) (*model.ReaderType, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *readerTypeService) applyUpdate(ctx context.Context, current *model.ReaderType, req *model.UpdateReaderTypeRequest) (*model.ReaderType, error) {
	updated := *current

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != current.Name {
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
	if req.MaxBorrowDays != nil {
		updated.MaxBorrowDays = *req.MaxBorrowDays
	}
	if req.MaxBorrowItems != nil {
		updated.MaxBorrowItems = *req.MaxBorrowItems
	}
	if req.LateFeePerDay != nil {
		updated.LateFeePerDay = *req.LateFeePerDay
	}

	return s.repo.Update(ctx, &updated)
}

func (s *readerTypeService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrReaderTypeNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *readerTypeService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
