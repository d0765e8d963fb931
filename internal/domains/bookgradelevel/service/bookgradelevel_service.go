package service

import (
	"context"

	"github.com/google/uuid"

	bookmodel "library-backend/internal/domains/book/model"
	bookrepo "library-backend/internal/domains/book/repository"
	"library-backend/internal/domains/bookgradelevel/model"
	"library-backend/internal/domains/bookgradelevel/repository"
	gradelevelmodel "library-backend/internal/domains/gradelevel/model"
	gradelevelrepo "library-backend/internal/domains/gradelevel/repository"
	"library-backend/internal/shared/pagination"
)

type ServiceInterface interface {
	Add(ctx context.Context, req *model.LinkRequest) (*model.BookGradeLevel, error)
	Remove(ctx context.Context, req *model.LinkRequest) error
	SetForBook(ctx context.Context, req *model.SetForBookRequest) error
	ListGradeLevelsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]gradelevelmodel.GradeLevel, int64, error)
	ListBooksOfGradeLevel(ctx context.Context, gradeLevelID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error)
}

type bookGradeLevelService struct {
	repo           repository.RepositoryInterface
	bookRepo       bookrepo.RepositoryInterface
	gradeLevelRepo gradelevelrepo.RepositoryInterface
}

func NewBookGradeLevelService(
	repo repository.RepositoryInterface,
	bookRepo bookrepo.RepositoryInterface,
	gradeLevelRepo gradelevelrepo.RepositoryInterface,
) ServiceInterface {
	return &bookGradeLevelService{repo: repo, bookRepo: bookRepo, gradeLevelRepo: gradeLevelRepo}
}

func (s *bookGradeLevelService) Add(ctx context.Context, req *model.LinkRequest) (*model.BookGradeLevel, error) {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}
	if _, err := s.gradeLevelRepo.GetByID(ctx, req.GradeLevelID); err != nil {
		return nil, err
	}
	return s.repo.Add(ctx, req.BookID, req.GradeLevelID)
}

func (s *bookGradeLevelService) Remove(ctx context.Context, req *model.LinkRequest) error {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return err
	}
	if _, err := s.gradeLevelRepo.GetByID(ctx, req.GradeLevelID); err != nil {
		return err
	}
	return s.repo.Remove(ctx, req.BookID, req.GradeLevelID)
}

func (s *bookGradeLevelService) SetForBook(ctx context.Context, req *model.SetForBookRequest) error {
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.GradeLevelIDs))
	gradeLevelIDs := make([]uuid.UUID, 0, len(req.GradeLevelIDs))
	for _, id := range req.GradeLevelIDs {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		if _, err := s.gradeLevelRepo.GetByID(ctx, id); err != nil {
			return err
		}
		gradeLevelIDs = append(gradeLevelIDs, id)
	}

	return s.repo.SetForBook(ctx, req.BookID, gradeLevelIDs)
}

func (s *bookGradeLevelService) ListGradeLevelsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]gradelevelmodel.GradeLevel, int64, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListGradeLevelsOfBook(ctx, bookID, p.Normalize())
}

func (s *bookGradeLevelService) ListBooksOfGradeLevel(ctx context.Context, gradeLevelID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error) {
	if _, err := s.gradeLevelRepo.GetByID(ctx, gradeLevelID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListBooksOfGradeLevel(ctx, gradeLevelID, p.Normalize())
}
