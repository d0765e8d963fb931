package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"library-backend/internal/domains/reader/model"
	"library-backend/internal/domains/reader/repository"
	readertyperepo "library-backend/internal/domains/readertype/repository"
	"library-backend/internal/shared/pagination"
	"library-backend/internal/shared/utils"
)

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateReaderRequest) (*model.Reader, error)
	CreateMany(ctx context.Context, req *model.CreateManyReadersRequest) ([]model.Reader, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reader, error)
	GetBySlug(ctx context.Context, slug string) (*model.Reader, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (*model.Reader, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Reader, int64, error)
	GetByReaderType(ctx context.Context, readerTypeID uuid.UUID, p pagination.Params) ([]model.Reader, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Reader, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateReaderRequest) (*model.Reader, error)
	UpdateBySlug(ctx context.Context, slug string, req *model.UpdateReaderRequest) (*model.Reader, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySlug(ctx context.Context, slug string) error
}

type readerService struct {
	repo           repository.RepositoryInterface
	readerTypeRepo readertyperepo.RepositoryInterface
}

func NewReaderService(repo repository.RepositoryInterface, readerTypeRepo readertyperepo.RepositoryInterface) ServiceInterface {
	return &readerService{repo: repo, readerTypeRepo: readerTypeRepo}
}

func (s *readerService) Create(ctx context.Context, req *model.CreateReaderRequest) (*model.Reader, error) {
	// Reader type phải tồn tại trước khi cấp thẻ.
	if _, err := s.readerTypeRepo.GetByID(ctx, req.ReaderTypeID); err != nil {
		return nil, err
	}

	cardNumber := strings.TrimSpace(req.CardNumber)
	taken, err := s.repo.ExistsByCardNumber(ctx, cardNumber, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, model.ErrCardNumberTaken
	}

	fullName := strings.TrimSpace(req.FullName)
	return s.repo.Create(ctx, &model.Reader{
		FullName:     fullName,
		Slug:         utils.Slugify(fullName),
		CardNumber:   cardNumber,
		Email:        req.Email,
		Phone:        req.Phone,
		DateOfBirth:  req.DateOfBirth,
		ReaderTypeID: req.ReaderTypeID,
	})
}

func (s *readerService) CreateMany(ctx context.Context, req *model.CreateManyReadersRequest) ([]model.Reader, error) {
	readers := make([]*model.Reader, 0, len(req.Readers))
	for _, item := range req.Readers {
		if _, err := s.readerTypeRepo.GetByID(ctx, item.ReaderTypeID); err != nil {
			return nil, err
		}

		cardNumber := strings.TrimSpace(item.CardNumber)
		taken, err := s.repo.ExistsByCardNumber(ctx, cardNumber, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, model.ErrCardNumberTaken
		}

		fullName := strings.TrimSpace(item.FullName)
		readers = append(readers, &model.Reader{
			FullName:     fullName,
			Slug:         utils.Slugify(fullName),
			CardNumber:   cardNumber,
			Email:        item.Email,
			Phone:        item.Phone,
			DateOfBirth:  item.DateOfBirth,
			ReaderTypeID: item.ReaderTypeID,
		})
	}
	return s.repo.CreateMany(ctx, readers)
}

func (s *readerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Reader, error) {
	if id == uuid.Nil {
		return nil, model.ErrReaderNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *readerService) GetBySlug(ctx context.Context, slug string) (*model.Reader, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return nil, model.ErrReaderNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *readerService) GetByCardNumber(ctx context.Context, cardNumber string) (*model.Reader, error) {
	cardNumber = strings.TrimSpace(cardNumber)
	if cardNumber == "" {
		return nil, model.ErrReaderNotFound
	}
	return s.repo.GetByCardNumber(ctx, cardNumber)
}

func (s *readerService) GetAll(ctx context.Context, p pagination.Params) ([]model.Reader, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *readerService) GetByReaderType(ctx context.Context, readerTypeID uuid.UUID, p pagination.Params) ([]model.Reader, int64, error) {
	if _, err := s.readerTypeRepo.GetByID(ctx, readerTypeID); err != nil {
		return nil, 0, err
	}
	return s.repo.GetByReaderType(ctx, readerTypeID, p.Normalize())
}

func (s *readerService) Search(ctx context.Context, query string, p pagination.Params) ([]model.Reader, int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Reader{}, 0, nil
	}
	if len(query) > 100 {
		query = query[:100]
	}
	return s.repo.Search(ctx, utils.EscapeLike(query), p.Normalize())
}

func (s *readerService) Update(ctx context.Context, id uuid.UUID, req *model.UpdateReaderRequest) (*model.Reader, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *readerService) UpdateBySlug(ctx context.Context, slug string, req *model.UpdateReaderRequest) (*model.Reader, error) {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, current, req)
}

func (s *readerService) applyUpdate(ctx context.Context, current *model.Reader, req *model.UpdateReaderRequest) (*model.Reader, error) {
	updated := *current

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName != current.FullName {
			updated.FullName = fullName
			updated.Slug = utils.Slugify(fullName)
		}
	}
	if req.CardNumber != nil {
		cardNumber := strings.TrimSpace(*req.CardNumber)
		if cardNumber != current.CardNumber {
			taken, err := s.repo.ExistsByCardNumber(ctx, cardNumber, current.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, model.ErrCardNumberTaken
			}
			updated.CardNumber = cardNumber
		}
	}
	if req.Email != nil {
		updated.Email = req.Email
	}
	if req.Phone != nil {
		updated.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		updated.DateOfBirth = req.DateOfBirth
	}
	if req.ReaderTypeID != nil && *req.ReaderTypeID != current.ReaderTypeID {
		if _, err := s.readerTypeRepo.GetByID(ctx, *req.ReaderTypeID); err != nil {
			return nil, err
		}
		updated.ReaderTypeID = *req.ReaderTypeID
	}

	return s.repo.Update(ctx, &updated)
}

func (s *readerService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrReaderNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *readerService) DeleteBySlug(ctx context.Context, slug string) error {
	current, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, current.ID)
}
