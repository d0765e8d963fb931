package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookrepo "library-backend/internal/domains/book/repository"
	readerrepo "library-backend/internal/domains/reader/repository"
	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/domains/reservation/repository"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared/pagination"
)

// defaultHoldDuration là thời gian giữ sách khi request không chỉ định expires_at.
const defaultHoldDuration = 72 * time.Hour

type ServiceInterface interface {
	Create(ctx context.Context, req *model.CreateReservationRequest) (*model.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Reservation, int64, error)
	GetByReader(ctx context.Context, readerID uuid.UUID, p pagination.Params) ([]model.Reservation, int64, error)
	Fulfill(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	// ExpireDue là sweep của worker: pending quá hạn chuyển sang expired.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reservationService struct {
	repo       repository.RepositoryInterface
	readerRepo readerrepo.RepositoryInterface
	bookRepo   bookrepo.RepositoryInterface
	notifier   queue.Notifier
}

func NewReservationService(
	repo repository.RepositoryInterface,
	readerRepo readerrepo.RepositoryInterface,
	bookRepo bookrepo.RepositoryInterface,
	notifier queue.Notifier,
) ServiceInterface {
	return &reservationService{repo: repo, readerRepo: readerRepo, bookRepo: bookRepo, notifier: notifier}
}

func (s *reservationService) Create(ctx context.Context, req *model.CreateReservationRequest) (*model.Reservation, error) {
	if _, err := s.readerRepo.GetByID(ctx, req.ReaderID); err != nil {
		return nil, err
	}
	if _, err := s.bookRepo.GetByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(defaultHoldDuration)
	if req.ExpiresAt != nil {
		expiresAt = *req.ExpiresAt
	}

	created, err := s.repo.Create(ctx, &model.Reservation{
		ReaderID:   req.ReaderID,
		BookID:     req.BookID,
		Status:     model.StatusPending,
		ReservedAt: now,
		ExpiresAt:  expiresAt,
	})
	if err != nil {
		return nil, err
	}

	// Enqueue là side effect: lỗi queue không roll back reservation.
	if err := s.notifier.NotifyReservationCreated(ctx, queue.ReservationNotificationPayload{
		ReservationID: created.ID,
		ReaderID:      created.ReaderID,
		BookID:        created.BookID,
		ExpiresAt:     created.ExpiresAt,
	}); err != nil {
		log.Error().Err(err).Str("reservation_id", created.ID.String()).Msg("failed to enqueue reservation notification")
	}

	return created, nil
}

func (s *reservationService) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	if id == uuid.Nil {
		return nil, model.ErrReservationNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *reservationService) GetAll(ctx context.Context, p pagination.Params) ([]model.Reservation, int64, error) {
	return s.repo.GetAll(ctx, p.Normalize())
}

func (s *reservationService) GetByReader(ctx context.Context, readerID uuid.UUID, p pagination.Params) ([]model.Reservation, int64, error) {
	if _, err := s.readerRepo.GetByID(ctx, readerID); err != nil {
		return nil, 0, err
	}
	return s.repo.GetByReader(ctx, readerID, p.Normalize())
}

func (s *reservationService) Fulfill(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	if id == uuid.Nil {
		return nil, model.ErrReservationNotFound
	}
	return s.repo.UpdateStatus(ctx, id, model.StatusPending, model.StatusFulfilled)
}

func (s *reservationService) Cancel(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	if id == uuid.Nil {
		return nil, model.ErrReservationNotFound
	}
	return s.repo.UpdateStatus(ctx, id, model.StatusPending, model.StatusCancelled)
}

func (s *reservationService) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	expired, err := s.repo.ExpireDue(ctx, now)
	if err != nil {
		return 0, err
	}
	if expired > 0 {
		log.Info().Int64("count", expired).Msg("expired overdue reservations")
	}
	return expired, nil
}

func (s *reservationService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return model.ErrReservationNotFound
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
