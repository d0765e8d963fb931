package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/reservation/model"
	"library-backend/internal/shared/pagination"
)

type RepositoryInterface interface {
	Create(ctx context.Context, rv *model.Reservation) (*model.Reservation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Reservation, int64, error)
	GetByReader(ctx context.Context, readerID uuid.UUID, p pagination.Params) ([]model.Reservation, int64, error)
	// UpdateStatus chỉ transition từ pending; row không pending thì RowsAffected = 0.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (*model.Reservation, error)
	// ExpireDue chuyển mọi pending quá hạn sang expired, trả về số row bị đổi.
	ExpireDue(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const reservationColumns = `id, reader_id, book_id, status, reserved_at, expires_at, created_at, updated_at`

func scanReservation(row pgx.Row, rv *model.Reservation) error {
	return row.Scan(&rv.ID, &rv.ReaderID, &rv.BookID, &rv.Status, &rv.ReservedAt,
		&rv.ExpiresAt, &rv.CreatedAt, &rv.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, rv *model.Reservation) (*model.Reservation, error) {
	query := `
        INSERT INTO reservations (reader_id, book_id, status, reserved_at, expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + reservationColumns

	var created model.Reservation
	err := scanReservation(r.pool.QueryRow(ctx, query,
		rv.ReaderID, rv.BookID, rv.Status, rv.ReservedAt, rv.ExpiresAt), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reservation, error) {
	var rv model.Reservation
	err := scanReservation(r.pool.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id), &rv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by id: %w", err)
	}
	return &rv, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Reservation, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+reservationColumns+`
        FROM reservations
        ORDER BY reserved_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations: %w", err)
	}

	return reservations, total, nil
}

func (r *postgresRepository) GetByReader(ctx context.Context, readerID uuid.UUID, p pagination.Params) ([]model.Reservation, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+reservationColumns+`
        FROM reservations
        WHERE reader_id = $1
        ORDER BY reserved_at DESC
        LIMIT $2 OFFSET $3`, readerID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reservations by reader: %w", err)
	}
	defer rows.Close()

	reservations, err := collectReservations(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reservations WHERE reader_id = $1`, readerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reservations by reader: %w", err)
	}

	return reservations, total, nil
}

// UpdateStatus là conditional update: WHERE status = from giữ cho transition
// atomic dưới concurrent fulfill/cancel.
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (*model.Reservation, error) {
	query := `
        UPDATE reservations
        SET status = $1, updated_at = NOW()
        WHERE id = $2 AND status = $3
        RETURNING ` + reservationColumns

	var updated model.Reservation
	err := scanReservation(r.pool.QueryRow(ctx, query, to, id, from), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row không tồn tại hoặc không còn ở trạng thái from.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, model.ErrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.pool.Exec(ctx, `
        UPDATE reservations
        SET status = $1, updated_at = NOW()
        WHERE status = $2 AND expires_at <= $3`,
		model.StatusExpired, model.StatusPending, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire reservations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrReservationNotFound
	}
	return nil
}

func collectReservations(rows pgx.Rows) ([]model.Reservation, error) {
	var reservations []model.Reservation
	for rows.Next() {
		var rv model.Reservation
		if err := scanReservation(rows, &rv); err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reservations: %w", err)
	}
	return reservations, nil
}
