package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/reader/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Create(ctx context.Context, rd *model.Reader) (*model.Reader, error)
	CreateMany(ctx context.Context, readers []*model.Reader) ([]model.Reader, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Reader, error)
	GetBySlug(ctx context.Context, slug string) (*model.Reader, error)
	GetByCardNumber(ctx context.Context, cardNumber string) (*model.Reader, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Reader, int64, error)
	GetByReaderType(ctx context.Context, readerTypeID uuid.UUID, p pagination.Params) ([]model.Reader, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Reader, int64, error)
	ExistsByCardNumber(ctx context.Context, cardNumber string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, rd *model.Reader) (*model.Reader, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const readerColumns = `id, full_name, slug, card_number, email, phone, date_of_birth, reader_type_id, created_at, updated_at`

func scanReader(row pgx.Row, rd *model.Reader) error {
	return row.Scan(&rd.ID, &rd.FullName, &rd.Slug, &rd.CardNumber, &rd.Email, &rd.Phone,
		&rd.DateOfBirth, &rd.ReaderTypeID, &rd.CreatedAt, &rd.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, rd *model.Reader) (*model.Reader, error) {
	query := `
        INSERT INTO readers (full_name, slug, card_number, email, phone, date_of_birth, reader_type_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + readerColumns

	var created model.Reader
	err := scanReader(r.pool.QueryRow(ctx, query,
		rd.FullName, rd.Slug, rd.CardNumber, rd.Email, rd.Phone, rd.DateOfBirth, rd.ReaderTypeID), &created)
	if err != nil {
		if mapped := mapReaderError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create reader: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) CreateMany(ctx context.Context, readers []*model.Reader) ([]model.Reader, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.Reader, error) {
		query := `
            INSERT INTO readers (full_name, slug, card_number, email, phone, date_of_birth, reader_type_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING ` + readerColumns

		created := make([]model.Reader, 0, len(readers))
		for _, rd := range readers {
			var row model.Reader
			err := scanReader(tx.QueryRow(ctx, query,
				rd.FullName, rd.Slug, rd.CardNumber, rd.Email, rd.Phone, rd.DateOfBirth, rd.ReaderTypeID), &row)
			if err != nil {
				if mapped := mapReaderError(err); mapped != nil {
					return nil, mapped
				}
				return nil, fmt.Errorf("failed to create reader %q: %w", rd.CardNumber, err)
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Reader, error) {
	var rd model.Reader
	err := scanReader(r.pool.QueryRow(ctx, `SELECT `+readerColumns+` FROM readers WHERE id = $1`, id), &rd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to get reader by id: %w", err)
	}
	return &rd, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Reader, error) {
	var rd model.Reader
	err := scanReader(r.pool.QueryRow(ctx, `SELECT `+readerColumns+` FROM readers WHERE slug = $1`, slug), &rd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to get reader by slug: %w", err)
	}
	return &rd, nil
}

func (r *postgresRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*model.Reader, error) {
	var rd model.Reader
	err := scanReader(r.pool.QueryRow(ctx, `SELECT `+readerColumns+` FROM readers WHERE card_number = $1`, cardNumber), &rd)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderNotFound
		}
		return nil, fmt.Errorf("failed to get reader by card number: %w", err)
	}
	return &rd, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Reader, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+readerColumns+`
        FROM readers
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query readers: %w", err)
	}
	defer rows.Close()

	readers, err := collectReaders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM readers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count readers: %w", err)
	}

	return readers, total, nil
}

func (r *postgresRepository) GetByReaderType(ctx context.Context, readerTypeID uuid.UUID, p pagination.Params) ([]model.Reader, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+readerColumns+`
        FROM readers
        WHERE reader_type_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, readerTypeID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query readers by type: %w", err)
	}
	defer rows.Close()

	readers, err := collectReaders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM readers WHERE reader_type_id = $1`, readerTypeID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count readers by type: %w", err)
	}

	return readers, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Reader, int64, error) {
	pattern := "%" + query + "%"
	where := `full_name ILIKE $1 OR card_number ILIKE $1 OR email ILIKE $1`

	rows, err := r.pool.Query(ctx, `
        SELECT `+readerColumns+`
        FROM readers
        WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search readers: %w", err)
	}
	defer rows.Close()

	readers, err := collectReaders(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM readers WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return readers, total, nil
}

func (r *postgresRepository) ExistsByCardNumber(ctx context.Context, cardNumber string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM readers WHERE card_number = $1 AND id <> $2)`,
		cardNumber, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check card number existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, rd *model.Reader) (*model.Reader, error) {
	query := `
        UPDATE readers
        SET full_name = $1, slug = $2, card_number = $3, email = $4, phone = $5,
            date_of_birth = $6, reader_type_id = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING ` + readerColumns

	var updated model.Reader
	err := scanReader(r.pool.QueryRow(ctx, query,
		rd.FullName, rd.Slug, rd.CardNumber, rd.Email, rd.Phone, rd.DateOfBirth, rd.ReaderTypeID, rd.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderNotFound
		}
		if mapped := mapReaderError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update reader: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM readers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reader: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrReaderNotFound
	}
	return nil
}

func collectReaders(rows pgx.Rows) ([]model.Reader, error) {
	var readers []model.Reader
	for rows.Next() {
		var rd model.Reader
		if err := scanReader(rows, &rd); err != nil {
			return nil, fmt.Errorf("failed to scan reader: %w", err)
		}
		readers = append(readers, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readers: %w", err)
	}
	return readers, nil
}

// mapReaderError xử lý unique violation (card_number, slug) và FK violation (reader_type_id).
func mapReaderError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505":
		constraint := pgErr.ConstraintName + pgErr.Message
		if strings.Contains(constraint, "slug") {
			return model.ErrDuplicateSlug
		}
		return model.ErrCardNumberTaken
	case "23503":
		return model.ErrReaderTypeRequired
	}
	return nil
}
