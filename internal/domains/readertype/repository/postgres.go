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

	"library-backend/internal/domains/readertype/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Create(ctx context.Context, rt *model.ReaderType) (*model.ReaderType, error)
	CreateMany(ctx context.Context, types []*model.ReaderType) ([]model.ReaderType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ReaderType, error)
	GetBySlug(ctx context.Context, slug string) (*model.ReaderType, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.ReaderType, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.ReaderType, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, rt *model.ReaderType) (*model.ReaderType, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const readerTypeColumns = `id, name, slug, max_borrow_days, max_borrow_items, late_fee_per_day, created_at, updated_at`

func scanReaderType(row pgx.Row, rt *model.ReaderType) error {
	return row.Scan(&rt.ID, &rt.Name, &rt.Slug, &rt.MaxBorrowDays, &rt.MaxBorrowItems, &rt.LateFeePerDay, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, rt *model.ReaderType) (*model.ReaderType, error) {
	query := `
        INSERT INTO reader_types (name, slug, max_borrow_days, max_borrow_items, late_fee_per_day)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + readerTypeColumns

	var created model.ReaderType
	err := scanReaderType(r.pool.QueryRow(ctx, query,
		rt.Name, rt.Slug, rt.MaxBorrowDays, rt.MaxBorrowItems, rt.LateFeePerDay), &created)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create reader type: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) CreateMany(ctx context.Context, types []*model.ReaderType) ([]model.ReaderType, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.ReaderType, error) {
		query := `
            INSERT INTO reader_types (name, slug, max_borrow_days, max_borrow_items, late_fee_per_day)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING ` + readerTypeColumns

		created := make([]model.ReaderType, 0, len(types))
		for _, rt := range types {
			var row model.ReaderType
			err := scanReaderType(tx.QueryRow(ctx, query,
				rt.Name, rt.Slug, rt.MaxBorrowDays, rt.MaxBorrowItems, rt.LateFeePerDay), &row)
			if err != nil {
				if mapped := mapUniqueViolation(err); mapped != nil {
					return nil, mapped
				}
				return nil, fmt.Errorf("failed to create reader type %q: %w", rt.Name, err)
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ReaderType, error) {
	var rt model.ReaderType
	err := scanReaderType(r.pool.QueryRow(ctx, `SELECT `+readerTypeColumns+` FROM reader_types WHERE id = $1`, id), &rt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderTypeNotFound
		}
		return nil, fmt.Errorf("failed to get reader type by id: %w", err)
	}
	return &rt, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.ReaderType, error) {
	var rt model.ReaderType
	err := scanReaderType(r.pool.QueryRow(ctx, `SELECT `+readerTypeColumns+` FROM reader_types WHERE slug = $1`, slug), &rt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderTypeNotFound
		}
		return nil, fmt.Errorf("failed to get reader type by slug: %w", err)
	}
	return &rt, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.ReaderType, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+readerTypeColumns+`
        FROM reader_types
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reader types: %w", err)
	}
	defer rows.Close()

	types, err := collectReaderTypes(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reader_types`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reader types: %w", err)
	}

	return types, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.ReaderType, int64, error) {
	pattern := "%" + query + "%"

	rows, err := r.pool.Query(ctx, `
        SELECT `+readerTypeColumns+`
        FROM reader_types
        WHERE name ILIKE $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search reader types: %w", err)
	}
	defer rows.Close()

	types, err := collectReaderTypes(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reader_types WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return types, total, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reader_types WHERE name = $1 AND id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, rt *model.ReaderType) (*model.ReaderType, error) {
	query := `
        UPDATE reader_types
        SET name = $1, slug = $2, max_borrow_days = $3, max_borrow_items = $4, late_fee_per_day = $5, updated_at = NOW()
        WHERE id = $6
        RETURNING ` + readerTypeColumns

	var updated model.ReaderType
	err := scanReaderType(r.pool.QueryRow(ctx, query,
		rt.Name, rt.Slug, rt.MaxBorrowDays, rt.MaxBorrowItems, rt.LateFeePerDay, rt.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReaderTypeNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update reader type: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM reader_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reader type: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrReaderTypeNotFound
	}
	return nil
}

func collectReaderTypes(rows pgx.Rows) ([]model.ReaderType, error) {
	var types []model.ReaderType
	for rows.Next() {
		var rt model.ReaderType
		if err := scanReaderType(rows, &rt); err != nil {
			return nil, fmt.Errorf("failed to scan reader type: %w", err)
		}
		types = append(types, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reader types: %w", err)
	}
	return types, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	constraint := pgErr.ConstraintName + pgErr.Message
	if strings.Contains(constraint, "slug") {
		return model.ErrDuplicateSlug
	}
	return model.ErrNameTaken
}
