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

	"library-backend/internal/domains/location/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Create(ctx context.Context, l *model.Location) (*model.Location, error)
	CreateMany(ctx context.Context, locations []*model.Location) ([]model.Location, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	GetBySlug(ctx context.Context, slug string) (*model.Location, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Location, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Location, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, l *model.Location) (*model.Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const locationColumns = `id, name, slug, floor, description, created_at, updated_at`

func scanLocation(row pgx.Row, l *model.Location) error {
	return row.Scan(&l.ID, &l.Name, &l.Slug, &l.Floor, &l.Description, &l.CreatedAt, &l.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, l *model.Location) (*model.Location, error) {
	query := `
        INSERT INTO locations (name, slug, floor, description)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + locationColumns

	var created model.Location
	if err := scanLocation(r.pool.QueryRow(ctx, query, l.Name, l.Slug, l.Floor, l.Description), &created); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create location: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) CreateMany(ctx context.Context, locations []*model.Location) ([]model.Location, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.Location, error) {
		query := `
            INSERT INTO locations (name, slug, floor, description)
            VALUES ($1, $2, $3, $4)
            RETURNING ` + locationColumns

		created := make([]model.Location, 0, len(locations))
		for _, l := range locations {
			var row model.Location
			if err := scanLocation(tx.QueryRow(ctx, query, l.Name, l.Slug, l.Floor, l.Description), &row); err != nil {
				if isUniqueViolation(err) {
					return nil, model.ErrDuplicateSlug
				}
				return nil, fmt.Errorf("failed to create location %q: %w", l.Name, err)
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	err := scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location by id: %w", err)
	}
	return &l, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Location, error) {
	var l model.Location
	err := scanLocation(r.pool.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE slug = $1`, slug), &l)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLocationNotFound
		}
		return nil, fmt.Errorf("failed to get location by slug: %w", err)
	}
	return &l, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Location, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+locationColumns+`
        FROM locations
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query locations: %w", err)
	}
	defer rows.Close()

	locations, err := collectLocations(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count locations: %w", err)
	}

	return locations, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Location, int64, error) {
	pattern := "%" + query + "%"
	where := `name ILIKE $1 OR description ILIKE $1`

	rows, err := r.pool.Query(ctx, `
        SELECT `+locationColumns+`
        FROM locations
        WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search locations: %w", err)
	}
	defer rows.Close()

	locations, err := collectLocations(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return locations, total, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM locations WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, l *model.Location) (*model.Location, error) {
	query := `
        UPDATE locations
        SET name = $1, slug = $2, floor = $3, description = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING ` + locationColumns

	var updated model.Location
	err := scanLocation(r.pool.QueryRow(ctx, query, l.Name, l.Slug, l.Floor, l.Description, l.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLocationNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update location: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrLocationNotFound
	}
	return nil
}

func collectLocations(rows pgx.Rows) ([]model.Location, error) {
	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := scanLocation(rows, &l); err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}
	return locations, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Message, "slug")
	}
	return false
}
