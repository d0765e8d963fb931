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

	"library-backend/internal/domains/publisher/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Create(ctx context.Context, p *model.Publisher) (*model.Publisher, error)
	CreateMany(ctx context.Context, publishers []*model.Publisher) ([]model.Publisher, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error)
	GetBySlug(ctx context.Context, slug string) (*model.Publisher, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Publisher, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Publisher, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, pub *model.Publisher) (*model.Publisher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const publisherColumns = `id, name, slug, address, phone, created_at, updated_at`

func scanPublisher(row pgx.Row, p *model.Publisher) error {
	return row.Scan(&p.ID, &p.Name, &p.Slug, &p.Address, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, p *model.Publisher) (*model.Publisher, error) {
	query := `
        INSERT INTO publishers (name, slug, address, phone)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + publisherColumns

	var created model.Publisher
	if err := scanPublisher(r.pool.QueryRow(ctx, query, p.Name, p.Slug, p.Address, p.Phone), &created); err != nil {
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create publisher: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) CreateMany(ctx context.Context, publishers []*model.Publisher) ([]model.Publisher, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.Publisher, error) {
		query := `
            INSERT INTO publishers (name, slug, address, phone)
            VALUES ($1, $2, $3, $4)
            RETURNING ` + publisherColumns

		created := make([]model.Publisher, 0, len(publishers))
		for _, p := range publishers {
			var row model.Publisher
			if err := scanPublisher(tx.QueryRow(ctx, query, p.Name, p.Slug, p.Address, p.Phone), &row); err != nil {
				if isUniqueViolation(err) {
					return nil, model.ErrDuplicateSlug
				}
				return nil, fmt.Errorf("failed to create publisher %q: %w", p.Name, err)
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Publisher, error) {
	var p model.Publisher
	err := scanPublisher(r.pool.QueryRow(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by id: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Publisher, error) {
	var p model.Publisher
	err := scanPublisher(r.pool.QueryRow(ctx, `SELECT `+publisherColumns+` FROM publishers WHERE slug = $1`, slug), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPublisherNotFound
		}
		return nil, fmt.Errorf("failed to get publisher by slug: %w", err)
	}
	return &p, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Publisher, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+publisherColumns+`
        FROM publishers
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query publishers: %w", err)
	}
	defer rows.Close()

	publishers, err := collectPublishers(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM publishers`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count publishers: %w", err)
	}

	return publishers, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Publisher, int64, error) {
	pattern := "%" + query + "%"
	where := `name ILIKE $1 OR address ILIKE $1`

	rows, err := r.pool.Query(ctx, `
        SELECT `+publisherColumns+`
        FROM publishers
        WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search publishers: %w", err)
	}
	defer rows.Close()

	publishers, err := collectPublishers(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM publishers WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return publishers, total, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM publishers WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, pub *model.Publisher) (*model.Publisher, error) {
	query := `
        UPDATE publishers
        SET name = $1, slug = $2, address = $3, phone = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING ` + publisherColumns

	var updated model.Publisher
	err := scanPublisher(r.pool.QueryRow(ctx, query, pub.Name, pub.Slug, pub.Address, pub.Phone, pub.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPublisherNotFound
		}
		if isUniqueViolation(err) {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update publisher: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM publishers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete publisher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrPublisherNotFound
	}
	return nil
}

func collectPublishers(rows pgx.Rows) ([]model.Publisher, error) {
	var publishers []model.Publisher
	for rows.Next() {
		var p model.Publisher
		if err := scanPublisher(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan publisher: %w", err)
		}
		publishers = append(publishers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating publishers: %w", err)
	}
	return publishers, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Message, "slug")
	}
	return false
}
