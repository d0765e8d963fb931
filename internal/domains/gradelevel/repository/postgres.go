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

	"library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Create(ctx context.Context, g *model.GradeLevel) (*model.GradeLevel, error)
	CreateMany(ctx context.Context, levels []*model.GradeLevel) ([]model.GradeLevel, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.GradeLevel, error)
	GetBySlug(ctx context.Context, slug string) (*model.GradeLevel, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.GradeLevel, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.GradeLevel, int64, error)
	// ExistsByName checks the business-unique name, bỏ qua excludeID (rename case).
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, g *model.GradeLevel) (*model.GradeLevel, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const gradeLevelColumns = `id, name, slug, display_order, created_at, updated_at`

func scanGradeLevel(row pgx.Row, g *model.GradeLevel) error {
	return row.Scan(&g.ID, &g.Name, &g.Slug, &g.DisplayOrder, &g.CreatedAt, &g.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, g *model.GradeLevel) (*model.GradeLevel, error) {
	query := `
        INSERT INTO grade_levels (name, slug, display_order)
        VALUES ($1, $2, $3)
        RETURNING ` + gradeLevelColumns

	var created model.GradeLevel
	if err := scanGradeLevel(r.pool.QueryRow(ctx, query, g.Name, g.Slug, g.DisplayOrder), &created); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create grade level: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) CreateMany(ctx context.Context, levels []*model.GradeLevel) ([]model.GradeLevel, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.GradeLevel, error) {
		query := `
            INSERT INTO grade_levels (name, slug, display_order)
            VALUES ($1, $2, $3)
            RETURNING ` + gradeLevelColumns

		created := make([]model.GradeLevel, 0, len(levels))
		for _, g := range levels {
			var row model.GradeLevel
			if err := scanGradeLevel(tx.QueryRow(ctx, query, g.Name, g.Slug, g.DisplayOrder), &row); err != nil {
				if mapped := mapUniqueViolation(err); mapped != nil {
					return nil, mapped
				}
				return nil, fmt.Errorf("failed to create grade level %q: %w", g.Name, err)
			}
			created = append(created, row)
		}
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.GradeLevel, error) {
	var g model.GradeLevel
	err := scanGradeLevel(r.pool.QueryRow(ctx, `SELECT `+gradeLevelColumns+` FROM grade_levels WHERE id = $1`, id), &g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGradeLevelNotFound
		}
		return nil, fmt.Errorf("failed to get grade level by id: %w", err)
	}
	return &g, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.GradeLevel, error) {
	var g model.GradeLevel
	err := scanGradeLevel(r.pool.QueryRow(ctx, `SELECT `+gradeLevelColumns+` FROM grade_levels WHERE slug = $1`, slug), &g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGradeLevelNotFound
		}
		return nil, fmt.Errorf("failed to get grade level by slug: %w", err)
	}
	return &g, nil
}

// GetAll orders by display_order rồi name, không phải created_at.
func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.GradeLevel, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+gradeLevelColumns+`
        FROM grade_levels
        ORDER BY display_order ASC, name ASC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query grade levels: %w", err)
	}
	defer rows.Close()

	levels, err := collectGradeLevels(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grade_levels`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count grade levels: %w", err)
	}

	return levels, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.GradeLevel, int64, error) {
	pattern := "%" + query + "%"

	rows, err := r.pool.Query(ctx, `
        SELECT `+gradeLevelColumns+`
        FROM grade_levels
        WHERE name ILIKE $1
        ORDER BY display_order ASC, name ASC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search grade levels: %w", err)
	}
	defer rows.Close()

	levels, err := collectGradeLevels(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM grade_levels WHERE name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return levels, total, nil
}

func (r *postgresRepository) ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM grade_levels WHERE name = $1 AND id <> $2)`,
		name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, g *model.GradeLevel) (*model.GradeLevel, error) {
	query := `
        UPDATE grade_levels
        SET name = $1, slug = $2, display_order = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + gradeLevelColumns

	var updated model.GradeLevel
	err := scanGradeLevel(r.pool.QueryRow(ctx, query, g.Name, g.Slug, g.DisplayOrder, g.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrGradeLevelNotFound
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update grade level: %w", err)
	}
	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM grade_levels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete grade level: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrGradeLevelNotFound
	}
	return nil
}

func collectGradeLevels(rows pgx.Rows) ([]model.GradeLevel, error) {
	var levels []model.GradeLevel
	for rows.Next() {
		var g model.GradeLevel
		if err := scanGradeLevel(rows, &g); err != nil {
			return nil, fmt.Errorf("failed to scan grade level: %w", err)
		}
		levels = append(levels, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade levels: %w", err)
	}
	return levels, nil
}

// mapUniqueViolation phân biệt constraint trên name và slug.
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
