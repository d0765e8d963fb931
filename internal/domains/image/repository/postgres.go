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

	"library-backend/internal/domains/image/model"
	"library-backend/internal/shared/pagination"
)

type RepositoryInterface interface {
	Create(ctx context.Context, img *model.Image) (*model.Image, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error)
	GetBySlug(ctx context.Context, slug string) (*model.Image, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Image, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Image, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const imageColumns = `id, file_name, slug, url, thumbnail_url, object_key, content_type, size_bytes, created_at, updated_at`

func scanImage(row pgx.Row, img *model.Image) error {
	return row.Scan(&img.ID, &img.FileName, &img.Slug, &img.URL, &img.ThumbnailURL,
		&img.ObjectKey, &img.ContentType, &img.SizeBytes, &img.CreatedAt, &img.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, img *model.Image) (*model.Image, error) {
	query := `
        INSERT INTO images (file_name, slug, url, thumbnail_url, object_key, content_type, size_bytes)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + imageColumns

	var created model.Image
	err := scanImage(r.pool.QueryRow(ctx, query,
		img.FileName, img.Slug, img.URL, img.ThumbnailURL, img.ObjectKey, img.ContentType, img.SizeBytes), &created)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Message, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Image, error) {
	var img model.Image
	err := scanImage(r.pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE id = $1`, id), &img)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image by id: %w", err)
	}
	return &img, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Image, error) {
	var img model.Image
	err := scanImage(r.pool.QueryRow(ctx, `SELECT `+imageColumns+` FROM images WHERE slug = $1`, slug), &img)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get image by slug: %w", err)
	}
	return &img, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Image, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT `+imageColumns+`
        FROM images
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	images, err := collectImages(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	return images, total, nil
}

func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Image, int64, error) {
	pattern := "%" + query + "%"

	rows, err := r.pool.Query(ctx, `
        SELECT `+imageColumns+`
        FROM images
        WHERE file_name ILIKE $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`, pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search images: %w", err)
	}
	defer rows.Close()

	images, err := collectImages(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM images WHERE file_name ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return images, total, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrImageNotFound
	}
	return nil
}

func collectImages(rows pgx.Rows) ([]model.Image, error) {
	var images []model.Image
	for rows.Next() {
		var img model.Image
		if err := scanImage(rows, &img); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating images: %w", err)
	}
	return images, nil
}
