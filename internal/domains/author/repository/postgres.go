package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// RepositoryInterface là data-access contract của author domain.
type RepositoryInterface interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	CreateMany(ctx context.Context, authors []*model.Author) ([]model.Author, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error)
	GetBySlug(ctx context.Context, slug string) (*model.Author, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Author, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// postgresRepository dùng pgxpool cho PostgreSQL và Redis cho cache-aside.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) RepositoryInterface {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	authorCacheKeyPrefix = "author:"
	authorSlugKeyPrefix  = "author:slug:"
	authorListKeyPrefix  = "authors:list:"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, author_name, slug, nationality, bio, created_at, updated_at`

func scanAuthor(row pgx.Row, a *model.Author) error {
	return row.Scan(&a.ID, &a.AuthorName, &a.Slug, &a.Nationality, &a.Bio, &a.CreatedAt, &a.UpdatedAt)
}

// Create inserts new author with generated ID and timestamps.
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (author_name, slug, nationality, bio)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	var created model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.AuthorName, a.Slug, a.Nationality, a.Bio), &created)
	if err != nil {
		if isUniqueViolation(err, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

// CreateMany persists the batch in one transaction: một row lỗi thì không row nào được commit.
func (r *postgresRepository) CreateMany(ctx context.Context, authors []*model.Author) ([]model.Author, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.Author, error) {
		query := `
            INSERT INTO authors (author_name, slug, nationality, bio)
            VALUES ($1, $2, $3, $4)
            RETURNING ` + authorColumns

		created := make([]model.Author, 0, len(authors))
		for _, a := range authors {
			var row model.Author
			if err := scanAuthor(tx.QueryRow(ctx, query, a.AuthorName, a.Slug, a.Nationality, a.Bio), &row); err != nil {
				if isUniqueViolation(err, "slug") {
					return nil, model.ErrDuplicateSlug
				}
				return nil, fmt.Errorf("failed to create author %q: %w", a.AuthorName, err)
			}
			created = append(created, row)
		}

		r.invalidateListCache(ctx)
		return created, nil
	})
}

// GetByID retrieves author by UUID with caching.
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	if err := scanAuthor(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	if data, err := json.Marshal(a); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), cacheTTL)
	}

	return &a, nil
}

// GetBySlug retrieves author by URL slug with caching.
func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Author, error) {
	cacheKey := authorSlugKeyPrefix + slug

	var a model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE slug = $1`
	if err := scanAuthor(r.pool.QueryRow(ctx, query, slug), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by slug: %w", err)
	}

	if data, err := json.Marshal(a); err == nil {
		// Cache cả theo id lẫn slug
		_ = r.cache.Set(ctx, cacheKey, string(data), cacheTTL)
		_ = r.cache.Set(ctx, authorCacheKeyPrefix+a.ID.String(), string(data), cacheTTL)
	}

	return &a, nil
}

// GetAll retrieves a window ordered by creation time descending, plus total count.
func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Author, int64, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return authors, total, nil
}

// Search matches case-insensitive substring trên author_name, nationality, bio.
// query đã được wildcard-escape ở service layer.
func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Author, int64, error) {
	pattern := "%" + query + "%"
	where := `author_name ILIKE $1 OR nationality ILIKE $1 OR bio ILIKE $1`

	rows, err := r.pool.Query(ctx, `
        SELECT `+authorColumns+`
        FROM authors
        WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`,
		pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	authors, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return authors, total, nil
}

// ExistsBySlug checks if slug is taken (lightweight query).
func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

// Update persists the merged row. Service layer đã re-fetch và merge.
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET author_name = $1, slug = $2, nationality = $3, bio = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING ` + authorColumns

	var updated model.Author
	err := scanAuthor(r.pool.QueryRow(ctx, query, a.AuthorName, a.Slug, a.Nationality, a.Bio, a.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if isUniqueViolation(err, "slug") {
			return nil, model.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidateAuthorCache(ctx, a.ID, a.Slug)
	r.invalidateListCache(ctx)

	return &updated, nil
}

// Delete removes author by ID.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var slug string
	if err := r.pool.QueryRow(ctx, `SELECT slug FROM authors WHERE id = $1`, id).Scan(&slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to load author before delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	r.invalidateAuthorCache(ctx, id, slug)
	r.invalidateListCache(ctx)

	return nil
}

func collectAuthors(rows pgx.Rows) ([]model.Author, error) {
	var authors []model.Author
	for rows.Next() {
		var a model.Author
		if err := scanAuthor(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}
	return authors, nil
}

func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && strings.Contains(pgErr.ConstraintName+pgErr.Message, column)
	}
	return false
}

func (r *postgresRepository) invalidateAuthorCache(ctx context.Context, id uuid.UUID, slug string) {
	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String(), authorSlugKeyPrefix+slug)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	_ = r.cache.DeletePattern(ctx, authorListKeyPrefix+"*")
}
