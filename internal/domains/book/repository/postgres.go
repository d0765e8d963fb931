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

	"library-backend/internal/domains/book/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/cache"
	"library-backend/pkg/database"
)

// RepositoryInterface là data-access contract của book domain.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	CreateMany(ctx context.Context, books []*model.Book) ([]model.Book, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	GetBySlug(ctx context.Context, slug string) (*model.Book, error)
	GetAll(ctx context.Context, p pagination.Params) ([]model.Book, int64, error)
	Search(ctx context.Context, query string, p pagination.Params) ([]model.Book, int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
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
	bookCacheKeyPrefix = "book:"
	bookSlugKeyPrefix  = "book:slug:"
	bookListKeyPrefix  = "books:list:"
	cacheTTL           = 15 * time.Minute
)

const bookColumns = `id, title, slug, isbn, description, publish_year, publisher_id, location_id, created_at, updated_at`

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Slug, &b.ISBN, &b.Description, &b.PublishYear,
		&b.PublisherID, &b.LocationID, &b.CreatedAt, &b.UpdatedAt)
}

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        INSERT INTO books (title, slug, isbn, description, publish_year, publisher_id, location_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + bookColumns

	var created model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Slug, b.ISBN, b.Description, b.PublishYear, b.PublisherID, b.LocationID), &created)
	if err != nil {
		if mapped := mapBookError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	r.invalidateListCache(ctx)

	return &created, nil
}

// CreateMany persists the batch in one transaction: một row lỗi thì không row nào được commit.
func (r *postgresRepository) CreateMany(ctx context.Context, books []*model.Book) ([]model.Book, error) {
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]model.Book, error) {
		query := `
            INSERT INTO books (title, slug, isbn, description, publish_year, publisher_id, location_id)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
            RETURNING ` + bookColumns

		created := make([]model.Book, 0, len(books))
		for _, b := range books {
			var row model.Book
			err := scanBook(tx.QueryRow(ctx, query,
				b.Title, b.Slug, b.ISBN, b.Description, b.PublishYear, b.PublisherID, b.LocationID), &row)
			if err != nil {
				if mapped := mapBookError(err); mapped != nil {
					return nil, mapped
				}
				return nil, fmt.Errorf("failed to create book %q: %w", b.Title, err)
			}
			created = append(created, row)
		}

		r.invalidateListCache(ctx)
		return created, nil
	})
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	cacheKey := bookCacheKeyPrefix + id.String()

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	if err := scanBook(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	if data, err := json.Marshal(b); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), cacheTTL)
	}

	return &b, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Book, error) {
	cacheKey := bookSlugKeyPrefix + slug

	var b model.Book
	if found, err := r.cache.Get(ctx, cacheKey, &b); err == nil && found {
		return &b, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE slug = $1`
	if err := scanBook(r.pool.QueryRow(ctx, query, slug), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by slug: %w", err)
	}

	if data, err := json.Marshal(b); err == nil {
		// Cache cả theo id lẫn slug
		_ = r.cache.Set(ctx, cacheKey, string(data), cacheTTL)
		_ = r.cache.Set(ctx, bookCacheKeyPrefix+b.ID.String(), string(data), cacheTTL)
	}

	return &b, nil
}

func (r *postgresRepository) GetAll(ctx context.Context, p pagination.Params) ([]model.Book, int64, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return books, total, nil
}

// Search matches case-insensitive substring trên title, isbn, description.
// query đã được wildcard-escape ở service layer.
func (r *postgresRepository) Search(ctx context.Context, query string, p pagination.Params) ([]model.Book, int64, error) {
	pattern := "%" + query + "%"
	where := `title ILIKE $1 OR isbn ILIKE $1 OR description ILIKE $1`

	rows, err := r.pool.Query(ctx, `
        SELECT `+bookColumns+`
        FROM books
        WHERE `+where+`
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`,
		pattern, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	books, err := collectBooks(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE `+where, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	return books, total, nil
}

func (r *postgresRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.Book, error) {
	query := `
        UPDATE books
        SET title = $1, slug = $2, isbn = $3, description = $4, publish_year = $5,
            publisher_id = $6, location_id = $7, updated_at = NOW()
        WHERE id = $8
        RETURNING ` + bookColumns

	var updated model.Book
	err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Slug, b.ISBN, b.Description, b.PublishYear, b.PublisherID, b.LocationID, b.ID), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		if mapped := mapBookError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	r.invalidateBookCache(ctx, b.ID, b.Slug)
	r.invalidateListCache(ctx)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var slug string
	if err := r.pool.QueryRow(ctx, `SELECT slug FROM books WHERE id = $1`, id).Scan(&slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to load book before delete: %w", err)
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	r.invalidateBookCache(ctx, id, slug)
	r.invalidateListCache(ctx)

	return nil
}

func collectBooks(rows pgx.Rows) ([]model.Book, error) {
	var books []model.Book
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}
	return books, nil
}

func mapBookError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505":
		if strings.Contains(pgErr.ConstraintName+pgErr.Message, "slug") {
			return model.ErrDuplicateSlug
		}
	case "23503":
		return model.ErrBadReference
	}
	return nil
}

func (r *postgresRepository) invalidateBookCache(ctx context.Context, id uuid.UUID, slug string) {
	_ = r.cache.Delete(ctx, bookCacheKeyPrefix+id.String(), bookSlugKeyPrefix+slug)
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	_ = r.cache.DeletePattern(ctx, bookListKeyPrefix+"*")
}
