package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	authormodel "library-backend/internal/domains/author/model"
	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/bookauthor/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Add(ctx context.Context, bookID, authorID uuid.UUID) (*model.BookAuthor, error)
	// Remove là no-op khi pair không tồn tại.
	Remove(ctx context.Context, bookID, authorID uuid.UUID) error
	// SetForBook replace toàn bộ author list trong một transaction.
	SetForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error
	ListAuthorsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]authormodel.Author, int64, error)
	ListBooksOfAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Add(ctx context.Context, bookID, authorID uuid.UUID) (*model.BookAuthor, error) {
	query := `
        INSERT INTO book_authors (book_id, author_id)
        VALUES ($1, $2)
        RETURNING book_id, author_id, created_at`

	var link model.BookAuthor
	err := r.pool.QueryRow(ctx, query, bookID, authorID).Scan(&link.BookID, &link.AuthorID, &link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateLink
		}
		return nil, fmt.Errorf("failed to link book and author: %w", err)
	}
	return &link, nil
}

func (r *postgresRepository) Remove(ctx context.Context, bookID, authorID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM book_authors WHERE book_id = $1 AND author_id = $2`, bookID, authorID)
	if err != nil {
		return fmt.Errorf("failed to unlink book and author: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetForBook(ctx context.Context, bookID uuid.UUID, authorIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, bookID); err != nil {
			return fmt.Errorf("failed to clear book authors: %w", err)
		}
		if len(authorIDs) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, authorID := range authorIDs {
			batch.Queue(`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`, bookID, authorID)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range authorIDs {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert book author: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresRepository) ListAuthorsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]authormodel.Author, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT a.id, a.author_name, a.slug, a.nationality, a.bio, a.created_at, a.updated_at
        FROM authors a
        JOIN book_authors ba ON ba.author_id = a.id
        WHERE ba.book_id = $1
        ORDER BY a.author_name ASC
        LIMIT $2 OFFSET $3`, bookID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query authors of book: %w", err)
	}
	defer rows.Close()

	var authors []authormodel.Author
	for rows.Next() {
		var a authormodel.Author
		if err := rows.Scan(&a.ID, &a.AuthorName, &a.Slug, &a.Nationality, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating authors of book: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_authors WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors of book: %w", err)
	}

	return authors, total, nil
}

func (r *postgresRepository) ListBooksOfAuthor(ctx context.Context, authorID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT b.id, b.title, b.slug, b.isbn, b.description, b.publish_year, b.publisher_id, b.location_id, b.created_at, b.updated_at
        FROM books b
        JOIN book_authors ba ON ba.book_id = b.id
        WHERE ba.author_id = $1
        ORDER BY b.title ASC
        LIMIT $2 OFFSET $3`, authorID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books of author: %w", err)
	}
	defer rows.Close()

	var books []bookmodel.Book
	for rows.Next() {
		var b bookmodel.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.ISBN, &b.Description, &b.PublishYear,
			&b.PublisherID, &b.LocationID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating books of author: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_authors WHERE author_id = $1`, authorID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books of author: %w", err)
	}

	return books, total, nil
}
