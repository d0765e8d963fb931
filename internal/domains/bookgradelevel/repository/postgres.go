package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	bookmodel "library-backend/internal/domains/book/model"
	"library-backend/internal/domains/bookgradelevel/model"
	gradelevelmodel "library-backend/internal/domains/gradelevel/model"
	"library-backend/internal/shared/pagination"
	"library-backend/pkg/database"
)

type RepositoryInterface interface {
	Add(ctx context.Context, bookID, gradeLevelID uuid.UUID) (*model.BookGradeLevel, error)
	Remove(ctx context.Context, bookID, gradeLevelID uuid.UUID) error
	SetForBook(ctx context.Context, bookID uuid.UUID, gradeLevelIDs []uuid.UUID) error
	ListGradeLevelsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]gradelevelmodel.GradeLevel, int64, error)
	ListBooksOfGradeLevel(ctx context.Context, gradeLevelID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error)
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Add(ctx context.Context, bookID, gradeLevelID uuid.UUID) (*model.BookGradeLevel, error) {
	query := `
        INSERT INTO book_grade_levels (book_id, grade_level_id)
        VALUES ($1, $2)
        RETURNING book_id, grade_level_id, created_at`

	var link model.BookGradeLevel
	err := r.pool.QueryRow(ctx, query, bookID, gradeLevelID).Scan(&link.BookID, &link.GradeLevelID, &link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, model.ErrDuplicateLink
		}
		return nil, fmt.Errorf("failed to link book and grade level: %w", err)
	}
	return &link, nil
}

func (r *postgresRepository) Remove(ctx context.Context, bookID, gradeLevelID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM book_grade_levels WHERE book_id = $1 AND grade_level_id = $2`, bookID, gradeLevelID)
	if err != nil {
		return fmt.Errorf("failed to unlink book and grade level: %w", err)
	}
	return nil
}

func (r *postgresRepository) SetForBook(ctx context.Context, bookID uuid.UUID, gradeLevelIDs []uuid.UUID) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM book_grade_levels WHERE book_id = $1`, bookID); err != nil {
			return fmt.Errorf("failed to clear book grade levels: %w", err)
		}
		if len(gradeLevelIDs) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, gradeLevelID := range gradeLevelIDs {
			batch.Queue(`INSERT INTO book_grade_levels (book_id, grade_level_id) VALUES ($1, $2)`, bookID, gradeLevelID)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range gradeLevelIDs {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to insert book grade level: %w", err)
			}
		}
		return nil
	})
}

func (r *postgresRepository) ListGradeLevelsOfBook(ctx context.Context, bookID uuid.UUID, p pagination.Params) ([]gradelevelmodel.GradeLevel, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT g.id, g.name, g.slug, g.display_order, g.created_at, g.updated_at
        FROM grade_levels g
        JOIN book_grade_levels bg ON bg.grade_level_id = g.id
        WHERE bg.book_id = $1
        ORDER BY g.display_order ASC, g.name ASC
        LIMIT $2 OFFSET $3`, bookID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query grade levels of book: %w", err)
	}
	defer rows.Close()

	var levels []gradelevelmodel.GradeLevel
	for rows.Next() {
		var g gradelevelmodel.GradeLevel
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.DisplayOrder, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan grade level: %w", err)
		}
		levels = append(levels, g)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating grade levels of book: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_grade_levels WHERE book_id = $1`, bookID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count grade levels of book: %w", err)
	}

	return levels, total, nil
}

func (r *postgresRepository) ListBooksOfGradeLevel(ctx context.Context, gradeLevelID uuid.UUID, p pagination.Params) ([]bookmodel.Book, int64, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT b.id, b.title, b.slug, b.isbn, b.description, b.publish_year, b.publisher_id, b.location_id, b.created_at, b.updated_at
        FROM books b
        JOIN book_grade_levels bg ON bg.book_id = b.id
        WHERE bg.grade_level_id = $1
        ORDER BY b.title ASC
        LIMIT $2 OFFSET $3`, gradeLevelID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query books of grade level: %w", err)
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
		return nil, 0, fmt.Errorf("error iterating books of grade level: %w", err)
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM book_grade_levels WHERE grade_level_id = $1`, gradeLevelID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books of grade level: %w", err)
	}

	return books, total, nil
}
