package store

import (
	"context"
	"errors"
	"fmt"

	"catalogservice/internal/book"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

const bookColumns = "id, isbn, title, author, price, publisher, version, created_at, created_by, last_modified_at, last_modified_by"

// BookPG is the Postgres book repository. Optimistic concurrency rides on a
// conditional UPDATE guarded by the stored version, so racing writers that
// read the same version cannot both win.
type BookPG struct {
	db *pgxpool.Pool
}

func NewBookPG(db *pgxpool.Pool) *BookPG {
	return &BookPG{db: db}
}

func (r *BookPG) FindAll(ctx context.Context) ([]book.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books ORDER BY title", bookColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *BookPG) FindByISBN(ctx context.Context, isbn string) (book.Book, error) {
	query := fmt.Sprintf("SELECT %s FROM books WHERE isbn = $1", bookColumns)
	b, err := scanBook(r.db.QueryRow(ctx, query, isbn))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.NotFoundError{ISBN: isbn}
		}
		return book.Book{}, fmt.Errorf("find book by isbn: %w", err)
	}
	return b, nil
}

func (r *BookPG) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM books WHERE isbn = $1)", isbn).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check book exists: %w", err)
	}
	return exists, nil
}

func (r *BookPG) Save(ctx context.Context, b book.Book) (book.Book, error) {
	if b.ID == "" {
		return r.insert(ctx, b)
	}
	return r.update(ctx, b)
}

func (r *BookPG) insert(ctx context.Context, b book.Book) (book.Book, error) {
	b.ID = uuid.New().String()

	const query = `
		INSERT INTO books (id, isbn, title, author, price, publisher, version, created_at, created_by, last_modified_at, last_modified_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		b.ID, b.ISBN, b.Title, b.Author, b.Price, b.Publisher,
		b.Version, b.CreatedAt, b.CreatedBy, b.LastModifiedAt, b.LastModifiedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return book.Book{}, book.AlreadyExistsError{ISBN: b.ISBN}
		}
		return book.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *BookPG) update(ctx context.Context, b book.Book) (book.Book, error) {
	const query = `
		UPDATE books
		SET title = $1, author = $2, price = $3, publisher = $4,
		    version = version + 1, last_modified_at = $5, last_modified_by = $6
		WHERE id = $7 AND version = $8
		RETURNING version`

	var newVersion int64
	err := r.db.QueryRow(ctx, query,
		b.Title, b.Author, b.Price, b.Publisher,
		b.LastModifiedAt, b.LastModifiedBy, b.ID, b.Version,
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return book.Book{}, book.ConflictError{ISBN: b.ISBN, Version: b.Version}
		}
		return book.Book{}, fmt.Errorf("update book: %w", err)
	}

	b.Version = newVersion
	return b, nil
}

// DeleteByISBN removes the book if present. Absent books are a no-op.
func (r *BookPG) DeleteByISBN(ctx context.Context, isbn string) error {
	_, err := r.db.Exec(ctx, "DELETE FROM books WHERE isbn = $1", isbn)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func scanBook(row pgx.Row) (book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Price, &b.Publisher,
		&b.Version, &b.CreatedAt, &b.CreatedBy, &b.LastModifiedAt, &b.LastModifiedBy,
	)
	return b, err
}
