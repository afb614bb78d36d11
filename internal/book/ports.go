package book

import (
	"context"
)

// Repository defines the contract for book persistence. All lookups key on
// ISBN; the surrogate ID never leaves the store's own Save/FindAll results.
type Repository interface {
	// FindAll returns every book in the catalog; an empty catalog yields an
	// empty slice, never an error.
	FindAll(ctx context.Context) ([]Book, error)
	// FindByISBN returns the book with the given ISBN or NotFoundError.
	FindByISBN(ctx context.Context, isbn string) (Book, error)
	// ExistsByISBN reports whether a book with the given ISBN exists.
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	// Save inserts the book when it has no surrogate ID, otherwise performs a
	// conditional update guarded by the book's version, returning
	// ConflictError when the stored version differs. The returned book carries
	// the assigned ID and the incremented version.
	Save(ctx context.Context, b Book) (Book, error)
	// DeleteByISBN removes the book with the given ISBN. Deleting an absent
	// ISBN is a no-op.
	DeleteByISBN(ctx context.Context, isbn string) error
}
