package book

import (
	"context"
	"errors"
	"time"
)

// Clock supplies the timestamps stamped onto audit fields. Injected so tests
// can pin time; defaults to time.Now.
type Clock func() time.Time

// Service orchestrates the book lifecycle. It is stateless; the acting
// principal is passed explicitly into every write instead of being read from
// ambient request state.
type Service struct {
	repo  Repository
	clock Clock
}

// NewService creates a new catalog service.
func NewService(repo Repository, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{repo: repo, clock: clock}
}

// ViewBookList returns all books in the catalog. An empty catalog yields an
// empty slice.
func (s *Service) ViewBookList(ctx context.Context) ([]Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []Book{}
	}
	return books, nil
}

// ViewBookDetails returns the book with the given ISBN. Absence is always
// signalled with NotFoundError, never with a zero-value book.
func (s *Service) ViewBookDetails(ctx context.Context, isbn string) (Book, error) {
	return s.repo.FindByISBN(ctx, isbn)
}

// AddBookToCatalog persists a new book with version 0 and audit fields taken
// from the clock and the acting principal. Client-supplied values for the
// system-owned fields are discarded. Returns AlreadyExistsError when a book
// with the same ISBN exists.
func (s *Service) AddBookToCatalog(ctx context.Context, b Book, principal string) (Book, error) {
	if err := Validate(b); err != nil {
		return Book{}, err
	}
	if principal == "" {
		return Book{}, ErrNoPrincipal
	}

	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, err
	}
	if exists {
		return Book{}, AlreadyExistsError{ISBN: b.ISBN}
	}

	now := s.clock()
	b.ID = ""
	b.Version = 0
	b.CreatedAt = now
	b.CreatedBy = principal
	b.LastModifiedAt = now
	b.LastModifiedBy = principal

	return s.repo.Save(ctx, b)
}

// RemoveBookFromCatalog deletes the book with the given ISBN. Deletion is
// permanent and idempotent: removing an absent ISBN is not an error.
func (s *Service) RemoveBookFromCatalog(ctx context.Context, isbn string, principal string) error {
	if principal == "" {
		return ErrNoPrincipal
	}
	return s.repo.DeleteByISBN(ctx, isbn)
}

// EditBookDetails replaces the mutable fields of the book with the given ISBN
// from patch, preserving its identity, audit lineage and version as the
// concurrency token. When no such book exists the patch is inserted as a brand
// new book keyed on patch.ISBN: edit is create-or-replace, not update-or-fail.
func (s *Service) EditBookDetails(ctx context.Context, isbn string, patch Book, principal string) (Book, error) {
	if err := Validate(patch); err != nil {
		return Book{}, err
	}
	if principal == "" {
		return Book{}, ErrNoPrincipal
	}

	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		var notFound NotFoundError
		if errors.As(err, &notFound) {
			return s.AddBookToCatalog(ctx, patch, principal)
		}
		return Book{}, err
	}

	updated := Book{
		ID:             existing.ID,
		ISBN:           existing.ISBN,
		Title:          patch.Title,
		Author:         patch.Author,
		Price:          patch.Price,
		Publisher:      patch.Publisher,
		Version:        existing.Version,
		CreatedAt:      existing.CreatedAt,
		CreatedBy:      existing.CreatedBy,
		LastModifiedAt: s.clock(),
		LastModifiedBy: principal,
	}

	return s.repo.Save(ctx, updated)
}
