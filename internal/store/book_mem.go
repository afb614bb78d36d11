package store

import (
	"context"
	"sort"
	"sync"

	"catalogservice/internal/book"

	"github.com/google/uuid"
)

// BookMem is an in-memory book repository with the same Save and Delete
// semantics as the Postgres one. Used by tests and for running the service
// without a database. The mutex makes the version check-and-increment atomic.
type BookMem struct {
	mu    sync.Mutex
	books map[string]book.Book // keyed by isbn
}

func NewBookMem() *BookMem {
	return &BookMem{books: make(map[string]book.Book)}
}

func (r *BookMem) FindAll(ctx context.Context) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := make([]book.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books, nil
}

func (r *BookMem) FindByISBN(ctx context.Context, isbn string) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[isbn]
	if !ok {
		return book.Book{}, book.NotFoundError{ISBN: isbn}
	}
	return b, nil
}

func (r *BookMem) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.books[isbn]
	return ok, nil
}

func (r *BookMem) Save(ctx context.Context, b book.Book) (book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if b.ID == "" {
		if _, ok := r.books[b.ISBN]; ok {
			return book.Book{}, book.AlreadyExistsError{ISBN: b.ISBN}
		}
		b.ID = uuid.New().String()
		r.books[b.ISBN] = b
		return b, nil
	}

	stored, ok := r.books[b.ISBN]
	if !ok || stored.ID != b.ID || stored.Version != b.Version {
		return book.Book{}, book.ConflictError{ISBN: b.ISBN, Version: b.Version}
	}
	b.Version++
	r.books[b.ISBN] = b
	return b, nil
}

func (r *BookMem) DeleteByISBN(ctx context.Context, isbn string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.books, isbn)
	return nil
}
