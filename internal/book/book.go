package book

import (
	"errors"
	"fmt"
	"time"
)

// Book is the catalog aggregate. Lookups always key on ISBN; ID is the
// surrogate key owned by the store and is empty until the first save.
type Book struct {
	ID             string    `json:"id,omitempty"`
	ISBN           string    `json:"isbn"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Price          float64   `json:"price"`
	Publisher      string    `json:"publisher,omitempty"`
	Version        int64     `json:"version"`
	CreatedAt      time.Time `json:"created_at"`
	CreatedBy      string    `json:"created_by"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	LastModifiedBy string    `json:"last_modified_by"`
}

// ErrNoPrincipal is returned when a write reaches the service without an
// authenticated principal. The policy layer rejects those requests first,
// so audit fields can never end up empty.
var ErrNoPrincipal = errors.New("no authenticated principal for write operation")

// NotFoundError signals that no book with the given ISBN exists.
type NotFoundError struct {
	ISBN string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("book with isbn %s not found", e.ISBN)
}

// AlreadyExistsError signals that a book with the given ISBN already exists.
type AlreadyExistsError struct {
	ISBN string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("book with isbn %s already exists", e.ISBN)
}

// ConflictError signals that a save carried a stale version and lost the
// optimistic-concurrency check. Callers may retry the read-modify-write cycle.
type ConflictError struct {
	ISBN    string
	Version int64
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("book with isbn %s was modified concurrently (stale version %d)", e.ISBN, e.Version)
}
