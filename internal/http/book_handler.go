package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"catalogservice/internal/book"
	"catalogservice/internal/httpx"
	"catalogservice/internal/platform/logger"
)

// BookHandler exposes the catalog service over HTTP. Authorization has already
// happened by the time a request gets here; the handler only extracts the
// principal for auditing and maps service errors to statuses.
type BookHandler struct {
	service *book.Service
	log     *logger.Logger
}

func NewBookHandler(service *book.Service, log *logger.Logger) *BookHandler {
	return &BookHandler{service: service, log: log}
}

type bookRequest struct {
	ISBN      string  `json:"isbn"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Price     float64 `json:"price"`
	Publisher string  `json:"publisher"`
}

func (req bookRequest) toBook() book.Book {
	return book.Book{
		ISBN:      req.ISBN,
		Title:     req.Title,
		Author:    req.Author,
		Price:     req.Price,
		Publisher: req.Publisher,
	}
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.ViewBookList(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, books)
}

// GetByISBN handles GET /books/{isbn}
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.ViewBookDetails(r.Context(), r.PathValue("isbn"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, b)
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON", nil)
		return
	}

	created, err := h.service.AddBookToCatalog(r.Context(), req.toBook(), httpx.PrincipalFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessCreated(w, created)
}

// Update handles PUT /books/{isbn}
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", "Request body is not valid JSON", nil)
		return
	}

	isbn := r.PathValue("isbn")
	if req.ISBN == "" {
		req.ISBN = isbn
	}

	updated, err := h.service.EditBookDetails(r.Context(), isbn, req.toBook(), httpx.PrincipalFrom(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, updated)
}

// Delete handles DELETE /books/{isbn}. Idempotent: absent books answer 204 too.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.RemoveBookFromCatalog(r.Context(), r.PathValue("isbn"), httpx.PrincipalFrom(r)); err != nil {
		h.writeError(w, r, err)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

func (h *BookHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation book.ValidationError
		notFound   book.NotFoundError
		exists     book.AlreadyExistsError
		conflict   book.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		details := make([]httpx.ErrorDetail, 0, len(validation.Fields))
		for _, fe := range validation.Fields {
			details = append(details, httpx.ErrorDetail{Field: fe.Field, Message: fe.Message})
		}
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", "Invalid book", details)
	case errors.As(err, &notFound):
		httpx.JSONError(w, http.StatusNotFound, "book_not_found", notFound.Error(), nil)
	case errors.As(err, &exists):
		httpx.JSONError(w, http.StatusConflict, "book_already_exists", exists.Error(), nil)
	case errors.As(err, &conflict):
		httpx.JSONError(w, http.StatusConflict, "version_conflict", conflict.Error(), nil)
	case errors.Is(err, book.ErrNoPrincipal):
		httpx.JSONError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
	default:
		h.log.Error("unexpected error",
			"request_id", httpx.RequestIDFrom(r),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred", nil)
	}
}
