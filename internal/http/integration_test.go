package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apphttp "catalogservice/internal/http"
	"catalogservice/internal/auth"
	"catalogservice/internal/book"
	"catalogservice/internal/platform/logger"
	"catalogservice/internal/store"
	"catalogservice/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (http.Handler, *store.BookMem) {
	t.Helper()
	repo := store.NewBookMem()
	log := logger.NewNop()
	service := book.NewService(repo, nil)

	router := apphttp.NewRouter(apphttp.RouterConfig{
		BookHandler: apphttp.NewBookHandler(service, log),
		JWTSecret:   testutil.Secret,
		Policy:      auth.DefaultPolicy(),
		Logger:      log,
	})
	return router, repo
}

var bookBody = map[string]interface{}{
	"isbn":      "7373731394",
	"title":     "Title",
	"author":    "Author",
	"price":     9.90,
	"publisher": "Polarsophia",
}

func TestAuthorizationMatrix(t *testing.T) {
	employee := testutil.EmployeeToken("isabelle")
	customer := testutil.CustomerToken("bjorn")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		token  string
		want   int
	}{
		{"anonymous greeting", http.MethodGet, "/", nil, "", http.StatusOK},
		{"anonymous book list", http.MethodGet, "/books", nil, "", http.StatusOK},
		{"anonymous health", http.MethodGet, "/actuator/health", nil, "", http.StatusOK},
		{"anonymous readiness", http.MethodGet, "/actuator/health/readiness", nil, "", http.StatusOK},
		{"anonymous delete", http.MethodDelete, "/books/7373731394", nil, "", http.StatusUnauthorized},
		{"anonymous create", http.MethodPost, "/books", bookBody, "", http.StatusUnauthorized},
		{"anonymous update", http.MethodPut, "/books/7373731394", bookBody, "", http.StatusUnauthorized},
		{"expired token delete", http.MethodDelete, "/books/7373731394", nil, testutil.ExpiredToken("isabelle"), http.StatusUnauthorized},
		{"garbage token delete", http.MethodDelete, "/books/7373731394", nil, "not.a.token", http.StatusUnauthorized},
		{"expired token on public read", http.MethodGet, "/books", nil, testutil.ExpiredToken("isabelle"), http.StatusOK},
		{"customer delete", http.MethodDelete, "/books/7373731394", nil, customer, http.StatusForbidden},
		{"customer create", http.MethodPost, "/books", bookBody, customer, http.StatusForbidden},
		{"customer read", http.MethodGet, "/books", nil, customer, http.StatusOK},
		{"employee delete", http.MethodDelete, "/books/7373731394", nil, employee, http.StatusNoContent},
		{"employee create", http.MethodPost, "/books", bookBody, employee, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestServer(t)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, testutil.NewRequestWithAuth(tt.method, tt.path, tt.body, tt.token))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCreateBookRoundTrip(t *testing.T) {
	router, _ := newTestServer(t)
	employee := testutil.EmployeeToken("isabelle")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", bookBody, employee))

	created := testutil.Record(w)
	require.Equal(t, http.StatusCreated, created.Code)

	data := created.Body["data"].(map[string]interface{})
	assert.Equal(t, "7373731394", data["isbn"])
	assert.Equal(t, "Title", data["title"])
	assert.Equal(t, "Author", data["author"])
	assert.Equal(t, 9.90, data["price"])
	assert.Equal(t, "Polarsophia", data["publisher"])
	assert.Equal(t, float64(0), data["version"])
	assert.Equal(t, "isabelle", data["created_by"])
	assert.Equal(t, "isabelle", data["last_modified_by"])
	assert.NotEmpty(t, data["created_at"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/7373731394", nil))

	fetched := testutil.Record(w)
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Equal(t, data, fetched.Body["data"])
}

func TestCreateBookTwiceConflicts(t *testing.T) {
	router, _ := newTestServer(t)
	employee := testutil.EmployeeToken("isabelle")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", bookBody, employee))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", bookBody, employee))

	resp := testutil.Record(w)
	assert.Equal(t, http.StatusConflict, resp.Code)
	errBody := resp.Body["error"].(map[string]interface{})
	assert.Equal(t, "book_already_exists", errBody["code"])
}

func TestUpdateMissingBookCreatesIt(t *testing.T) {
	router, _ := newTestServer(t)
	employee := testutil.EmployeeToken("isabelle")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPut, "/books/7373731394", bookBody, employee))

	updated := testutil.Record(w)
	require.Equal(t, http.StatusOK, updated.Code)
	data := updated.Body["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["version"])

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/7373731394", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdatePreservesAuditLineage(t *testing.T) {
	router, _ := newTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", bookBody, testutil.EmployeeToken("isabelle")))
	created := testutil.Record(w)
	require.Equal(t, http.StatusCreated, created.Code)
	createdData := created.Body["data"].(map[string]interface{})

	patch := map[string]interface{}{
		"isbn": "7373731394", "title": "New Title", "author": "Author", "price": 12.50,
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPut, "/books/7373731394", patch, testutil.EmployeeToken("sofia")))

	updated := testutil.Record(w)
	require.Equal(t, http.StatusOK, updated.Code)
	data := updated.Body["data"].(map[string]interface{})

	assert.Equal(t, createdData["created_at"], data["created_at"])
	assert.Equal(t, "isabelle", data["created_by"])
	assert.Equal(t, "sofia", data["last_modified_by"])
	assert.Equal(t, float64(1), data["version"])
	assert.Equal(t, "New Title", data["title"])
}

func TestDeleteIsIdempotentOverHTTP(t *testing.T) {
	router, _ := newTestServer(t)
	employee := testutil.EmployeeToken("isabelle")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", bookBody, employee))
	require.Equal(t, http.StatusCreated, w.Code)

	for i := 0; i < 2; i++ {
		w = httptest.NewRecorder()
		router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodDelete, "/books/7373731394", nil, employee))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/books/7373731394", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestValidationOverHTTP(t *testing.T) {
	router, _ := newTestServer(t)
	employee := testutil.EmployeeToken("isabelle")

	bodies := []map[string]interface{}{
		{"isbn": "7373731394", "title": "", "author": "Author", "price": 9.90},
		{"isbn": "7373731394", "title": "Title", "author": "Author", "price": -1},
		{"isbn": "bad-isbn", "title": "Title", "author": "Author", "price": 9.90},
	}

	for _, body := range bodies {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodPost, "/books", body, employee))

		resp := testutil.Record(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		errBody := resp.Body["error"].(map[string]interface{})
		assert.Equal(t, "validation_failed", errBody["code"])
	}
}

func TestUnknownRouteRequiresAuthority(t *testing.T) {
	router, _ := newTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, testutil.NewRequestWithAuth(http.MethodGet, "/admin", nil, testutil.CustomerToken("bjorn")))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
