package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"catalogservice/internal/auth"

	"github.com/golang-jwt/jwt/v5"
)

// Secret is the signing secret used by tests.
const Secret = "test-secret-key"

// EmployeeToken returns a token carrying the employee role.
func EmployeeToken(subject string) string {
	token, _ := auth.GenerateToken(Secret, subject, []string{"employee"}, time.Hour)
	return token
}

// CustomerToken returns a token carrying the customer role.
func CustomerToken(subject string) string {
	token, _ := auth.GenerateToken(Secret, subject, []string{"customer"}, time.Hour)
	return token
}

// ExpiredToken returns a token whose validity window has passed.
func ExpiredToken(subject string) string {
	c := auth.Claims{
		Sub:   subject,
		Roles: []string{"employee"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(Secret))
	return token
}

// NewRequest creates an HTTP request with an optional JSON body.
func NewRequest(method, path string, body interface{}) *http.Request {
	var r *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a JSON request carrying a bearer token.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

// RecordedResponse is a decoded test response.
type RecordedResponse struct {
	Code   int
	Header http.Header
	Body   map[string]interface{}
}

// Record decodes a recorder into a RecordedResponse.
func Record(w *httptest.ResponseRecorder) RecordedResponse {
	result := w.Result()
	defer result.Body.Close()

	bodyBytes, _ := io.ReadAll(result.Body)

	var bodyMap map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &bodyMap)
	}

	return RecordedResponse{
		Code:   result.StatusCode,
		Header: result.Header,
		Body:   bodyMap,
	}
}
