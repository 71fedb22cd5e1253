package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() (http.HandlerFunc, *bool) {
	called := false
	return func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}, &called
}

func TestAPIKeyAuth_Success(t *testing.T) {
	handler, called := okHandler()
	wrapped := APIKeyAuth("secret-key")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
}

func TestAPIKeyAuth_MissingHeader(t *testing.T) {
	handler, called := okHandler()
	wrapped := APIKeyAuth("secret-key")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
}

func TestAPIKeyAuth_InvalidFormat(t *testing.T) {
	handler, called := okHandler()
	wrapped := APIKeyAuth("secret-key")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic secret-key")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
}

func TestAPIKeyAuth_WrongKey(t *testing.T) {
	handler, called := okHandler()
	wrapped := APIKeyAuth("secret-key")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-the-key")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *called)
}

func TestAPIKeyAuth_Disabled(t *testing.T) {
	handler, called := okHandler()
	wrapped := APIKeyAuth("")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *called)
}
