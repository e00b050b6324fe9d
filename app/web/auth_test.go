package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_Authentication(t *testing.T) {
	// bcrypt hash for "testpass"
	passwordHash := "$2y$10$qOIpGITktzktHpcnWXiow.penxJmMcapV3G2ZRQaK0QRW7BSmAuJG" //nolint:gosec // test password hash

	s := New(Config{Version: "test", PasswordHash: passwordHash, RateLimit: 1000})
	handler := s.routes()

	t.Run("without auth returns 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/status", http.NoBody))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, `Basic realm="yourtube"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("with wrong password returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
		req.SetBasicAuth("yourtube", "wrongpass")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with wrong user returns 401", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
		req.SetBasicAuth("admin", "testpass")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with correct auth returns 200", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/status", http.NoBody)
		req.SetBasicAuth("yourtube", "testpass")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ping is not protected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
