package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"podcasts/internal/admin"
	"podcasts/internal/config"
	"podcasts/internal/handlers"
	"podcasts/internal/test"
	"podcasts/web"
)

func newTestServer(t *testing.T, withAdmin bool, opts ...func(*config.Config)) http.Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	// httptest requests carry neither TLS nor a Referer.
	cfg := &config.Config{
		SiteTitle:          "Podcasts",
		Location:           time.UTC,
		AdminUsername:      "admin",
		AdminPasswordHash:  string(hash),
		AdminRateLimit:     100,
		AdminRateBurst:     100,
		AdminPlaintextHTTP: true,
		CSRFKey:            bytes.Repeat([]byte("k"), 32),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tmpl, err := web.ParseTemplates(cfg.Location)
	require.NoError(t, err)

	var site *admin.Site
	if withAdmin {
		site, err = admin.NewSite(tmpl, cfg.Location, admin.EpisodeAdmin)
		require.NoError(t, err)
	}

	h := handlers.New(tmpl, cfg.SiteTitle, "")
	return newRouter(cfg, h, site, zerolog.New(io.Discard))
}

func TestRouterHome(t *testing.T) {
	_, mock := test.NewMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM episodes ORDER BY pub_date ASC LIMIT \$1`).
		WillReturnRows(test.EpisodeRows(test.SampleEpisode()))

	rr := httptest.NewRecorder()
	newTestServer(t, true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "My Awesome Podcast Episode")
	assert.NotEmpty(t, rr.Header().Get("X-Request-Id"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouterRejectsWritesOnHome(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestServer(t, true).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouterAdmin(t *testing.T) {
	t.Run("requires credentials", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestServer(t, true).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("serves index when authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("admin", "s3cret")
		rr := httptest.NewRecorder()
		newTestServer(t, true).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Site administration")
	})

	t.Run("not mounted without credentials configured", func(t *testing.T) {
		rr := httptest.NewRecorder()
		newTestServer(t, false).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRouterAdminFailedLoginsAreRateLimited(t *testing.T) {
	srv := newTestServer(t, true, func(cfg *config.Config) {
		cfg.AdminRateLimit = 0.001
		cfg.AdminRateBurst = 2
	})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
		req.SetBasicAuth("admin", "wrong")
		rr := httptest.NewRecorder()
		srv.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestRouterAdminRejectsForgedPosts(t *testing.T) {
	t.Run("cross origin delete", func(t *testing.T) {
		_, mock := test.NewMockDB(t)

		req := httptest.NewRequest(http.MethodPost, "/admin/podcasts/episode/1/delete/", nil)
		req.SetBasicAuth("admin", "s3cret")
		req.Header.Set("Origin", "https://evil.example")
		rr := httptest.NewRecorder()
		newTestServer(t, true).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same origin delete without token", func(t *testing.T) {
		_, mock := test.NewMockDB(t)

		req := httptest.NewRequest(http.MethodPost, "/admin/podcasts/episode/1/delete/", nil)
		req.SetBasicAuth("admin", "s3cret")
		rr := httptest.NewRecorder()
		newTestServer(t, true).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("forms carry a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/podcasts/episode/add/", nil)
		req.SetBasicAuth("admin", "s3cret")
		rr := httptest.NewRecorder()
		newTestServer(t, true).ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `name="gorilla.csrf.Token"`)
		assert.NotEmpty(t, rr.Result().Cookies())
	})
}
