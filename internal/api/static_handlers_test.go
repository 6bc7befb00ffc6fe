package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marqueeapp/marquee-server/internal/catalog"
	"github.com/marqueeapp/marquee-server/internal/service"
	"github.com/marqueeapp/marquee-server/internal/sse"
)

// setupStaticTestServer builds a server with a populated assets directory.
func setupStaticTestServer(t *testing.T) *Server {
	t.Helper()

	assetsDir := t.TempDir()
	writeAsset(t, assetsDir, "index.html", "<!doctype html><title>Marquee</title>")
	writeAsset(t, assetsDir, "app.3f8a9c2d11.js", "console.log('marquee')")
	writeAsset(t, assetsDir, "style.css", "body{margin:0}")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testServerConfig(t)
	cfg.Web.AssetsDir = assetsDir

	store := catalog.NewStore()
	store.Install(catalog.NewSnapshot(testFixtureMovies(), "test"))

	services := &Services{
		Catalog:  service.NewCatalogService(store, cfg, logger),
		Instance: service.NewInstanceService(cfg, logger),
	}

	s := NewServer(store, services, sse.NewManager(logger), cfg, logger)
	t.Cleanup(s.Close)
	return s
}

func writeAsset(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestStatic_Index(t *testing.T) {
	s := setupStaticTestServer(t)

	rec := get(t, s, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Marquee")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestStatic_HashedAssetImmutable(t *testing.T) {
	s := setupStaticTestServer(t)

	rec := get(t, s, "/app.3f8a9c2d11.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}

func TestStatic_PlainAssetMediumCache(t *testing.T) {
	s := setupStaticTestServer(t)

	rec := get(t, s, "/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestStatic_SPAFallback(t *testing.T) {
	s := setupStaticTestServer(t)

	// Client-side routes reload to index.html.
	rec := get(t, s, "/movies/Alpha")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Marquee")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestStatic_MissingAssetIs404(t *testing.T) {
	s := setupStaticTestServer(t)

	rec := get(t, s, "/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatic_TraversalStaysInAssetsDir(t *testing.T) {
	s := setupStaticTestServer(t)

	// Dot segments collapse before lookup, so this can only resolve
	// inside the assets dir (here: the SPA fallback).
	rec := get(t, s, "/../../etc/passwd")
	assert.NotContains(t, rec.Body.String(), "root:")
	if rec.Code == http.StatusOK {
		assert.Contains(t, rec.Body.String(), "Marquee")
	}
}

func TestCatalogDocument(t *testing.T) {
	s := setupStaticTestServer(t)

	rec := get(t, s, "/catalog.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=60", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), `"total_movies":4`)
	assert.Contains(t, rec.Body.String(), `"Alpha"`)
}

func TestCatalogDocument_Unavailable(t *testing.T) {
	ts := setupEmptyTestServer(t)

	rec := get(t, ts.Server, "/catalog.json")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
