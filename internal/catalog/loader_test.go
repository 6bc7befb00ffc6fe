package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/marqueeapp/marquee-server/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const validCatalogJSON = `{
	"total_movies": 2,
	"movies": [
		{"title": "Alien", "year": "1979", "rating": "R", "genres": ["Horror", "Sci-Fi"], "poster": "http://img/alien.jpg", "source": "http://cdn/alien.mp4"},
		{"title": "Up", "year": "2009", "rating": "PG", "genres": ["Animation"], "poster": "http://img/up.jpg", "source": "http://cdn/up.mp4", "description": "An old man flies away."}
	]
}`

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadFromFile(t *testing.T) {
	path := writeCatalogFile(t, validCatalogJSON)
	loader := NewLoader(NewSource(path), testLogger())

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Movies, 2)
	assert.Equal(t, "Alien", snap.Movies[0].Title)
	assert.Equal(t, path, snap.Source)
	assert.Equal(t, []string{"Animation", "Horror", "Sci-Fi"}, snap.Options.Genres)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoader_MissingFileIsLoadFailure(t *testing.T) {
	loader := NewLoader(NewSource(filepath.Join(t.TempDir(), "nope.json")), testLogger())

	snap, err := loader.Load(context.Background())

	assert.Nil(t, snap)
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnavailable))
}

func TestLoader_MalformedJSONIsLoadFailure(t *testing.T) {
	path := writeCatalogFile(t, `{"movies": [`)
	loader := NewLoader(NewSource(path), testLogger())

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnavailable))
}

func TestLoader_ValidationFailureIsLoadFailure(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing movies", `{"total_movies": 0}`},
		{"record without title", `{"movies": [{"year": "2000", "rating": "PG", "poster": "p", "source": "s"}]}`},
		{"non-numeric year", `{"movies": [{"title": "X", "year": "20XX", "rating": "PG", "poster": "p", "source": "s"}]}`},
		{"short year", `{"movies": [{"title": "X", "year": "99", "rating": "PG", "poster": "p", "source": "s"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCatalogFile(t, tt.doc)
			loader := NewLoader(NewSource(path), testLogger())

			_, err := loader.Load(context.Background())

			// No partial success: the whole document is rejected.
			require.Error(t, err)
			assert.True(t, domainerrors.Is(err, domainerrors.ErrUnavailable))
		})
	}
}

func TestLoader_CountFollowsActualRecords(t *testing.T) {
	// A lying total_movies is tolerated; the records win.
	path := writeCatalogFile(t, `{
		"total_movies": 99,
		"movies": [{"title": "X", "year": "2000", "rating": "PG", "poster": "p", "source": "s"}]
	}`)
	loader := NewLoader(NewSource(path), testLogger())

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, snap.Document().TotalMovies)
}

func TestLoader_NormalizesHTMLDescriptions(t *testing.T) {
	path := writeCatalogFile(t, `{
		"movies": [{"title": "X", "year": "2000", "rating": "PG", "poster": "p", "source": "s",
			"description": "<p>A <b>bold</b> tale.</p>"}]
	}`)
	loader := NewLoader(NewSource(path), testLogger())

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, snap.Movies[0].Description, "<p>")
	assert.Contains(t, snap.Movies[0].Description, "**bold**")
}

func TestLoader_LoadFromHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validCatalogJSON))
	}))
	defer srv.Close()

	loader := NewLoader(NewSource(srv.URL), testLogger())

	snap, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Movies, 2)
	assert.Equal(t, srv.URL, snap.Source)
}

func TestLoader_HTTPErrorStatusIsLoadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	loader := NewLoader(NewSource(srv.URL), testLogger())

	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrUnavailable))
}

func TestLoader_CanceledContextAbandonsLoad(t *testing.T) {
	path := writeCatalogFile(t, validCatalogJSON)
	loader := NewLoader(NewSource(path), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := loader.Load(ctx)

	assert.Nil(t, snap)
	assert.ErrorIs(t, err, context.Canceled)
}
