package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMovies_Defaults(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 2, list.PageSize) // configured default
	assert.Equal(t, 2, list.TotalPages)
	assert.Equal(t, 4, list.TotalResults)
	require.Len(t, list.Movies, 2)
	assert.Equal(t, "Alpha", list.Movies[0].Title)
	assert.Equal(t, "Beta", list.Movies[1].Title)
	assert.Equal(t, "/api/v1/movies", list.Self)
}

func TestListMovies_FilterByYear(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?year=2000")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	assert.Equal(t, 2, list.TotalResults)
	require.Len(t, list.Movies, 2)
	assert.Equal(t, "Alpha", list.Movies[0].Title)
	assert.Equal(t, "Gamma", list.Movies[1].Title)
	assert.Equal(t, "/api/v1/movies?year=2000", list.Self)
}

func TestListMovies_SearchCaseInsensitive(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?search=" + url.QueryEscape("GAM"))
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	require.Len(t, list.Movies, 1)
	assert.Equal(t, "Gamma", list.Movies[0].Title)
}

func TestListMovies_CombinedFilters(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?year=2000&genre=Comedy")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	require.Len(t, list.Movies, 1)
	assert.Equal(t, "Gamma", list.Movies[0].Title)
}

func TestListMovies_NoMatches(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?genre=Horror")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	assert.Empty(t, list.Movies)
	assert.Equal(t, 0, list.TotalPages)
	assert.Equal(t, 0, list.TotalResults)
}

func TestListMovies_PageClamping(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?page=99")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	assert.Equal(t, 2, list.Page)
	require.Len(t, list.Movies, 2)
	assert.Equal(t, "Gamma", list.Movies[0].Title)
	// The canonical link reflects the clamped page.
	assert.Equal(t, "/api/v1/movies?page=2", list.Self)
}

func TestListMovies_PageSizeCapped(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?page_size=50")
	require.Equal(t, http.StatusOK, resp.Code)

	list := decodeBody[ListMoviesResponse](t, resp.Body.Bytes())
	assert.Equal(t, 3, list.PageSize) // configured maximum
	assert.Len(t, list.Movies, 3)
}

func TestListMovies_ListOmitsDescription(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies?search=Alpha")
	require.Equal(t, http.StatusOK, resp.Code)

	assert.NotContains(t, resp.Body.String(), "description")
}

func TestGetMovie(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies/Alpha")
	require.Equal(t, http.StatusOK, resp.Code)

	movie := decodeBody[MovieResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Alpha", movie.Title)
	assert.Equal(t, "2000", movie.Year)
	assert.Equal(t, "First.", movie.Description)
}

func TestGetMovie_CaseInsensitive(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies/" + url.PathEscape("alpha"))
	require.Equal(t, http.StatusOK, resp.Code)

	movie := decodeBody[MovieResponse](t, resp.Body.Bytes())
	assert.Equal(t, "Alpha", movie.Title)
}

func TestGetMovie_NotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/movies/Nonexistent")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "NOT_FOUND")
}

func TestListMovies_CatalogUnavailable(t *testing.T) {
	ts := setupEmptyTestServer(t)

	resp := ts.api.Get("/api/v1/movies")
	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Contains(t, resp.Body.String(), "UNAVAILABLE")
}

func TestGetFilterOptions(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/filters")
	require.Equal(t, http.StatusOK, resp.Code)

	options := decodeBody[FilterOptionsResponse](t, resp.Body.Bytes())
	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, options.Genres)
	assert.Equal(t, []string{"2010", "2000", "1999"}, options.Years)
	assert.Equal(t, []string{"PG", "PG-13", "R"}, options.Ratings)
}

func TestGetFilterOptions_IgnoresActiveFilters(t *testing.T) {
	ts := setupTestServer(t)

	// Options come from the whole catalog regardless of any filtered
	// listing fetched before.
	_ = ts.api.Get("/api/v1/movies?genre=Drama")

	resp := ts.api.Get("/api/v1/filters")
	require.Equal(t, http.StatusOK, resp.Code)

	options := decodeBody[FilterOptionsResponse](t, resp.Body.Bytes())
	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, options.Genres)
}
