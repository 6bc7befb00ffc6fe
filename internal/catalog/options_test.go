package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveOptions_SortOrders(t *testing.T) {
	movies := []Movie{
		{Title: "A", Year: "1999", Rating: "R", Genres: []string{"Drama", "Action"}},
		{Title: "B", Year: "2020", Rating: "PG", Genres: []string{"Comedy"}},
		{Title: "C", Year: "2005", Rating: "PG-13", Genres: []string{"Action"}},
	}

	opts := DeriveOptions(movies)

	// Genres and ratings lexicographic, years descending numeric.
	assert.Equal(t, []string{"Action", "Comedy", "Drama"}, opts.Genres)
	assert.Equal(t, []string{"2020", "2005", "1999"}, opts.Years)
	assert.Equal(t, []string{"PG", "PG-13", "R"}, opts.Ratings)
}

func TestDeriveOptions_DeduplicatesAcrossRecords(t *testing.T) {
	movies := []Movie{
		{Title: "A", Year: "2000", Rating: "PG", Genres: []string{"Action", "Action"}},
		{Title: "B", Year: "2000", Rating: "PG", Genres: []string{"Action"}},
	}

	opts := DeriveOptions(movies)

	assert.Equal(t, []string{"Action"}, opts.Genres)
	assert.Equal(t, []string{"2000"}, opts.Years)
	assert.Equal(t, []string{"PG"}, opts.Ratings)
}

func TestDeriveOptions_IndependentOfCriteria(t *testing.T) {
	movies := testMovies()

	before := DeriveOptions(movies)

	// Applying filters afterward must not narrow the option universe:
	// options are a function of the catalog alone.
	_ = Filter(movies, Criteria{Genre: "Comedy", Year: "2000", Rating: "PG-13", Search: "c"})
	after := DeriveOptions(movies)

	assert.Equal(t, before, after)

	// Deriving from a filtered subset is a different universe; the
	// engine never does that for dropdowns.
	narrowed := DeriveOptions(Filter(movies, Criteria{Genre: "Comedy"}))
	assert.NotEqual(t, before, narrowed)
}

func TestDeriveOptions_EmptyCatalog(t *testing.T) {
	opts := DeriveOptions(nil)

	assert.Empty(t, opts.Genres)
	assert.Empty(t, opts.Years)
	assert.Empty(t, opts.Ratings)
}
