// Package catalog implements the movie catalog: a read-only in-memory
// collection loaded once from a JSON document, with filtering, option
// derivation, and pagination over it.
package catalog

import (
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Movie is a single catalog record. Immutable once loaded.
// The title doubles as the human-readable identifier for detail lookup
// and is assumed unique within a catalog.
type Movie struct {
	Title       string   `json:"title" validate:"required"`
	Year        string   `json:"year" validate:"required,len=4,numeric"`
	Rating      string   `json:"rating" validate:"required"`
	Genres      []string `json:"genres"`
	Poster      string   `json:"poster" validate:"required"`
	Source      string   `json:"source" validate:"required"`
	Description string   `json:"description,omitempty"`
}

// HasGenre reports whether the movie carries the given genre.
func (m *Movie) HasGenre(genre string) bool {
	return slices.Contains(m.Genres, genre)
}

// Document is the catalog wire format:
// { "total_movies": N, "movies": [...] }.
type Document struct {
	TotalMovies int     `json:"total_movies"`
	Movies      []Movie `json:"movies" validate:"required,dive"`
}

// foldKey returns a canonical case-folded form of s for case-insensitive
// comparison. NFC first so composed and decomposed titles compare equal.
func foldKey(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
