package catalog

import "strings"

// Filter returns the records matching all constrained dimensions, in
// catalog order. A record passes when:
//   - Search is empty or a case-insensitive substring of the title,
//   - Genre is empty or present in the record's genre list,
//   - Year is empty or exactly equals the record year,
//   - Rating is empty or exactly equals the record rating.
//
// Pure function: the result is always an order-preserving subsequence of
// the input and the input is never mutated.
func Filter(movies []Movie, criteria Criteria) []Movie {
	if criteria.IsZero() {
		return movies
	}

	searchKey := ""
	if criteria.Search != "" {
		searchKey = foldKey(criteria.Search)
	}

	matched := make([]Movie, 0, len(movies))
	for i := range movies {
		if matches(&movies[i], criteria, searchKey) {
			matched = append(matched, movies[i])
		}
	}
	return matched
}

func matches(m *Movie, criteria Criteria, searchKey string) bool {
	if searchKey != "" && !strings.Contains(foldKey(m.Title), searchKey) {
		return false
	}
	if criteria.Genre != "" && !m.HasGenre(criteria.Genre) {
		return false
	}
	if criteria.Year != "" && criteria.Year != m.Year {
		return false
	}
	if criteria.Rating != "" && criteria.Rating != m.Rating {
		return false
	}
	return true
}
