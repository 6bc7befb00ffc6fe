package catalog

import (
	"sort"
	"strconv"
)

// Options is the universe of selectable values per filter dimension,
// derived from the catalog alone. It is never narrowed by active
// criteria: dropdowns always offer the full option universe.
type Options struct {
	Genres  []string `json:"genres"`
	Years   []string `json:"years"`
	Ratings []string `json:"ratings"`
}

// DeriveOptions computes the filter option sets in a single pass over the
// records. Genres and ratings sort lexicographically, years descending
// numeric.
func DeriveOptions(movies []Movie) Options {
	genreSet := make(map[string]struct{})
	yearSet := make(map[string]struct{})
	ratingSet := make(map[string]struct{})

	for i := range movies {
		for _, g := range movies[i].Genres {
			genreSet[g] = struct{}{}
		}
		yearSet[movies[i].Year] = struct{}{}
		ratingSet[movies[i].Rating] = struct{}{}
	}

	opts := Options{
		Genres:  setToSorted(genreSet),
		Years:   setToSorted(yearSet),
		Ratings: setToSorted(ratingSet),
	}

	// Years are 4-digit strings; compare numerically, newest first.
	sort.Slice(opts.Years, func(i, j int) bool {
		return yearValue(opts.Years[i]) > yearValue(opts.Years[j])
	})

	return opts
}

func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func yearValue(year string) int {
	n, err := strconv.Atoi(year)
	if err != nil {
		return 0
	}
	return n
}
