package catalog

import (
	"net/url"
	"strconv"
)

// Criteria is the set of user-selected filter constraints.
// An empty string means "no constraint" for that dimension.
type Criteria struct {
	Search string `json:"search,omitempty"`
	Genre  string `json:"genre,omitempty"`
	Year   string `json:"year,omitempty"`
	Rating string `json:"rating,omitempty"`
}

// IsZero reports whether no dimension is constrained.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// CriteriaFromValues parses criteria from query parameters.
// Absent parameters mean unconstrained.
func CriteriaFromValues(q url.Values) Criteria {
	return Criteria{
		Search: q.Get("search"),
		Genre:  q.Get("genre"),
		Year:   q.Get("year"),
		Rating: q.Get("rating"),
	}
}

// Values encodes the criteria as query parameters, omitting empty
// dimensions. Round-trips losslessly with CriteriaFromValues, so a
// filtered view can be bookmarked and shared.
func (c Criteria) Values() url.Values {
	q := url.Values{}
	if c.Search != "" {
		q.Set("search", c.Search)
	}
	if c.Genre != "" {
		q.Set("genre", c.Genre)
	}
	if c.Year != "" {
		q.Set("year", c.Year)
	}
	if c.Rating != "" {
		q.Set("rating", c.Rating)
	}
	return q
}

// BrowseState is the navigable view state: criteria plus a 1-based page.
// Changing any criteria dimension through a setter resets the page to 1,
// so a stale page number never survives a filter change.
type BrowseState struct {
	Criteria Criteria
	Page     int
}

// NewBrowseState returns an unconstrained state on page 1.
func NewBrowseState() BrowseState {
	return BrowseState{Page: 1}
}

// StateFromValues parses the full browse state from query parameters.
// A missing or malformed page parameter means page 1.
func StateFromValues(q url.Values) BrowseState {
	state := BrowseState{
		Criteria: CriteriaFromValues(q),
		Page:     1,
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		state.Page = page
	}
	return state
}

// Values encodes the state as query parameters. Page 1 is the default and
// is omitted to keep shared links canonical.
func (s BrowseState) Values() url.Values {
	q := s.Criteria.Values()
	if s.Page > 1 {
		q.Set("page", strconv.Itoa(s.Page))
	}
	return q
}

// SetSearch updates the search term, resetting the page if it changed.
func (s *BrowseState) SetSearch(search string) {
	if s.Criteria.Search != search {
		s.Criteria.Search = search
		s.Page = 1
	}
}

// SetGenre updates the genre constraint, resetting the page if it changed.
func (s *BrowseState) SetGenre(genre string) {
	if s.Criteria.Genre != genre {
		s.Criteria.Genre = genre
		s.Page = 1
	}
}

// SetYear updates the year constraint, resetting the page if it changed.
func (s *BrowseState) SetYear(year string) {
	if s.Criteria.Year != year {
		s.Criteria.Year = year
		s.Page = 1
	}
}

// SetRating updates the rating constraint, resetting the page if it changed.
func (s *BrowseState) SetRating(rating string) {
	if s.Criteria.Rating != rating {
		s.Criteria.Rating = rating
		s.Page = 1
	}
}

// SetPage moves to the given page without touching criteria.
// Non-positive pages clamp to 1.
func (s *BrowseState) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.Page = page
}
