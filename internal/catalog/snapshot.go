package catalog

import "time"

// Snapshot is one immutable load result. All reads during a browsing
// session see a single consistent snapshot; a reload produces a new one.
type Snapshot struct {
	Movies   []Movie
	Options  Options
	Revision uint64
	LoadedAt time.Time
	Source   string

	// titleKeys holds the case-folded title per movie, parallel to
	// Movies, precomputed for detail lookup.
	titleKeys []string
}

// NewSnapshot builds a snapshot over the given records, deriving the
// filter option universe once. The revision is assigned by the Store on
// install.
func NewSnapshot(movies []Movie, source string) *Snapshot {
	keys := make([]string, len(movies))
	for i := range movies {
		keys[i] = foldKey(movies[i].Title)
	}

	return &Snapshot{
		Movies:    movies,
		Options:   DeriveOptions(movies),
		LoadedAt:  time.Now(),
		Source:    source,
		titleKeys: keys,
	}
}

// Lookup finds a movie by title, matched case-insensitively. When two
// titles differ only by case the first match in catalog order wins.
func (s *Snapshot) Lookup(title string) (Movie, bool) {
	key := foldKey(title)
	for i, k := range s.titleKeys {
		if k == key {
			return s.Movies[i], true
		}
	}
	return Movie{}, false
}

// Document rebuilds the wire-format document for this snapshot, used to
// serve the catalog back out to the browsing front-end.
func (s *Snapshot) Document() Document {
	return Document{
		TotalMovies: len(s.Movies),
		Movies:      s.Movies,
	}
}
