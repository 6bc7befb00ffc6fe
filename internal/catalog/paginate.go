package catalog

// Page is a bounded contiguous subrange of a filtered result.
type Page struct {
	Items        []Movie
	Number       int
	Size         int
	TotalPages   int
	TotalResults int
}

// HasResults reports whether the filtered list produced any pages at all.
// An empty filtered list yields zero pages, not a page with no items.
func (p Page) HasResults() bool {
	return p.TotalPages > 0
}

// Paginate slices the filtered list into fixed-size pages and returns the
// requested one. Page count is ceil(len/size); the requested number is
// clamped to [1, pageCount], and the served number is reported back in
// the result. A non-positive size is treated as 1.
func Paginate(movies []Movie, size, number int) Page {
	if size < 1 {
		size = 1
	}

	total := len(movies)
	totalPages := (total + size - 1) / size

	if total == 0 {
		return Page{
			Items:        []Movie{},
			Number:       1,
			Size:         size,
			TotalPages:   0,
			TotalResults: 0,
		}
	}

	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	start := (number - 1) * size
	end := min(start+size, total)

	return Page{
		Items:        movies[start:end],
		Number:       number,
		Size:         size,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
