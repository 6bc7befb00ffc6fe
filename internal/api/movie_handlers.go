package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/marqueeapp/marquee-server/internal/catalog"
)

func (s *Server) registerMovieRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listMovies",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies",
		Summary:     "List movies",
		Description: "Returns a filtered, paginated page of the catalog",
		Tags:        []string{"Movies"},
	}, s.handleListMovies)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMovie",
		Method:      http.MethodGet,
		Path:        "/api/v1/movies/{title}",
		Summary:     "Get movie",
		Description: "Returns the detail record for a title, matched case-insensitively",
		Tags:        []string{"Movies"},
	}, s.handleGetMovie)
}

// === DTOs ===

type ListMoviesInput struct {
	Search   string `query:"search" doc:"Case-insensitive title substring"`
	Genre    string `query:"genre" doc:"Exact genre"`
	Year     string `query:"year" doc:"Exact release year"`
	Rating   string `query:"rating" doc:"Exact rating"`
	Page     int    `query:"page" minimum:"1" required:"false" doc:"1-based page number"`
	PageSize int    `query:"page_size" minimum:"1" required:"false" doc:"Movies per page"`
}

// MovieSummary is a list entry. The description is only present on the
// detail record.
type MovieSummary struct {
	Title  string   `json:"title" doc:"Movie title"`
	Year   string   `json:"year" doc:"Release year"`
	Rating string   `json:"rating" doc:"Rating"`
	Genres []string `json:"genres,omitempty" doc:"Genres"`
	Poster string   `json:"poster" doc:"Poster image URL"`
	Source string   `json:"source" doc:"Playback source URL"`
}

type ListMoviesResponse struct {
	Movies       []MovieSummary `json:"movies" doc:"Movies on this page"`
	Page         int            `json:"page" doc:"Served page number, after clamping"`
	PageSize     int            `json:"page_size" doc:"Movies per page"`
	TotalPages   int            `json:"total_pages" doc:"Total page count"`
	TotalResults int            `json:"total_results" doc:"Total matching movies"`
	Self         string         `json:"self" doc:"Canonical URL of this view"`
}

type ListMoviesOutput struct {
	Body ListMoviesResponse
}

type GetMovieInput struct {
	Title string `path:"title" doc:"Movie title"`
}

// MovieResponse is the full detail record, description included.
type MovieResponse struct {
	Title       string   `json:"title" doc:"Movie title"`
	Year        string   `json:"year" doc:"Release year"`
	Rating      string   `json:"rating" doc:"Rating"`
	Genres      []string `json:"genres,omitempty" doc:"Genres"`
	Poster      string   `json:"poster" doc:"Poster image URL"`
	Source      string   `json:"source" doc:"Playback source URL"`
	Description string   `json:"description,omitempty" doc:"Plot description, Markdown"`
}

type MovieOutput struct {
	Body MovieResponse
}

// === Handlers ===

func (s *Server) handleListMovies(ctx context.Context, input *ListMoviesInput) (*ListMoviesOutput, error) {
	state := catalog.NewBrowseState()
	state.SetSearch(input.Search)
	state.SetGenre(input.Genre)
	state.SetYear(input.Year)
	state.SetRating(input.Rating)
	state.SetPage(input.Page)

	page, err := s.services.Catalog.ListMovies(ctx, state, input.PageSize)
	if err != nil {
		return nil, err
	}

	movies := make([]MovieSummary, len(page.Items))
	for i, m := range page.Items {
		movies[i] = MovieSummary{
			Title:  m.Title,
			Year:   m.Year,
			Rating: m.Rating,
			Genres: m.Genres,
			Poster: m.Poster,
			Source: m.Source,
		}
	}

	// Out-of-range pages clamp, so the canonical link carries the page
	// actually served.
	state.SetPage(page.Number)

	return &ListMoviesOutput{Body: ListMoviesResponse{
		Movies:       movies,
		Page:         page.Number,
		PageSize:     page.Size,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
		Self:         selfURL("/api/v1/movies", state),
	}}, nil
}

func (s *Server) handleGetMovie(ctx context.Context, input *GetMovieInput) (*MovieOutput, error) {
	m, err := s.services.Catalog.GetMovie(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	return &MovieOutput{Body: MovieResponse{
		Title:       m.Title,
		Year:        m.Year,
		Rating:      m.Rating,
		Genres:      m.Genres,
		Poster:      m.Poster,
		Source:      m.Source,
		Description: m.Description,
	}}, nil
}

// selfURL builds the canonical, shareable URL for a browse state.
func selfURL(path string, state catalog.BrowseState) string {
	if q := state.Values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
