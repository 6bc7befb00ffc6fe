package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerFilterRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getFilterOptions",
		Method:      http.MethodGet,
		Path:        "/api/v1/filters",
		Summary:     "Get filter options",
		Description: "Returns the full filter option universe for the current catalog",
		Tags:        []string{"Movies"},
	}, s.handleGetFilterOptions)
}

// FilterOptionsResponse lists every selectable value per dimension.
// Derived from the whole catalog, never narrowed by active filters.
type FilterOptionsResponse struct {
	Genres  []string `json:"genres" doc:"Genres, A-Z"`
	Years   []string `json:"years" doc:"Years, newest first"`
	Ratings []string `json:"ratings" doc:"Ratings, A-Z"`
}

type FilterOptionsOutput struct {
	Body FilterOptionsResponse
}

func (s *Server) handleGetFilterOptions(ctx context.Context, _ *struct{}) (*FilterOptionsOutput, error) {
	options, err := s.services.Catalog.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	return &FilterOptionsOutput{Body: FilterOptionsResponse{
		Genres:  options.Genres,
		Years:   options.Years,
		Ratings: options.Ratings,
	}}, nil
}
