// Package service contains the business logic layer between the HTTP API
// and the catalog store.
package service

import (
	"context"
	"log/slog"

	"github.com/marqueeapp/marquee-server/internal/catalog"
	"github.com/marqueeapp/marquee-server/internal/config"
)

// CatalogService handles catalog browsing: filtered, paginated listing,
// option derivation, and per-movie detail lookup.
type CatalogService struct {
	store  *catalog.Store
	cfg    *config.Config
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store *catalog.Store, cfg *config.Config, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// ListMovies returns the page of movies matching the browse state.
// A non-positive page size falls back to the configured default and is
// capped at the configured maximum.
func (s *CatalogService) ListMovies(ctx context.Context, state catalog.BrowseState, pageSize int) (catalog.Page, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Page{}, err
	}

	if pageSize <= 0 {
		pageSize = s.cfg.Catalog.DefaultPageSize
	}
	if pageSize > s.cfg.Catalog.MaxPageSize {
		pageSize = s.cfg.Catalog.MaxPageSize
	}

	filtered, _, err := s.store.Filtered(state.Criteria)
	if err != nil {
		return catalog.Page{}, err
	}

	return catalog.Paginate(filtered, pageSize, state.Page), nil
}

// GetMovie returns the detail record for a title, matched
// case-insensitively.
func (s *CatalogService) GetMovie(ctx context.Context, title string) (catalog.Movie, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Movie{}, err
	}
	return s.store.Lookup(title)
}

// FilterOptions returns the full option universe for the current catalog.
// Options never narrow as filters are applied.
func (s *CatalogService) FilterOptions(ctx context.Context) (catalog.Options, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Options{}, err
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		return catalog.Options{}, err
	}
	return snap.Options, nil
}

// Document returns the current catalog in wire format, served back out to
// the browsing front-end as its fetch target.
func (s *CatalogService) Document(ctx context.Context) (catalog.Document, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Document{}, err
	}

	snap, err := s.store.Snapshot()
	if err != nil {
		return catalog.Document{}, err
	}
	return snap.Document(), nil
}

// Revision returns the revision of the current snapshot, 0 when no load
// has succeeded yet.
func (s *CatalogService) Revision() uint64 {
	return s.store.Revision()
}
