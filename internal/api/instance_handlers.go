package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerInstanceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getInstance",
		Method:      http.MethodGet,
		Path:        "/api/v1/instance",
		Summary:     "Get server instance",
		Description: "Returns server identity and catalog revision",
		Tags:        []string{"Instance"},
	}, s.handleGetInstance)
}

// InstanceResponse contains server instance data in API responses.
type InstanceResponse struct {
	ID              string    `json:"id" doc:"Instance ID"`
	Name            string    `json:"name" doc:"Server name"`
	Version         string    `json:"version" doc:"Server version"`
	StartedAt       time.Time `json:"started_at" doc:"Startup timestamp"`
	CatalogRevision uint64    `json:"catalog_revision" doc:"Current catalog revision, 0 before the first load"`
}

// InstanceOutput wraps the instance response for Huma.
type InstanceOutput struct {
	Body InstanceResponse
}

func (s *Server) handleGetInstance(_ context.Context, _ *struct{}) (*InstanceOutput, error) {
	instance := s.services.Instance.GetInstance()

	return &InstanceOutput{
		Body: InstanceResponse{
			ID:              instance.ID,
			Name:            instance.Name,
			Version:         instance.Version,
			StartedAt:       instance.StartedAt,
			CatalogRevision: s.services.Catalog.Revision(),
		},
	}, nil
}
