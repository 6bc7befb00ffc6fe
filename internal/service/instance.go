package service

import (
	"log/slog"
	"time"

	"github.com/marqueeapp/marquee-server/internal/config"
	"github.com/marqueeapp/marquee-server/internal/id"
)

// Version is the server version advertised over the API and mDNS.
const Version = "1.0.0"

// Instance identifies this running server.
type Instance struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   string    `json:"version"`
	StartedAt time.Time `json:"started_at"`
}

// InstanceService holds the server identity, minted once at startup.
type InstanceService struct {
	instance Instance
}

// NewInstanceService creates the instance identity from configuration.
func NewInstanceService(cfg *config.Config, logger *slog.Logger) *InstanceService {
	instance := Instance{
		ID:        id.MustGenerate("srv"),
		Name:      cfg.Server.Name,
		Version:   Version,
		StartedAt: time.Now(),
	}

	logger.Info("Server instance ready",
		"instance_id", instance.ID,
		"name", instance.Name,
		"version", instance.Version,
	)

	return &InstanceService{instance: instance}
}

// GetInstance returns the server identity.
func (s *InstanceService) GetInstance() Instance {
	return s.instance
}
