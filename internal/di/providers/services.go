package providers

import (
	"github.com/samber/do/v2"

	"github.com/marqueeapp/marquee-server/internal/config"
	"github.com/marqueeapp/marquee-server/internal/logger"
	"github.com/marqueeapp/marquee-server/internal/service"
)

// ProvideCatalogService provides the catalog browsing service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)

	return service.NewCatalogService(catalogHandle.Store, cfg, log.Logger), nil
}

// ProvideInstanceService provides the server identity service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInstanceService(cfg, log.Logger), nil
}
