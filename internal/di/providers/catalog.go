package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/marqueeapp/marquee-server/internal/catalog"
	"github.com/marqueeapp/marquee-server/internal/config"
	"github.com/marqueeapp/marquee-server/internal/logger"
	"github.com/marqueeapp/marquee-server/internal/sse"
)

// CatalogHandle wraps the catalog store with its loader for reload wiring.
type CatalogHandle struct {
	Store  *catalog.Store
	Loader *catalog.Loader
}

// ProvideCatalog provides the catalog store with the initial snapshot
// loaded. A failed initial load is non-fatal: the server starts empty and
// the API reports the catalog unavailable until a reload succeeds.
func ProvideCatalog(i do.Injector) (*CatalogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	source := catalog.NewSource(cfg.Catalog.Source)
	loader := catalog.NewLoader(source, log.Logger)
	store := catalog.NewStore()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := loader.Load(ctx)
	if err != nil {
		log.Warn("Initial catalog load failed, starting empty",
			"source", source.Describe(),
			"error", err,
		)
		store.SetError(err)
	} else {
		store.Install(snap)
	}

	return &CatalogHandle{Store: store, Loader: loader}, nil
}

// WatcherHandle wraps the catalog watcher with Shutdownable.
type WatcherHandle struct {
	watcher *catalog.Watcher
}

// Shutdown implements do.Shutdownable.
func (h *WatcherHandle) Shutdown() error {
	if h.watcher != nil {
		h.watcher.Stop()
	}
	return nil
}

// ProvideCatalogWatcher provides hot reload for file-backed catalogs.
// URL sources and disabled watching yield an inert handle.
func ProvideCatalogWatcher(i do.Injector) (*WatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	catalogHandle := do.MustInvoke[*CatalogHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)

	if !cfg.Catalog.Watch || cfg.CatalogSourceIsURL() {
		return &WatcherHandle{}, nil
	}

	onSwap := func(snap *catalog.Snapshot) {
		sseHandle.Emit(sse.NewCatalogUpdatedEvent(snap.Revision, len(snap.Movies)))
	}

	w := catalog.NewWatcher(cfg.Catalog.Source, catalogHandle.Loader, catalogHandle.Store, onSwap, log.Logger)
	if err := w.Start(); err != nil {
		// Hot reload is a convenience, not a requirement.
		log.Warn("Catalog watcher unavailable", "error", err)
		return &WatcherHandle{}, nil
	}

	log.Info("Watching catalog for changes", "path", cfg.Catalog.Source)
	return &WatcherHandle{watcher: w}, nil
}

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}
