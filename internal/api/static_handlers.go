package api

import (
	"encoding/json/v2"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/marqueeapp/marquee-server/internal/http/response"
)

// hashedAssetPattern matches fingerprinted asset names like
// app.3f8a9c2d.js, which are safe to cache forever.
var hashedAssetPattern = regexp.MustCompile(`\.[0-9a-f]{8,}\.`)

// handleCatalogDocument serves the current catalog in wire format.
// The front-end fetches this on startup; it re-fetches on a
// catalog.updated SSE event, so only a short cache window is safe.
func (s *Server) handleCatalogDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.services.Catalog.Document(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=60")
	if err := json.MarshalWrite(w, doc); err != nil {
		s.logger.Error("failed to write catalog document", "error", err)
	}
}

// handleStatic serves front-end assets with tiered caching and an SPA
// fallback: unknown non-asset paths get index.html so client-side routes
// survive a reload.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
	if rel == "" || rel == "." {
		rel = "index.html"
	}

	full := filepath.Join(s.cfg.Web.AssetsDir, filepath.FromSlash(rel))

	// Clean above plus this guard keeps traversal inside the assets dir.
	if !strings.HasPrefix(full, filepath.Clean(s.cfg.Web.AssetsDir)+string(os.PathSeparator)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		// SPA fallback for extensionless paths; missing assets stay 404.
		if filepath.Ext(rel) != "" {
			http.NotFound(w, r)
			return
		}
		full = filepath.Join(s.cfg.Web.AssetsDir, "index.html")
		rel = "index.html"
	}

	w.Header().Set("Cache-Control", cacheControlFor(rel))
	http.ServeFile(w, r, full)
}

// cacheControlFor picks the cache tier for an asset path.
func cacheControlFor(name string) string {
	base := filepath.Base(name)
	switch {
	case hashedAssetPattern.MatchString(base):
		// Fingerprinted: content change means name change.
		return "public, max-age=31536000, immutable"
	case strings.HasSuffix(base, ".html"):
		// Entry points must pick up new deployments immediately.
		return "no-cache"
	default:
		return "public, max-age=3600"
	}
}
