package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/marqueeapp/marquee-server/internal/http/response"
)

// rateLimit throttles API requests per client IP. Static assets and the
// catalog document are exempt; browsers fetch those in bursts.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		// SSE connections are long-lived; one token at connect is enough.
		key := clientIP(r)
		if !s.limiter.Allow(key) {
			s.logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
			response.TooManyRequests(w, "Too many requests, slow down", s.logger)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address. RealIP middleware has already
// folded X-Forwarded-For into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
