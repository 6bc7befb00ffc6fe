// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Server    ServerConfig
	Catalog   CatalogConfig
	Web       WebConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name          string
	Port          string        // Server port (default: 8080)
	ReadTimeout   time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout  time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout   time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins   []string      // Allowed CORS origins (default: *)
	AdvertiseMDNS bool          // Advertise via mDNS/Zeroconf (default: true)
}

// CatalogConfig holds movie catalog configuration.
type CatalogConfig struct {
	// Source is where the catalog document lives: a local file path or an
	// http(s) URL.
	Source string
	// Watch reloads a file-backed catalog when the file changes.
	// Ignored for URL sources.
	Watch           bool
	DefaultPageSize int
	MaxPageSize     int
}

// WebConfig holds front-end delivery configuration.
type WebConfig struct {
	// AssetsDir is the directory of static front-end assets.
	// Empty disables static delivery (API only).
	AssetsDir string
}

// RateLimitConfig holds API rate limiting configuration.
type RateLimitConfig struct {
	RPS   float64 // Requests per second per client IP (default: 10)
	Burst int     // Burst size per client IP (default: 30)
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	serverName := flag.String("server-name", "", "Name for the server")
	catalogSource := flag.String("catalog-source", "", "Catalog document path or URL")
	catalogWatch := flag.String("catalog-watch", "", "Reload file-backed catalog on change (default: true)")
	assetsDir := flag.String("assets-dir", "", "Directory of static front-end assets")
	defaultPageSize := flag.String("default-page-size", "", "Default movies per page (default: 20)")
	maxPageSize := flag.String("max-page-size", "", "Maximum movies per page (default: 100)")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins (default: *)")

	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	advertiseMDNS := flag.String("advertise-mdns", "", "Advertise via mDNS/Zeroconf (default: true)")

	rateRPS := flag.String("rate-limit-rps", "", "API requests per second per client (default: 10)")
	rateBurst := flag.String("rate-limit-burst", "", "API request burst per client (default: 30)")

	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "MARQUEE_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "MARQUEE_LOG_LEVEL", "info"),
		},
		Server: ServerConfig{
			Name:          getConfigValue(*serverName, "MARQUEE_SERVER_NAME", "Marquee Server"),
			Port:          getConfigValue(*serverPort, "MARQUEE_PORT", "8080"),
			CORSOrigins:   splitList(getConfigValue(*corsOrigins, "MARQUEE_CORS_ORIGINS", "*")),
			AdvertiseMDNS: getBoolConfigValue(*advertiseMDNS, "MARQUEE_ADVERTISE_MDNS", true),
		},
		Catalog: CatalogConfig{
			Source:          getConfigValue(*catalogSource, "MARQUEE_CATALOG_SOURCE", "catalog.json"),
			Watch:           getBoolConfigValue(*catalogWatch, "MARQUEE_CATALOG_WATCH", true),
			DefaultPageSize: getIntConfigValue(*defaultPageSize, "MARQUEE_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:     getIntConfigValue(*maxPageSize, "MARQUEE_MAX_PAGE_SIZE", 100),
		},
		Web: WebConfig{
			AssetsDir: getConfigValue(*assetsDir, "MARQUEE_ASSETS_DIR", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   getFloatConfigValue(*rateRPS, "MARQUEE_RATE_LIMIT_RPS", 10),
			Burst: getIntConfigValue(*rateBurst, "MARQUEE_RATE_LIMIT_BURST", 30),
		},
	}

	// Parse server timeouts.
	readTimeoutStr := getConfigValue(*readTimeout, "MARQUEE_READ_TIMEOUT", "15s")
	readTimeoutDuration, err := time.ParseDuration(readTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid read timeout %q: %w", readTimeoutStr, err)
	}
	cfg.Server.ReadTimeout = readTimeoutDuration

	writeTimeoutStr := getConfigValue(*writeTimeout, "MARQUEE_WRITE_TIMEOUT", "15s")
	writeTimeoutDuration, err := time.ParseDuration(writeTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid write timeout %q: %w", writeTimeoutStr, err)
	}
	cfg.Server.WriteTimeout = writeTimeoutDuration

	idleTimeoutStr := getConfigValue(*idleTimeout, "MARQUEE_IDLE_TIMEOUT", "60s")
	idleTimeoutDuration, err := time.ParseDuration(idleTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid idle timeout %q: %w", idleTimeoutStr, err)
	}
	cfg.Server.IdleTimeout = idleTimeoutDuration

	// Expand file-backed catalog source and assets dir.
	if err := cfg.expandCatalogSource(); err != nil {
		return nil, fmt.Errorf("invalid catalog source: %w", err)
	}
	if err := cfg.expandAssetsDir(); err != nil {
		return nil, fmt.Errorf("invalid assets dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// CatalogSourceIsURL reports whether the catalog source is a remote URL
// rather than a local file path.
func (c *Config) CatalogSourceIsURL() bool {
	return strings.HasPrefix(c.Catalog.Source, "http://") ||
		strings.HasPrefix(c.Catalog.Source, "https://")
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("MARQUEE_ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Catalog.Source == "" {
		return errors.New("catalog source cannot be empty")
	}

	if c.Catalog.DefaultPageSize < 1 {
		return fmt.Errorf("default page size must be positive, got %d", c.Catalog.DefaultPageSize)
	}
	if c.Catalog.MaxPageSize < c.Catalog.DefaultPageSize {
		return fmt.Errorf("max page size %d is smaller than default page size %d", c.Catalog.MaxPageSize, c.Catalog.DefaultPageSize)
	}

	if c.RateLimit.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %v", c.RateLimit.RPS)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimit.Burst)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandCatalogSource expands ~ and makes a file-backed source absolute.
// URL sources are left untouched.
func (c *Config) expandCatalogSource() error {
	if c.CatalogSourceIsURL() {
		return nil
	}

	expanded, err := expandPath(c.Catalog.Source, "")
	if err != nil {
		return err
	}
	c.Catalog.Source = expanded
	return nil
}

// expandAssetsDir expands ~ and makes the path absolute.
// If empty, leaves it empty (static delivery disabled).
func (c *Config) expandAssetsDir() error {
	if c.Web.AssetsDir == "" {
		return nil
	}

	expanded, err := expandPath(c.Web.AssetsDir, "")
	if err != nil {
		return err
	}
	c.Web.AssetsDir = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}

	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(strValue, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	var result float64
	if _, err := fmt.Sscanf(strValue, "%g", &result); err != nil {
		return defaultValue
	}
	return result
}

// splitList splits a comma-separated value into trimmed entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Real env vars take precedence over the .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
