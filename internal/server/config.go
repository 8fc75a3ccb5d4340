package server

import (
	"fmt"
	"time"

	"github.com/agentstation/vinoteca/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// API settings
	PathPrefix string

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Performance settings
	RateLimit int // Requests per minute per IP (0 to disable)
	CacheTTL  time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
	ReloadEnabled  bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           constants.DefaultHost,
		Port:           constants.DefaultPort,
		PathPrefix:     constants.DefaultPathPrefix,
		CORSEnabled:    false,
		CORSOrigins:    []string{},
		RateLimit:      constants.DefaultRateLimit,
		CacheTTL:       constants.CacheTTL,
		ReadTimeout:    constants.DefaultReadTimeout,
		WriteTimeout:   constants.DefaultWriteTimeout,
		IdleTimeout:    constants.DefaultIdleTimeout,
		MetricsEnabled: true,
		ReloadEnabled:  true,
	}
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
