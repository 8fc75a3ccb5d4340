// Package constants provides shared constants used throughout vinoteca.
package constants

import "time"

// HTTP server defaults.
const (
	// DefaultHost is the address the API server binds to.
	DefaultHost = "localhost"

	// DefaultPort is the API server port.
	DefaultPort = 8080

	// DefaultPathPrefix is where API routes are mounted.
	DefaultPathPrefix = "/api"

	// DefaultReadTimeout bounds reading a request.
	DefaultReadTimeout = 10 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout bounds keep-alive connections.
	DefaultIdleTimeout = 120 * time.Second

	// ShutdownTimeout bounds graceful shutdown after a signal.
	ShutdownTimeout = 30 * time.Second
)

// Rate limiting and caching.
const (
	// DefaultRateLimit is requests per minute per client.
	DefaultRateLimit = 100

	// RateLimitCleanupInterval is how often idle limiters are dropped.
	RateLimitCleanupInterval = time.Minute

	// RateLimitIdleTimeout is how long a client limiter survives unused.
	RateLimitIdleTimeout = 10 * time.Minute

	// CacheTTL is the default lifetime of a rendered response.
	CacheTTL = 5 * time.Minute
)

// Channel buffer sizes for the event pipeline.
const (
	// EventBufferSize buffers events waiting for fan-out.
	EventBufferSize = 256

	// ClientBufferSize buffers events queued for one subscriber.
	ClientBufferSize = 64

	// RegistrationBufferSize buffers subscribe and unsubscribe requests.
	RegistrationBufferSize = 10
)

// File permissions.
const (
	// DirPermissions is used for directories vinoteca creates.
	DirPermissions = 0o755

	// FilePermissions is used for files vinoteca writes.
	FilePermissions = 0o644
)
