package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types
	AnonymousPlayerTTL time.Duration
	GameTTL            time.Duration
	ResultTTL          time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:                "redis://localhost:6379",
		PoolSize:           10,
		MinIdleConns:       2,
		AnonymousPlayerTTL: 24 * time.Hour,
		GameTTL:            24 * time.Hour,
		ResultTTL:          0, // results are kept indefinitely
	}
}
