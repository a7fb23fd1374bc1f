package reqcache

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config groups the cache tunables. Values are taken from environment
// variables with the prefix "ARENA_CACHE_".
// Example: ARENA_CACHE_DIR=/tmp/arena ARENA_CACHE_TTL=30m .
type Config struct {
	// Dir overrides the default cache directory (user cache dir).
	Dir string `envconfig:"DIR" default:""`

	// TTL is the default freshness window for cached responses.
	TTL time.Duration `envconfig:"TTL" default:"15m"`
}

// LoadConfig populates Config from environment variables.
func LoadConfig() (Config, error) {
	var c Config
	return c, envconfig.Process("ARENA_CACHE", &c)
}
