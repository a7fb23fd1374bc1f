package arena

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"

	"github.com/givenness/arena-research-skill/arena/internal/reqcache"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithToken attaches a personal access token to every request. Without it
// the client runs anonymously and operations that need identity fail with
// ErrUnauthorized at the point of use.
func WithToken(token string) Option {
	return func(c *Client) error {
		c.token = token
		return nil
	}
}

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every request/response
// is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}

// WithPacing overrides the minimum spacing between outbound requests.
func WithPacing(interval time.Duration) Option {
	return func(c *Client) error {
		if interval <= 0 {
			return fmt.Errorf("pacing interval must be positive")
		}
		c.pace = newPacer(interval)
		return nil
	}
}

// WithCacheDir stores cached responses under dir instead of the default
// user cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Client) error {
		cache, err := reqcache.New(dir)
		if err != nil {
			return err
		}
		c.cache = cache
		return nil
	}
}

// WithCacheTTL overrides the default freshness window for cached responses.
// Takes precedence over the ARENA_CACHE_TTL environment variable.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) error {
		if ttl <= 0 {
			return fmt.Errorf("cache ttl must be positive")
		}
		c.cacheTTL = ttl
		c.ttlSet = true
		return nil
	}
}

// WithoutCache disables the response cache entirely – every operation goes
// to the network.
func WithoutCache() Option {
	return func(c *Client) error {
		c.noCache = true
		c.cache = nil
		return nil
	}
}
