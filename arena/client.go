package arena

import (
	"context"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/givenness/arena-research-skill/arena/internal/reqcache"
)

// DefaultBaseURL is the authenticated content-graph API.
const DefaultBaseURL = "https://api.are.na/v2"

// DefaultCacheTTL bounds how long cached responses are served.
const DefaultCacheTTL = 15 * time.Minute

// QuickLookupCacheTTL is the longer TTL used by the quick-lookup preset.
const QuickLookupCacheTTL = time.Hour

// --------------------------------------------------------------------
// debugTransport – optional HTTP round-trip logger
// --------------------------------------------------------------------

type debugTransport struct{ base http.RoundTripper }

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqID := uuid.NewString()
	if debugEnabled() {
		reqDump, err := httputil.DumpRequestOut(req, true)
		if err == nil {
			log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
		}
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		if debugEnabled() {
			log.Error().Err(err).Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		}
		return nil, err
	}

	if debugEnabled() {
		respDump, err := httputil.DumpResponse(resp, true)
		if err == nil {
			log.Debug().Str("request_id", reqID).Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
		}
	}
	return resp, nil
}

func debugEnabled() bool {
	return os.Getenv("ARENA_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client is a read-only client for the content-graph API. All operations
// share one pacer, so a process never sends faster than the configured
// spacing regardless of how many commands it runs.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	pace    *pacer

	cache    *reqcache.Cache
	cacheTTL time.Duration
	ttlSet   bool // WithCacheTTL given; env TTL must not override
	noCache  bool
}

// New constructs a Client with optional functional arguments.
func New(base string, opts ...Option) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	c := &Client{
		baseURL:  base,
		http:     &http.Client{Timeout: 30 * time.Second},
		cacheTTL: DefaultCacheTTL,
	}

	// Auto-enable debug via env variable without changing code.
	if debugEnabled() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.pace == nil {
		c.pace = newDefaultPacer()
	}
	c.setupCache()
	return c
}

// setupCache applies the env-driven cache configuration: the TTL unless
// WithCacheTTL already pinned it, and the default cache directory unless one
// was injected. Cache failures are never load-bearing: on error the client
// runs uncached.
func (c *Client) setupCache() {
	if c.noCache {
		return
	}
	cfg, err := reqcache.LoadConfig()
	if err != nil {
		log.Warn().Err(err).Msg("cache config invalid; running without default cache")
		return
	}
	if !c.ttlSet && cfg.TTL > 0 {
		c.cacheTTL = cfg.TTL
	}
	if c.cache == nil {
		c.cache = openCache(cfg.Dir)
	}
}

func openCache(dir string) *reqcache.Cache {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			log.Warn().Err(err).Msg("no user cache dir; running without cache")
			return nil
		}
		dir = filepath.Join(base, "arena-research")
	}
	cache, err := reqcache.New(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("cache unavailable; running without cache")
		return nil
	}
	return cache
}

// cachedJSON serves the response for (sig, params) from the cache when a
// fresh record exists, otherwise runs fetch and stores the payload. Cache
// write failures are logged and swallowed.
func (c *Client) cachedJSON(ctx context.Context, sig, params string, ttl time.Duration, fetch func(context.Context) ([]byte, error)) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(sig, params, ttl); ok {
			cacheHitsTotal.Inc()
			log.Debug().Str("sig", sig).Msg("cache hit")
			return body, nil
		}
		cacheMissesTotal.Inc()
	}
	body, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		if err := c.cache.Set(sig, params, body); err != nil {
			log.Warn().Err(err).Str("sig", sig).Msg("cache write failed")
		}
	}
	return body, nil
}

// PruneCache removes expired cache records and reports how many were
// dropped. Records carry no per-entry TTL, so pruning uses the longest TTL
// in play; quick-lookup records inside their hour window survive even when
// the client's own TTL is shorter.
func (c *Client) PruneCache() (int, error) {
	if c.cache == nil {
		return 0, nil
	}
	ttl := c.cacheTTL
	if QuickLookupCacheTTL > ttl {
		ttl = QuickLookupCacheTTL
	}
	return c.cache.Prune(ttl)
}

// ClearCache removes every cache record.
func (c *Client) ClearCache() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Clear()
}
