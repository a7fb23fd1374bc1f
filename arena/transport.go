package arena

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

const serverErrorExcerptLen = 200

// getJSON issues one paced, optionally authenticated GET and classifies the
// response. resource/key feed the NotFound diagnostics; query may be nil.
// The rate-limit snapshot is parsed from headers on every response, success
// or failure.
func (c *Client) getJSON(ctx context.Context, resource, key, path string, query url.Values) ([]byte, *RateLimitStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := c.pace.acquire(ctx); err != nil {
		return nil, nil, err
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		requestsTotal.WithLabelValues(outcomeNetworkError).Inc()
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	rl := parseRateLimit(resp.Header)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			requestsTotal.WithLabelValues(outcomeNetworkError).Inc()
			return nil, rl, err
		}
		requestsTotal.WithLabelValues(outcomeOK).Inc()
		return body, rl, nil
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		requestsTotal.WithLabelValues(outcomeUnauthorized).Inc()
		return nil, rl, ErrUnauthorized
	case http.StatusForbidden:
		requestsTotal.WithLabelValues(outcomeForbidden).Inc()
		return nil, rl, ErrForbidden
	case http.StatusNotFound:
		requestsTotal.WithLabelValues(outcomeNotFound).Inc()
		return nil, rl, &NotFoundError{Resource: resource, Key: key}
	case http.StatusTooManyRequests:
		requestsTotal.WithLabelValues(outcomeRateLimited).Inc()
		wait := int(rl.ResetAt - time.Now().Unix())
		if wait < 1 {
			wait = 1
		}
		log.Warn().Int("wait_seconds", wait).Str("tier", rl.Tier).Msg("rate limited by backend")
		return nil, rl, &RateLimitedError{WaitSeconds: wait, Tier: rl.Tier}
	default:
		requestsTotal.WithLabelValues(outcomeServerError).Inc()
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, serverErrorExcerptLen))
		return nil, rl, &ServerError{StatusCode: resp.StatusCode, Body: string(excerpt)}
	}
}

// getAs fetches path and decodes the payload into T.
func getAs[T any](ctx context.Context, c *Client, resource, key, path string, query url.Values) (*T, error) {
	body, _, err := c.getJSON(ctx, resource, key, path, query)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s %s: %w", resource, key, err)
	}
	return &out, nil
}

// parseRateLimit extracts rate-limit telemetry from the four backend
// headers, defaulting numeric fields to 0 and the tier to "unknown" when a
// header is absent or malformed.
func parseRateLimit(h http.Header) *RateLimitStatus {
	rl := &RateLimitStatus{
		Limit:         headerInt(h, "X-RateLimit-Limit"),
		PeriodSeconds: headerInt(h, "X-RateLimit-Period"),
		ResetAt:       int64(headerInt(h, "X-RateLimit-Reset")),
		Tier:          h.Get("X-RateLimit-Tier"),
	}
	if rl.Tier == "" {
		rl.Tier = "unknown"
	}
	return rl
}

func headerInt(h http.Header, name string) int {
	v, err := strconv.Atoi(h.Get(name))
	if err != nil {
		return 0
	}
	return v
}
