// Package lookup implements the outbound HTTP client used for
// cross-service lookups (price, inventory, product existence). Expected
// absence and peer unavailability are reported as statuses, never as
// errors, so callers can degrade gracefully.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"
)

// Status classifies the outcome of a remote lookup.
type Status int

const (
	StatusFound Status = iota
	StatusNotFound
	StatusUnavailable
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "FOUND"
	case StatusNotFound:
		return "NOT_FOUND"
	default:
		return "UNAVAILABLE"
	}
}

// Config tunes a peer client.
type Config struct {
	BaseURL     string
	ServiceName string // caller identity, sent as the Service-Name header
	Timeout     time.Duration
	MaxAttempts int
	Backoff     time.Duration
}

// Client is a minimal HTTP client for querying a single peer service.
// Transient transport errors are retried with a fixed backoff; an explicit
// not-found from the peer is never retried.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	serviceName string
	maxAttempts int
	backoff     time.Duration
}

// NewClient constructs a peer client with sane defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 300 * time.Millisecond
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		baseURL:     cfg.BaseURL,
		serviceName: cfg.ServiceName,
		maxAttempts: cfg.MaxAttempts,
		backoff:     cfg.Backoff,
	}
}

// envelope mirrors the standard response body shared by all services.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	TraceID    string          `json:"traceId"`
	HTTPStatus int             `json:"httpStatus"`
}

// get performs the lookup GET with retries and classifies the result.
// The returned payload is non-nil only for StatusFound.
func (c *Client) get(ctx context.Context, path string, query url.Values) (Status, json.RawMessage) {
	target := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			log.Error().Err(err).Str("url", target).Msg("lookup request construction failed")
			return StatusUnavailable, nil
		}
		req.Header.Set("Service-Name", c.serviceName)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Transport failure: retry with fixed backoff.
			lastErr = err
			if attempt < c.maxAttempts {
				select {
				case <-time.After(c.backoff):
				case <-ctx.Done():
					log.Warn().Err(ctx.Err()).Str("url", target).Msg("lookup cancelled")
					return StatusUnavailable, nil
				}
			}
			continue
		}

		status, payload := classify(resp, target)
		resp.Body.Close()
		return status, payload
	}

	log.Warn().Err(lastErr).Str("url", target).Int("attempts", c.maxAttempts).
		Msg("peer unreachable, treating lookup as unavailable")
	return StatusUnavailable, nil
}

// classify maps an HTTP response to a lookup status. Not-found is an
// expected outcome; everything that is neither success nor not-found is
// unavailable.
func classify(resp *http.Response, target string) (Status, json.RawMessage) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("url", target).Msg("failed to read peer response")
		return StatusUnavailable, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Warn().Err(err).Str("url", target).Int("status_code", resp.StatusCode).
			Msg("failed to decode peer response")
		return StatusUnavailable, nil
	}

	switch {
	case resp.StatusCode == http.StatusNotFound || env.HTTPStatus == http.StatusNotFound:
		return StatusNotFound, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success && len(env.Data) > 0 && string(env.Data) != "null":
		return StatusFound, env.Data
	default:
		log.Warn().Str("url", target).Int("status_code", resp.StatusCode).Str("message", env.Message).
			Msg("peer reported failure, treating lookup as unavailable")
		return StatusUnavailable, nil
	}
}

// validateProductID guards the positive-integer input contract shared by
// all lookups.
func validateProductID(productID int64) error {
	if productID <= 0 {
		return fmt.Errorf("product id must be positive, got %d", productID)
	}
	return nil
}
