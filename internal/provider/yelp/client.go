// Package yelp is the client for the remote business-listing provider.
package yelp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/localconnect/localconnect-backend/config"
	"github.com/localconnect/localconnect-backend/pkg/logger"
)

// Fixed search shape: ~5 mile radius, capped result set, provider-side
// relevance ordering.
const (
	searchRadiusMeters = 8000
	searchLimit        = 20
	searchSort         = "best_match"
)

// ErrMissingAPIKey reports that no provider credential is configured.
// There is nothing to aggregate in that case, so callers surface it
// instead of falling back.
var ErrMissingAPIKey = errors.New("yelp API key is not configured")

// StatusError is a non-2xx provider response. It is always an error,
// never coerced into an empty result.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yelp API returned status %d: %s", e.Code, e.Body)
}

// Client talks to the provider's business search endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a provider client from configuration. The key is held
// here, not in package state; swap the client to rotate credentials.
func NewClient(cfg *config.YelpConfig) *Client {
	qps := cfg.RateLimitPS
	if qps <= 0 {
		qps = 5
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(qps), 1),
	}
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.apiKey != ""
}

// SearchRequest scopes a nearby-business search.
type SearchRequest struct {
	Latitude   float64
	Longitude  float64
	Categories string // comma-separated provider tags, empty for all
}

// Search fetches businesses near a coordinate. Non-2xx responses come
// back as *StatusError.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Business, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(req.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(req.Longitude, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(searchRadiusMeters))
	params.Set("limit", strconv.Itoa(searchLimit))
	params.Set("sort_by", searchSort)
	if req.Categories != "" {
		params.Set("categories", req.Categories)
	}

	endpoint := fmt.Sprintf("%s/businesses/search?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call yelp API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to parse yelp response: %w", err)
	}

	logger.Debug("Yelp search completed", map[string]interface{}{
		"latitude":  req.Latitude,
		"longitude": req.Longitude,
		"count":     len(result.Businesses),
	})
	return result.Businesses, nil
}
