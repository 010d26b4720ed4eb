// Package fetcher is the HTTP client of the fire-risk prediction API.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Hotspot window bounds, in days.
const (
	MinDays = 1
	MaxDays = 30
)

const (
	defaultUserAgent = "fireguard-dashboard/1.0 (github.com/Zachdehooge/fireguard-dashboard)"
	apiKeyHeader     = "X-API-Key"
	maxErrorBody     = 200
)

// Client talks to the prediction API. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    *time.Duration
	apiKey     string
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is not
// modified; a WithTimeout option applies to a copy.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it. It applies
// regardless of its position relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = &d }
}

// WithAPIKey sends key in the X-API-Key header.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrEmptyBaseURL
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		userAgent:  defaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout != nil {
		hc := *c.httpClient
		hc.Timeout = *c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Predict posts a feature vector to /api/predict.
func (c *Client) Predict(ctx context.Context, features Features) (*PredictResult, error) {
	var result PredictResult
	if err := c.do(ctx, http.MethodPost, "/api/predict", nil, features, &result); err != nil {
		return nil, fmt.Errorf("failed to predict (%s): %w", features.Schema(), err)
	}
	return &result, nil
}

// Hotspots lists the hotspots detected in the last days days.
func (c *Client) Hotspots(ctx context.Context, days int) (*HotspotList, error) {
	if days < MinDays || days > MaxDays {
		return nil, ErrInvalidDays
	}

	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var list HotspotList
	if err := c.do(ctx, http.MethodGet, "/api/realtime/hotspots", query, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to fetch hotspots: %w", err)
	}
	if list.Data == nil {
		list.Data = []Hotspot{}
	}
	return &list, nil
}

// PredictHotspot asks for the fire risk at a detected hotspot.
func (c *Client) PredictHotspot(ctx context.Context, h Hotspot) (*HotspotPrediction, error) {
	body := hotspotRequest{
		Lat:       h.Lat,
		Lon:       h.Lon,
		FRP:       h.FRP,
		BrightTI5: h.BrightTI5,
		AcqTime:   h.AcqTime,
		Scan:      h.Scan,
		Track:     h.Track,
	}

	var result HotspotPrediction
	if err := c.do(ctx, http.MethodPost, "/api/realtime/predict-hotspot", nil, body, &result); err != nil {
		return nil, fmt.Errorf("failed to predict hotspot: %w", err)
	}
	return &result, nil
}

// PredictClick asks for the fire risk of the current environment at a point.
func (c *Client) PredictClick(ctx context.Context, lat, lon float64) (*ClickPrediction, error) {
	var result ClickPrediction
	body := clickRequest{Lat: lat, Lon: lon}
	if err := c.do(ctx, http.MethodPost, "/api/realtime/predict-click", nil, body, &result); err != nil {
		return nil, fmt.Errorf("failed to predict point: %w", err)
	}
	return &result, nil
}

// Stats fetches the aggregate fire statistics.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, nil, &stats); err != nil {
		return nil, fmt.Errorf("failed to fetch stats: %w", err)
	}
	if stats.Heatmap == nil {
		stats.Heatmap = map[string]int{}
	}
	if stats.Monthly == nil {
		stats.Monthly = map[string]int{}
	}
	return &stats, nil
}

// do sends one request and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP %s failed: %w", method, err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snip := body
		if len(snip) > maxErrorBody {
			snip = snip[:maxErrorBody]
		}
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(snip))}
	}

	if msg := errorField(body); msg != "" {
		return &APIError{Message: msg}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("JSON decode failed: %w", err)
	}
	return nil
}

// errorField returns the "error" member of a JSON object, if set.
func errorField(body []byte) string {
	var probe struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &probe); err != nil || len(probe.Error) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(probe.Error, &s); err == nil {
		return s
	}
	switch string(probe.Error) {
	case "null", "false":
		return ""
	}
	return string(probe.Error)
}
