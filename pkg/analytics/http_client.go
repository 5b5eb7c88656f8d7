package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to the analytics backend via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client capable of hitting a live backend.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// envelope is the backend response shape: a status string plus the
// typed payload. Non-success statuses map to sentinel errors.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

func (e envelope[T]) unwrap() (T, error) {
	switch e.Status {
	case "success":
		return e.Data, nil
	case "no_data":
		return e.Data, ErrNoData
	case "not_onboarded":
		return e.Data, ErrNotOnboarded
	default:
		return e.Data, fmt.Errorf("analytics: remote status %q: %s", e.Status, e.Message)
	}
}

// FetchOverview implements OverviewClient via the overview endpoint.
func (c *HTTPClient) FetchOverview(ctx context.Context, query MetricsQuery) (OverviewData, error) {
	var resp envelope[OverviewData]
	if err := c.get(ctx, "/overview", query, &resp); err != nil {
		return OverviewData{}, err
	}
	return resp.unwrap()
}

// FetchTraffic implements TrafficClient via the traffic endpoint.
func (c *HTTPClient) FetchTraffic(ctx context.Context, query MetricsQuery) (TrafficData, error) {
	var resp envelope[TrafficData]
	if err := c.get(ctx, "/traffic", query, &resp); err != nil {
		return TrafficData{}, err
	}
	return resp.unwrap()
}

// FetchRealTime implements RealTimeClient via the realtime endpoint.
func (c *HTTPClient) FetchRealTime(ctx context.Context, query MetricsQuery) (RealTimeData, error) {
	var resp envelope[RealTimeData]
	if err := c.get(ctx, "/realtime", query, &resp); err != nil {
		return RealTimeData{}, err
	}
	return resp.unwrap()
}

// FetchDevices implements DeviceClient via the devices endpoint.
func (c *HTTPClient) FetchDevices(ctx context.Context, query MetricsQuery) (DeviceStats, error) {
	var resp envelope[DeviceStats]
	if err := c.get(ctx, "/devices", query, &resp); err != nil {
		return DeviceStats{}, err
	}
	return resp.unwrap()
}

// SessionCount implements SessionClient via the sessions endpoint.
func (c *HTTPClient) SessionCount(ctx context.Context, trackingID string) (int64, error) {
	var resp envelope[struct {
		Count int64 `json:"count"`
	}]
	if err := c.get(ctx, "/sessions/count", MetricsQuery{TrackingID: trackingID}, &resp); err != nil {
		return 0, err
	}
	data, err := resp.unwrap()
	return data.Count, err
}

func (c *HTTPClient) get(ctx context.Context, path string, query MetricsQuery, target any) error {
	params := url.Values{}
	if query.TrackingID != "" {
		params.Set("tracking_id", query.TrackingID)
	}
	if query.Range != "" {
		params.Set("range", query.Range)
	}
	endpoint := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}
