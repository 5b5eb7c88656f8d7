package analytics

import (
	"context"
	"sync"
)

// MockData seeds deterministic backend responses for tests and demos.
type MockData struct {
	Overview OverviewData
	Traffic  TrafficData
	RealTime RealTimeData
	Devices  DeviceStats
	Sessions map[string]int64
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock analytics client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchOverview returns the configured aggregates ignoring query filters.
func (c *MockClient) FetchOverview(context.Context, MetricsQuery) (OverviewData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Overview, nil
}

// FetchTraffic returns the configured series ignoring query filters.
func (c *MockClient) FetchTraffic(context.Context, MetricsQuery) (TrafficData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.data.Traffic
	out.Points = append([]TrafficPoint(nil), c.data.Traffic.Points...)
	return out, nil
}

// FetchRealTime returns the configured snapshot ignoring query filters.
func (c *MockClient) FetchRealTime(context.Context, MetricsQuery) (RealTimeData, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.data.RealTime
	out.TopPages = append([]PageCount(nil), c.data.RealTime.TopPages...)
	return out, nil
}

// FetchDevices returns the configured breakdown ignoring query filters.
func (c *MockClient) FetchDevices(context.Context, MetricsQuery) (DeviceStats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := c.data.Devices
	out.Devices = append([]DeviceShare(nil), c.data.Devices.Devices...)
	return out, nil
}

// SessionCount returns the configured count for the tracking id.
func (c *MockClient) SessionCount(_ context.Context, trackingID string) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count, ok := c.data.Sessions[trackingID]
	if !ok {
		return 0, ErrNotOnboarded
	}
	return count, nil
}

// SetRealTime swaps the live snapshot, used by long-running demos.
func (c *MockClient) SetRealTime(data RealTimeData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.RealTime = data
}
