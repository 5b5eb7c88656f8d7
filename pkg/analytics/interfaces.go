package analytics

import "context"

// OverviewClient fetches headline aggregates for KPI cards.
type OverviewClient interface {
	FetchOverview(ctx context.Context, query MetricsQuery) (OverviewData, error)
}

// TrafficClient fetches bucketed time series for trend charts.
type TrafficClient interface {
	FetchTraffic(ctx context.Context, query MetricsQuery) (TrafficData, error)
}

// RealTimeClient fetches the live activity snapshot.
type RealTimeClient interface {
	FetchRealTime(ctx context.Context, query MetricsQuery) (RealTimeData, error)
}

// DeviceClient fetches the device breakdown.
type DeviceClient interface {
	FetchDevices(ctx context.Context, query MetricsQuery) (DeviceStats, error)
}

// SessionClient counts received sessions, used to verify a tracking
// snippet during onboarding.
type SessionClient interface {
	SessionCount(ctx context.Context, trackingID string) (int64, error)
}

// Client is a convenience union for services that implement all
// backend calls.
type Client interface {
	OverviewClient
	TrafficClient
	RealTimeClient
	DeviceClient
	SessionClient
}
