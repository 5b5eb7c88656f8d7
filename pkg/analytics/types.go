// Package analytics is the typed REST client for the metrics backend
// that powers widget data: overview KPIs, traffic series, real-time
// activity, and device breakdowns, all keyed by a site tracking id.
package analytics

import "errors"

var (
	// ErrNoData is returned when the backend has no rows for the query.
	ErrNoData = errors.New("analytics: no data for query")
	// ErrNotOnboarded is returned when the tracking id is unknown upstream.
	ErrNotOnboarded = errors.New("analytics: tracking id not onboarded")
)

// MetricsQuery scopes a backend request.
type MetricsQuery struct {
	TrackingID string `json:"tracking_id"`
	Range      string `json:"range,omitempty"`
}

// OverviewData holds the headline numbers for the overview KPI cards.
type OverviewData struct {
	Visitors           int64   `json:"visitors"`
	Pageviews          int64   `json:"pageviews"`
	BounceRate         float64 `json:"bounce_rate"`
	AvgSessionDuration float64 `json:"avg_session_duration"`
	// Changes against the comparison period, as fractions.
	VisitorsChange  float64 `json:"visitors_change"`
	PageviewsChange float64 `json:"pageviews_change"`
}

// TrafficPoint is one bucket of the traffic time series.
type TrafficPoint struct {
	Date      string `json:"date"`
	Visitors  int64  `json:"visitors"`
	Pageviews int64  `json:"pageviews"`
}

// TrafficData is visitors and pageviews over time.
type TrafficData struct {
	Range  string         `json:"range"`
	Points []TrafficPoint `json:"points"`
}

// PageCount pairs a page path with a hit count.
type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// RealTimeData is the live activity snapshot the real-time page polls.
type RealTimeData struct {
	ActiveVisitors      int64       `json:"active_visitors"`
	PageviewsLastMinute int64       `json:"pageviews_last_minute"`
	TopPages            []PageCount `json:"top_pages"`
}

// DeviceShare is one slice of the device breakdown.
type DeviceShare struct {
	Device  string  `json:"device"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

// DeviceStats groups sessions by device class.
type DeviceStats struct {
	Devices []DeviceShare `json:"devices"`
}
