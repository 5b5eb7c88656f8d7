// Package preferences keeps account-level dashboard preferences: the
// website type, theme, default date range, and sidebar layout. Switching
// website type cascades fresh widget defaults into the layout store.
package preferences

import (
	"context"
	"fmt"
)

// WebsiteType drives which widgets and sidebar sections a dashboard
// starts with.
type WebsiteType string

const (
	WebsiteTypeEcommerce WebsiteType = "ecommerce"
	WebsiteTypeBlog      WebsiteType = "blog"
	WebsiteTypeSaaS      WebsiteType = "saas"
	WebsiteTypeLanding   WebsiteType = "landing"
	WebsiteTypePortfolio WebsiteType = "portfolio"
	WebsiteTypeNews      WebsiteType = "news"
	WebsiteTypeCustom    WebsiteType = "custom"
)

// WebsiteTypes lists every known type in a stable order.
func WebsiteTypes() []WebsiteType {
	return []WebsiteType{
		WebsiteTypeEcommerce,
		WebsiteTypeBlog,
		WebsiteTypeSaaS,
		WebsiteTypeLanding,
		WebsiteTypePortfolio,
		WebsiteTypeNews,
		WebsiteTypeCustom,
	}
}

// Valid reports whether t is a known website type.
func (t WebsiteType) Valid() bool {
	switch t {
	case WebsiteTypeEcommerce, WebsiteTypeBlog, WebsiteTypeSaaS,
		WebsiteTypeLanding, WebsiteTypePortfolio, WebsiteTypeNews, WebsiteTypeCustom:
		return true
	}
	return false
}

// ParseWebsiteType validates a raw string.
func ParseWebsiteType(raw string) (WebsiteType, error) {
	t := WebsiteType(raw)
	if !t.Valid() {
		return "", fmt.Errorf("preferences: unknown website type %q", raw)
	}
	return t, nil
}

// Theme selects the UI color scheme.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// DateRange is the default reporting window.
type DateRange string

const (
	DateRange7Days  DateRange = "7d"
	DateRange30Days DateRange = "30d"
	DateRange90Days DateRange = "90d"
	DateRangeCustom DateRange = "custom"
)

// Valid reports whether r is a known range.
func (r DateRange) Valid() bool {
	switch r {
	case DateRange7Days, DateRange30Days, DateRange90Days, DateRangeCustom:
		return true
	}
	return false
}

// SidebarSections captures which navigation sections are hidden and any
// custom ordering the user applied.
type SidebarSections struct {
	Hidden      []string `json:"hidden"`
	CustomOrder []string `json:"custom_order"`
}

// Preferences is the persisted account preference document.
type Preferences struct {
	WebsiteType      WebsiteType     `json:"website_type"`
	Theme            Theme           `json:"theme"`
	DefaultDateRange DateRange       `json:"default_date_range"`
	Sidebar          SidebarSections `json:"sidebar"`
}

// SidebarPatch carries partial sidebar updates. Nil fields are untouched.
type SidebarPatch struct {
	Hidden      *[]string `json:"hidden,omitempty"`
	CustomOrder *[]string `json:"custom_order,omitempty"`
}

// Telemetry records preference events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// NormalizeTelemetry substitutes a no-op recorder for nil, so callers
// sharing this interface never have to nil-check before recording.
func NormalizeTelemetry(t Telemetry) Telemetry {
	return normalizeTelemetry(t)
}
