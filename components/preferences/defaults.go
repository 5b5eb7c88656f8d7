package preferences

import layout "github.com/goliatone/go-insights/components/layout"

// DefaultPreferences is the document a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		WebsiteType:      WebsiteTypeEcommerce,
		Theme:            ThemeSystem,
		DefaultDateRange: DateRange7Days,
		Sidebar: SidebarSections{
			Hidden:      DefaultSidebarForType(WebsiteTypeEcommerce),
			CustomOrder: []string{},
		},
	}
}

// DefaultWidgetsForType returns the dashboard widgets a website type
// starts with: eight core analytics widgets plus type-specific extras.
func DefaultWidgetsForType(t WebsiteType) []layout.WidgetConfig {
	core := []layout.WidgetConfig{
		{ID: "visitors", Type: "kpi-visitors", Title: "Visitors", Size: layout.SizeSmall, Visible: true, Order: 0},
		{ID: "sessions", Type: "kpi-sessions", Title: "Sessions", Size: layout.SizeSmall, Visible: true, Order: 1},
		{ID: "bounce-rate", Type: "kpi-bounce-rate", Title: "Bounce Rate", Size: layout.SizeSmall, Visible: true, Order: 2},
		{ID: "avg-duration", Type: "kpi-session-duration", Title: "Avg. Duration", Size: layout.SizeSmall, Visible: true, Order: 3},
		{ID: "traffic-chart", Type: "traffic-trend", Title: "Traffic Over Time", Size: layout.SizeLarge, Visible: true, Order: 4},
		{ID: "top-pages", Type: "top-pages", Title: "Top Pages", Size: layout.SizeMedium, Visible: true, Order: 5},
		{ID: "devices", Type: "devices-breakdown", Title: "Devices", Size: layout.SizeSmall, Visible: true, Order: 6},
		{ID: "geo-map", Type: "geo-map", Title: "Geography", Size: layout.SizeMedium, Visible: true, Order: 7},
	}
	return append(core, typeWidgets[t]...)
}

var typeWidgets = map[WebsiteType][]layout.WidgetConfig{
	WebsiteTypeEcommerce: {
		{ID: "revenue", Type: "revenue-kpi", Title: "Revenue", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "orders", Type: "orders-kpi", Title: "Orders", Size: layout.SizeSmall, Visible: true, Order: 9},
		{ID: "aov", Type: "kpi-average-order", Title: "Avg. Order Value", Size: layout.SizeSmall, Visible: true, Order: 10},
		{ID: "conversion-funnel", Type: "purchase-funnel", Title: "Conversion Funnel", Size: layout.SizeMedium, Visible: true, Order: 11},
		{ID: "top-products", Type: "top-products", Title: "Top Products", Size: layout.SizeMedium, Visible: true, Order: 12},
	},
	WebsiteTypeBlog: {
		{ID: "articles-read", Type: "kpi-articles-read", Title: "Articles Read", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "avg-read-time", Type: "kpi-read-time", Title: "Avg. Read Time", Size: layout.SizeSmall, Visible: true, Order: 9},
		{ID: "scroll-depth", Type: "scroll-depth", Title: "Scroll Depth", Size: layout.SizeSmall, Visible: true, Order: 10},
		{ID: "top-articles", Type: "top-articles", Title: "Top Articles", Size: layout.SizeLarge, Visible: true, Order: 11},
	},
	WebsiteTypeSaaS: {
		{ID: "signups", Type: "kpi-signups", Title: "Signups", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "conversion-rate", Type: "kpi-conversion-rate", Title: "Conversion Rate", Size: layout.SizeSmall, Visible: true, Order: 9},
		{ID: "retention", Type: "kpi-retention", Title: "Retention Rate", Size: layout.SizeSmall, Visible: true, Order: 10},
		{ID: "signups-chart", Type: "signups-trend", Title: "Signups Over Time", Size: layout.SizeMedium, Visible: true, Order: 11},
		{ID: "feature-usage", Type: "feature-usage", Title: "Feature Usage", Size: layout.SizeMedium, Visible: true, Order: 12},
	},
	WebsiteTypeLanding: {
		{ID: "conversions", Type: "kpi-conversions", Title: "Conversions", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "conv-rate", Type: "kpi-conversion-rate", Title: "Conversion Rate", Size: layout.SizeSmall, Visible: true, Order: 9},
		{ID: "form-submissions", Type: "kpi-form-submissions", Title: "Form Submissions", Size: layout.SizeSmall, Visible: true, Order: 10},
		{ID: "cta-clicks", Type: "cta-clicks", Title: "CTA Clicks", Size: layout.SizeMedium, Visible: true, Order: 11},
	},
	WebsiteTypePortfolio: {
		{ID: "project-views", Type: "kpi-project-views", Title: "Project Views", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "contact-clicks", Type: "kpi-contact-clicks", Title: "Contact Clicks", Size: layout.SizeSmall, Visible: true, Order: 9},
		{ID: "downloads", Type: "kpi-downloads", Title: "Downloads", Size: layout.SizeSmall, Visible: true, Order: 10},
	},
	WebsiteTypeNews: {
		{ID: "articles-today", Type: "kpi-articles-today", Title: "Articles Today", Size: layout.SizeSmall, Visible: true, Order: 8},
		{ID: "trending", Type: "trending-now", Title: "Trending Now", Size: layout.SizeMedium, Visible: true, Order: 9},
		{ID: "social-shares", Type: "kpi-social-shares", Title: "Social Shares", Size: layout.SizeSmall, Visible: true, Order: 10},
	},
	WebsiteTypeCustom: nil,
}

// DefaultSidebarForType returns the navigation sections hidden for a
// website type. Custom hides nothing.
func DefaultSidebarForType(t WebsiteType) []string {
	hidden := map[WebsiteType][]string{
		WebsiteTypeEcommerce: {"content", "saas"},
		WebsiteTypeBlog:      {"ecommerce", "saas"},
		WebsiteTypeSaaS:      {"ecommerce", "content"},
		WebsiteTypeLanding:   {"ecommerce", "content", "saas", "videos"},
		WebsiteTypePortfolio: {"ecommerce", "content", "saas", "forms"},
		WebsiteTypeNews:      {"ecommerce", "saas"},
		WebsiteTypeCustom:    {},
	}
	out := hidden[t]
	if out == nil {
		return []string{}
	}
	return append([]string{}, out...)
}
