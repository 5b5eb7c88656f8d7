package layout

// PageOverview is the page every dashboard starts with.
const PageOverview = "overview"

// Category keys used by the built-in templates.
const (
	CategoryOverview  = "overview"
	CategoryAudience  = "audience"
	CategoryBehavior  = "behavior"
	CategoryEcommerce = "ecommerce"
	CategoryContent   = "content"
	CategoryVideo     = "video"
)

// DefaultOverviewWidgets returns the widgets a fresh overview page starts
// with. Callers receive deep copies.
func DefaultOverviewWidgets() []WidgetConfig {
	widgets := []WidgetConfig{
		{ID: "visitors-kpi", Type: "kpi-visitors", Title: "Total Visitors", Size: SizeSmall, Visible: true, Category: CategoryOverview, Order: 0},
		{ID: "pageviews-kpi", Type: "kpi-pageviews", Title: "Page Views", Size: SizeSmall, Visible: true, Category: CategoryOverview, Order: 1},
		{ID: "bounce-kpi", Type: "kpi-bounce-rate", Title: "Bounce Rate", Size: SizeSmall, Visible: true, Category: CategoryOverview, Order: 2},
		{ID: "duration-kpi", Type: "kpi-session-duration", Title: "Avg. Session", Size: SizeSmall, Visible: true, Category: CategoryOverview, Order: 3},
		{ID: "traffic-trend", Type: "traffic-trend", Title: "Traffic Trend", Size: SizeLarge, Visible: true, Category: CategoryOverview, Order: 4},
		{ID: "devices-chart", Type: "devices-breakdown", Title: "Device Breakdown", Size: SizeMedium, Visible: true, Category: CategoryAudience, Order: 5},
		{ID: "top-pages", Type: "top-pages", Title: "Top Pages", Size: SizeMedium, Visible: true, Category: CategoryBehavior, Order: 6},
		{ID: "sources-chart", Type: "traffic-sources", Title: "Traffic Sources", Size: SizeMedium, Visible: true, Category: CategoryAudience, Order: 7},
	}
	out := make([]WidgetConfig, len(widgets))
	for i, w := range widgets {
		out[i] = w.Clone()
	}
	return out
}

// DefaultPageLayouts maps known page ids to their starting widgets.
func DefaultPageLayouts() map[string][]WidgetConfig {
	return map[string][]WidgetConfig{
		PageOverview: DefaultOverviewWidgets(),
	}
}

// DefaultTemplates returns the built-in widget library. Arabic is carried
// as a localized title/description since the product ships an RTL UI.
func DefaultTemplates() []Template {
	return []Template{
		{
			Type:                 "kpi-visitors",
			Title:                "Total Visitors",
			TitleLocalized:       map[string]string{"ar": "إجمالي الزوار"},
			Description:          "Total visitor count with percentage change",
			DescriptionLocalized: map[string]string{"ar": "عرض إجمالي عدد الزوار مع النسبة المئوية للتغيير"},
			Category:             CategoryOverview,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "kpi-pageviews",
			Title:                "Page Views",
			TitleLocalized:       map[string]string{"ar": "مشاهدات الصفحات"},
			Description:          "Total page views",
			DescriptionLocalized: map[string]string{"ar": "إجمالي مشاهدات الصفحات"},
			Category:             CategoryOverview,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "kpi-bounce-rate",
			Title:                "Bounce Rate",
			TitleLocalized:       map[string]string{"ar": "معدل الارتداد"},
			Description:          "Share of visitors who left immediately",
			DescriptionLocalized: map[string]string{"ar": "نسبة الزوار الذين غادروا فوراً"},
			Category:             CategoryOverview,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "kpi-session-duration",
			Title:                "Avg. Session",
			TitleLocalized:       map[string]string{"ar": "متوسط الجلسة"},
			Description:          "Average session duration",
			DescriptionLocalized: map[string]string{"ar": "متوسط مدة الجلسة"},
			Category:             CategoryOverview,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "traffic-trend",
			Title:                "Traffic Trend",
			TitleLocalized:       map[string]string{"ar": "اتجاه الزيارات"},
			Description:          "Visit trend over time",
			DescriptionLocalized: map[string]string{"ar": "رسم بياني لاتجاه الزيارات عبر الزمن"},
			Category:             CategoryOverview,
			DefaultSize:          SizeLarge,
			Schema:               chartSchema,
		},
		{
			Type:                 "realtime-visitors",
			Title:                "Visitors Now",
			TitleLocalized:       map[string]string{"ar": "الزوار الآن"},
			Description:          "Visitors active right now",
			DescriptionLocalized: map[string]string{"ar": "عدد الزوار النشطين حالياً"},
			Category:             CategoryOverview,
			DefaultSize:          SizeSmall,
		},
		{
			Type:                 "devices-breakdown",
			Title:                "Device Breakdown",
			TitleLocalized:       map[string]string{"ar": "توزيع الأجهزة"},
			Description:          "Visitors by device type",
			DescriptionLocalized: map[string]string{"ar": "توزيع الزوار حسب نوع الجهاز"},
			Category:             CategoryAudience,
			DefaultSize:          SizeMedium,
			Schema:               chartSchema,
		},
		{
			Type:                 "geo-map",
			Title:                "Country Map",
			TitleLocalized:       map[string]string{"ar": "خريطة الدول"},
			Description:          "Visitors by geography",
			DescriptionLocalized: map[string]string{"ar": "توزيع الزوار جغرافياً"},
			Category:             CategoryAudience,
			DefaultSize:          SizeLarge,
		},
		{
			Type:                 "top-countries",
			Title:                "Top Countries",
			TitleLocalized:       map[string]string{"ar": "أعلى الدول"},
			Description:          "Countries sending the most visits",
			DescriptionLocalized: map[string]string{"ar": "قائمة بأعلى الدول زيارة"},
			Category:             CategoryAudience,
			DefaultSize:          SizeMedium,
			Schema:               listSchema,
		},
		{
			Type:                 "traffic-sources",
			Title:                "Traffic Sources",
			TitleLocalized:       map[string]string{"ar": "مصادر الزيارات"},
			Description:          "Where visits come from",
			DescriptionLocalized: map[string]string{"ar": "توزيع مصادر الزيارات"},
			Category:             CategoryAudience,
			DefaultSize:          SizeMedium,
			Schema:               chartSchema,
		},
		{
			Type:                 "top-pages",
			Title:                "Top Pages",
			TitleLocalized:       map[string]string{"ar": "أكثر الصفحات زيارة"},
			Description:          "Most viewed pages",
			DescriptionLocalized: map[string]string{"ar": "قائمة بأكثر الصفحات مشاهدة"},
			Category:             CategoryBehavior,
			DefaultSize:          SizeMedium,
			Schema:               listSchema,
		},
		{
			Type:                 "click-heatmap",
			Title:                "Click Heatmap",
			TitleLocalized:       map[string]string{"ar": "خريطة النقرات"},
			Description:          "Click distribution across the page",
			DescriptionLocalized: map[string]string{"ar": "توزيع النقرات على الصفحة"},
			Category:             CategoryBehavior,
			DefaultSize:          SizeLarge,
		},
		{
			Type:                 "scroll-depth",
			Title:                "Scroll Depth",
			TitleLocalized:       map[string]string{"ar": "عمق التمرير"},
			Description:          "How far visitors scroll",
			DescriptionLocalized: map[string]string{"ar": "نسبة التمرير في الصفحات"},
			Category:             CategoryBehavior,
			DefaultSize:          SizeMedium,
		},
		{
			Type:                 "conversion-funnel",
			Title:                "Conversion Funnel",
			TitleLocalized:       map[string]string{"ar": "قمع التحويل"},
			Description:          "User conversion stages",
			DescriptionLocalized: map[string]string{"ar": "مراحل تحويل المستخدمين"},
			Category:             CategoryBehavior,
			DefaultSize:          SizeLarge,
		},
		{
			Type:                 "revenue-kpi",
			Title:                "Total Revenue",
			TitleLocalized:       map[string]string{"ar": "إجمالي الإيرادات"},
			Description:          "Revenue for the selected period",
			DescriptionLocalized: map[string]string{"ar": "إجمالي الإيرادات للفترة المحددة"},
			Category:             CategoryEcommerce,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "orders-kpi",
			Title:                "Orders",
			TitleLocalized:       map[string]string{"ar": "عدد الطلبات"},
			Description:          "Total order count",
			DescriptionLocalized: map[string]string{"ar": "إجمالي عدد الطلبات"},
			Category:             CategoryEcommerce,
			DefaultSize:          SizeSmall,
			Schema:               kpiSchema,
		},
		{
			Type:                 "top-products",
			Title:                "Top Products",
			TitleLocalized:       map[string]string{"ar": "أكثر المنتجات مبيعاً"},
			Description:          "Best selling products",
			DescriptionLocalized: map[string]string{"ar": "قائمة بأكثر المنتجات مبيعاً"},
			Category:             CategoryEcommerce,
			DefaultSize:          SizeMedium,
			Schema:               listSchema,
		},
		{
			Type:                 "purchase-funnel",
			Title:                "Purchase Funnel",
			TitleLocalized:       map[string]string{"ar": "قمع الشراء"},
			Description:          "Checkout stages",
			DescriptionLocalized: map[string]string{"ar": "مراحل عملية الشراء"},
			Category:             CategoryEcommerce,
			DefaultSize:          SizeLarge,
		},
		{
			Type:                 "top-articles",
			Title:                "Top Articles",
			TitleLocalized:       map[string]string{"ar": "أكثر المقالات قراءة"},
			Description:          "Most read articles",
			DescriptionLocalized: map[string]string{"ar": "قائمة بأكثر المقالات مشاهدة"},
			Category:             CategoryContent,
			DefaultSize:          SizeMedium,
			Schema:               listSchema,
		},
		{
			Type:                 "engagement-metrics",
			Title:                "Engagement",
			TitleLocalized:       map[string]string{"ar": "مقاييس التفاعل"},
			Description:          "Comments, shares and likes",
			DescriptionLocalized: map[string]string{"ar": "التعليقات والمشاركات والإعجابات"},
			Category:             CategoryContent,
			DefaultSize:          SizeMedium,
		},
		{
			Type:                 "video-views",
			Title:                "Video Views",
			TitleLocalized:       map[string]string{"ar": "مشاهدات الفيديو"},
			Description:          "Video view statistics",
			DescriptionLocalized: map[string]string{"ar": "إحصائيات مشاهدات الفيديو"},
			Category:             CategoryVideo,
			DefaultSize:          SizeMedium,
		},
		{
			Type:                 "video-completion",
			Title:                "Video Completion Rate",
			TitleLocalized:       map[string]string{"ar": "معدل إكمال الفيديو"},
			Description:          "Share of videos watched to the end",
			DescriptionLocalized: map[string]string{"ar": "نسبة إكمال مشاهدة الفيديو"},
			Category:             CategoryVideo,
			DefaultSize:          SizeSmall,
		},
	}
}

var kpiSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"comparison": map[string]any{
			"type": "string",
			"enum": []any{"previous_period", "previous_year", "none"},
		},
		"goal": map[string]any{
			"type":    "number",
			"minimum": 0,
		},
	},
	"additionalProperties": false,
}

var chartSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"granularity": map[string]any{
			"type": "string",
			"enum": []any{"hour", "day", "week", "month"},
		},
		"smooth": map[string]any{"type": "boolean"},
	},
	"additionalProperties": false,
}

var listSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"limit": map[string]any{
			"type":    "integer",
			"minimum": 1,
			"maximum": 50,
		},
	},
	"additionalProperties": false,
}
