package layout

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const previewChartHeight = "240px"

var sharedPreviewCache = NewPreviewCache(5 * time.Minute)

// PreviewFunc renders placeholder HTML for a widget so the customizer can
// show what a widget kind looks like before real data is wired.
type PreviewFunc func(ctx context.Context, widget WidgetConfig, theme string) (string, error)

// PreviewRegistry maps widget types to preview renderers.
type PreviewRegistry struct {
	mu       sync.RWMutex
	previews map[string]PreviewFunc
	cache    RenderCache
	theme    string
}

// PreviewOption customizes registry behavior.
type PreviewOption func(*PreviewRegistry)

// WithPreviewCache injects a render cache.
func WithPreviewCache(cache RenderCache) PreviewOption {
	return func(r *PreviewRegistry) {
		r.cache = cache
	}
}

// WithPreviewTheme sets the chart theme (defaults to Westeros).
func WithPreviewTheme(theme string) PreviewOption {
	return func(r *PreviewRegistry) {
		r.theme = theme
	}
}

// NewPreviewRegistry builds a registry seeded with the built-in previews.
func NewPreviewRegistry(options ...PreviewOption) *PreviewRegistry {
	r := &PreviewRegistry{
		previews: map[string]PreviewFunc{},
		cache:    sharedPreviewCache,
		theme:    types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	r.registerDefaults()
	return r
}

// Register associates a preview renderer with a widget type.
func (r *PreviewRegistry) Register(widgetType string, fn PreviewFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.previews[widgetType] = fn
}

// Render produces preview HTML for the widget. Unknown types get a plain
// placeholder card.
func (r *PreviewRegistry) Render(ctx context.Context, widget WidgetConfig) (string, error) {
	r.mu.RLock()
	fn, ok := r.previews[widget.Type]
	theme := r.theme
	r.mu.RUnlock()
	if !ok {
		fn = placeholderPreview
	}
	render := func() (string, error) {
		return fn(ctx, widget, theme)
	}
	if r.cache == nil {
		return render()
	}
	key := fmt.Sprintf("%s:%s:%s:%s", widget.Type, widget.ID, widget.Size, settingsHash(widget.Settings))
	return r.cache.GetOrRender(key, render)
}

func (r *PreviewRegistry) registerDefaults() {
	kpis := map[string]string{
		"kpi-visitors":         "12,847",
		"kpi-pageviews":        "48,392",
		"kpi-bounce-rate":      "42.3%",
		"kpi-session-duration": "3m 24s",
		"realtime-visitors":    "87",
		"revenue-kpi":          "$24,310",
		"orders-kpi":           "1,204",
		"video-completion":     "68%",
	}
	for widgetType, sample := range kpis {
		sample := sample
		r.previews[widgetType] = func(_ context.Context, widget WidgetConfig, _ string) (string, error) {
			return kpiCard(widget.Title, sample), nil
		}
	}

	r.previews["traffic-trend"] = linePreview("Visits", weekLabels, []float64{820, 932, 901, 934, 1290, 1330, 1320})
	r.previews["scroll-depth"] = linePreview("Depth %", []string{"25%", "50%", "75%", "100%"}, []float64{92, 74, 48, 21})

	r.previews["devices-breakdown"] = piePreview(map[string]float64{
		"Mobile": 61, "Desktop": 31, "Tablet": 8,
	})
	r.previews["traffic-sources"] = piePreview(map[string]float64{
		"Search": 44, "Direct": 28, "Social": 18, "Referral": 10,
	})

	r.previews["top-pages"] = barPreview("Views", []string{"/", "/pricing", "/blog", "/docs", "/about"}, []float64{8200, 4100, 3600, 2900, 1800})
	r.previews["top-countries"] = barPreview("Visits", []string{"SA", "AE", "EG", "US", "DE"}, []float64{5200, 3100, 2400, 1900, 800})
	r.previews["top-products"] = barPreview("Sales", []string{"Basic", "Pro", "Team", "Add-on"}, []float64{420, 310, 180, 95})
	r.previews["top-articles"] = barPreview("Reads", []string{"Launch", "Guide", "Changelog", "Roadmap"}, []float64{1900, 1400, 900, 610})
	r.previews["video-views"] = barPreview("Views", []string{"Intro", "Demo", "Webinar"}, []float64{3400, 2100, 800})
	r.previews["engagement-metrics"] = barPreview("Count", []string{"Comments", "Shares", "Likes"}, []float64{312, 128, 1840})
}

var weekLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func kpiCard(title, value string) string {
	return fmt.Sprintf(
		`<div class="kpi-card"><div class="kpi-title">%s</div><div class="kpi-value">%s</div></div>`,
		html.EscapeString(title), html.EscapeString(value),
	)
}

func placeholderPreview(_ context.Context, widget WidgetConfig, _ string) (string, error) {
	return fmt.Sprintf(
		`<div class="widget-placeholder" data-type="%s">%s</div>`,
		html.EscapeString(widget.Type), html.EscapeString(widget.Title),
	), nil
}

func linePreview(seriesName string, labels []string, values []float64) PreviewFunc {
	return func(_ context.Context, widget WidgetConfig, theme string) (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(previewChartOptions(widget.Title, theme)...)
		line.SetXAxis(labels)
		data := make([]opts.LineData, len(values))
		for i, v := range values {
			data[i] = opts.LineData{Value: v}
		}
		line.AddSeries(seriesName, data)
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	}
}

func piePreview(slices map[string]float64) PreviewFunc {
	labels := make([]string, 0, len(slices))
	for label := range slices {
		labels = append(labels, label)
	}
	// Deterministic slice order keeps cache keys stable.
	sort.Strings(labels)
	return func(_ context.Context, widget WidgetConfig, theme string) (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(previewChartOptions(widget.Title, theme)...)
		data := make([]opts.PieData, len(labels))
		for i, label := range labels {
			data[i] = opts.PieData{Name: label, Value: slices[label]}
		}
		pie.AddSeries(widget.Type, data)
		return renderChart(pie)
	}
}

func barPreview(seriesName string, labels []string, values []float64) PreviewFunc {
	return func(_ context.Context, widget WidgetConfig, theme string) (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(previewChartOptions(widget.Title, theme)...)
		bar.SetXAxis(labels)
		data := make([]opts.BarData, len(values))
		for i, v := range values {
			data[i] = opts.BarData{Value: v}
		}
		bar.AddSeries(seriesName, data)
		return renderChart(bar)
	}
}

func previewChartOptions(title, theme string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  theme,
			Width:  "100%",
			Height: previewChartHeight,
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
