package layout

import (
	"context"
	"errors"
	"time"
)

// ControllerOptions wires the collaborators the HTTP layer needs.
type ControllerOptions struct {
	Store    *Store
	Previews *PreviewRegistry
	Renderer Renderer
	// Template rendered by RenderPage. Defaults to "dashboard".
	Template string
	Clock    func() time.Time
}

// Controller assembles layout payloads and rendered pages for transports.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the store into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "dashboard"
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Controller{opts: opts}
}

// LayoutPayload is the JSON document served to SPA clients: the page's
// widgets plus the catalog templates still available to add.
type LayoutPayload struct {
	PageID      string         `json:"page_id"`
	Widgets     []WidgetConfig `json:"widgets"`
	Templates   []Template     `json:"templates"`
	Categories  []string       `json:"categories"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Layout builds the payload for a page, filtering catalog templates by
// the optional query/category and excluding types already on the page.
func (c *Controller) Layout(_ context.Context, pageID string, filter Filter) (LayoutPayload, error) {
	if c.opts.Store == nil {
		return LayoutPayload{}, errors.New("layout: controller has no store")
	}
	widgets := c.opts.Store.GetLayout(pageID)
	filter.Exclude = widgets
	catalog := c.opts.Store.Catalog()
	return LayoutPayload{
		PageID:      pageID,
		Widgets:     widgets,
		Templates:   catalog.FilterTemplates(filter),
		Categories:  catalog.Categories(),
		GeneratedAt: c.opts.Clock(),
	}, nil
}

// RenderPage renders the server-side HTML for a page, including widget
// previews when a preview registry is configured.
func (c *Controller) RenderPage(ctx context.Context, pageID, locale string) (string, error) {
	if c.opts.Store == nil {
		return "", errors.New("layout: controller has no store")
	}
	if c.opts.Renderer == nil {
		return "", errors.New("layout: controller has no renderer")
	}
	widgets := c.opts.Store.GetLayout(pageID)
	entries := make([]map[string]any, 0, len(widgets))
	for _, w := range widgets {
		entry := map[string]any{
			"id":      w.ID,
			"type":    w.Type,
			"title":   c.localizedTitle(w, locale),
			"size":    string(w.Size),
			"visible": w.Visible,
			"order":   w.Order,
		}
		if c.opts.Previews != nil {
			html, err := c.opts.Previews.Render(ctx, w)
			if err == nil && html != "" {
				entry["preview_html"] = html
			}
		}
		entries = append(entries, entry)
	}
	return c.opts.Renderer.Render(c.opts.Template, map[string]any{
		"page_id": pageID,
		"locale":  locale,
		"widgets": entries,
	})
}

func (c *Controller) localizedTitle(w WidgetConfig, locale string) string {
	if locale == "" {
		return w.Title
	}
	if tpl, ok := c.opts.Store.Catalog().Template(w.Type); ok {
		return tpl.TitleForLocale(locale)
	}
	return w.Title
}
