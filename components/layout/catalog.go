package layout

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// CategoryAll is the filter sentinel that matches every category.
const CategoryAll = "all"

// Template describes an addable widget kind in the library catalog.
type Template struct {
	Type                 string            `json:"type" yaml:"type"`
	Title                string            `json:"title" yaml:"title"`
	TitleLocalized       map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	Category             string            `json:"category" yaml:"category"`
	DefaultSize          Size              `json:"default_size" yaml:"default_size"`
	Schema               map[string]any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// CatalogHook lets packages register templates during init().
type CatalogHook func(c *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Filter narrows the catalog listing. The zero value matches everything.
type Filter struct {
	// Query is matched case-insensitively against title and description.
	Query string
	// Category limits results to one category. Empty or CategoryAll
	// matches all categories.
	Category string
	// Locale selects which localized title/description the query matches
	// against, in addition to the default ones.
	Locale string
	// Exclude drops templates whose type is already present on the page.
	Exclude []WidgetConfig
}

// Catalog holds widget templates in declaration order.
type Catalog struct {
	mu        sync.RWMutex
	templates []Template
	index     map[string]int
}

// NewCatalog builds a catalog seeded with the built-in templates and
// applies global hooks.
func NewCatalog() *Catalog {
	c := NewEmptyCatalog()
	for _, tpl := range DefaultTemplates() {
		_ = c.Register(tpl)
	}
	_ = c.ApplyHooks()
	return c
}

// NewEmptyCatalog builds a catalog with no templates and no hooks applied.
func NewEmptyCatalog() *Catalog {
	return &Catalog{index: map[string]int{}}
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// Register adds a template, replacing any existing template of the same
// type in place so declaration order is stable.
func (c *Catalog) Register(tpl Template) error {
	if tpl.Type == "" {
		return fmt.Errorf("layout: template type is required")
	}
	if tpl.Title == "" {
		return fmt.Errorf("layout: template %s is missing a title", tpl.Type)
	}
	if tpl.DefaultSize == "" {
		tpl.DefaultSize = SizeMedium
	}
	if !tpl.DefaultSize.Valid() {
		return fmt.Errorf("layout: template %s has invalid size %q", tpl.Type, tpl.DefaultSize)
	}
	tpl.TitleLocalized = normalizeLocaleMap(tpl.TitleLocalized)
	tpl.DescriptionLocalized = normalizeLocaleMap(tpl.DescriptionLocalized)
	c.mu.Lock()
	defer c.mu.Unlock()
	if at, ok := c.index[tpl.Type]; ok {
		c.templates[at] = tpl
		return nil
	}
	c.index[tpl.Type] = len(c.templates)
	c.templates = append(c.templates, tpl)
	return nil
}

// Template fetches a template by widget type.
func (c *Catalog) Template(widgetType string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	at, ok := c.index[widgetType]
	if !ok {
		return Template{}, false
	}
	return c.templates[at], true
}

// Templates returns every template in declaration order.
func (c *Catalog) Templates() []Template {
	return c.FilterTemplates(Filter{})
}

// Categories returns the distinct categories in declaration order,
// prefixed with CategoryAll.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []string{CategoryAll}
	seen := map[string]struct{}{}
	for _, tpl := range c.templates {
		if tpl.Category == "" {
			continue
		}
		if _, ok := seen[tpl.Category]; ok {
			continue
		}
		seen[tpl.Category] = struct{}{}
		out = append(out, tpl.Category)
	}
	return out
}

// FilterTemplates lists templates matching the filter, preserving
// declaration order.
func (c *Catalog) FilterTemplates(filter Filter) []Template {
	excluded := make(map[string]struct{}, len(filter.Exclude))
	for _, w := range filter.Exclude {
		excluded[w.Type] = struct{}{}
	}
	query := strings.ToLower(strings.TrimSpace(filter.Query))

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Template, 0, len(c.templates))
	for _, tpl := range c.templates {
		if _, ok := excluded[tpl.Type]; ok {
			continue
		}
		if filter.Category != "" && filter.Category != CategoryAll && tpl.Category != filter.Category {
			continue
		}
		if query != "" && !templateMatchesQuery(tpl, filter.Locale, query) {
			continue
		}
		out = append(out, tpl)
	}
	return out
}

func templateMatchesQuery(tpl Template, locale, query string) bool {
	haystacks := []string{
		tpl.Title,
		tpl.Description,
		tpl.TitleForLocale(locale),
		tpl.DescriptionForLocale(locale),
	}
	for _, h := range haystacks {
		if h != "" && strings.Contains(strings.ToLower(h), query) {
			return true
		}
	}
	return false
}

// Instantiate builds a fresh widget from the template. The id combines
// the type with the creation time in milliseconds so repeat additions of
// a re-removed type never collide.
func (c *Catalog) Instantiate(widgetType string, now time.Time) (WidgetConfig, error) {
	tpl, ok := c.Template(widgetType)
	if !ok {
		return WidgetConfig{}, fmt.Errorf("layout: unknown widget type %q", widgetType)
	}
	return Instantiate(tpl, now), nil
}

// Instantiate creates a visible widget from tpl with a time-based id.
func Instantiate(tpl Template, now time.Time) WidgetConfig {
	return WidgetConfig{
		ID:          fmt.Sprintf("%s-%d", tpl.Type, now.UnixMilli()),
		Type:        tpl.Type,
		Title:       tpl.Title,
		Description: tpl.Description,
		Size:        tpl.DefaultSize,
		Visible:     true,
		Category:    tpl.Category,
	}
}
