package layout

import "context"

// Size constrains how much grid space a widget occupies.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeFull   Size = "full"
)

// Valid reports whether s is one of the known grid sizes.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFull:
		return true
	}
	return false
}

// WidgetConfig is a widget placed on a dashboard page. Order is the
// widget's position within the page and is kept dense (0..n-1) by the
// store after every mutation.
type WidgetConfig struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Size        Size           `json:"size"`
	Visible     bool           `json:"visible"`
	Category    string         `json:"category,omitempty"`
	Order       int            `json:"order"`
	Settings    map[string]any `json:"settings,omitempty"`
}

// Clone returns a deep copy so callers can mutate the result freely.
func (w WidgetConfig) Clone() WidgetConfig {
	if w.Settings != nil {
		settings := make(map[string]any, len(w.Settings))
		for key, value := range w.Settings {
			settings[key] = value
		}
		w.Settings = settings
	}
	return w
}

// PageLayout is the ordered widget list for a single dashboard page.
type PageLayout struct {
	PageID  string         `json:"page_id"`
	Widgets []WidgetConfig `json:"widgets"`
}

// WidgetPatch carries partial updates for UpdateWidget. Nil fields are
// left untouched.
type WidgetPatch struct {
	Title       *string         `json:"title,omitempty"`
	Description *string         `json:"description,omitempty"`
	Size        *Size           `json:"size,omitempty"`
	Visible     *bool           `json:"visible,omitempty"`
	Settings    *map[string]any `json:"settings,omitempty"`
}

// WidgetEvent describes a layout change that transports might care about.
type WidgetEvent struct {
	PageID string       `json:"page_id"`
	Widget WidgetConfig `json:"widget"`
	Reason string       `json:"reason"`
}

// RefreshHook notifies transports (REST/WebSocket/SSE) about layout changes.
type RefreshHook interface {
	WidgetUpdated(ctx context.Context, event WidgetEvent) error
}

// Telemetry records layout events for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// SettingsValidator checks widget settings against the template schema.
type SettingsValidator interface {
	Validate(tpl Template, settings map[string]any) error
}

// ActivityEmitter publishes audit events for layout mutations.
type ActivityEmitter interface {
	EmitWidget(ctx context.Context, verb, pageID, widgetID string, metadata map[string]any)
}
