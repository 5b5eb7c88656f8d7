package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/goliatone/go-insights/components/layout"
)

// AddWidgetInput adds a catalog widget to a page. When WidgetType is set
// the widget is instantiated from the catalog template; otherwise Widget
// is used as-is.
type AddWidgetInput struct {
	PageID     string              `json:"page_id"`
	WidgetType string              `json:"widget_type,omitempty"`
	Widget     layout.WidgetConfig `json:"widget,omitempty"`
}

type addService interface {
	AddWidget(ctx context.Context, pageID string, widget layout.WidgetConfig) error
	AddFromTemplate(ctx context.Context, pageID, widgetType string) (layout.WidgetConfig, error)
}

// AddWidgetCommand wraps Store.AddWidget/AddFromTemplate so transports
// can add widgets without linking directly against the store.
type AddWidgetCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(service addService, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute delegates to the layout store.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	widgetID := msg.Widget.ID
	if msg.WidgetType != "" {
		widget, err := c.service.AddFromTemplate(ctx, msg.PageID, msg.WidgetType)
		if err != nil {
			return err
		}
		widgetID = widget.ID
	} else if err := c.service.AddWidget(ctx, msg.PageID, msg.Widget); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.add", map[string]any{
		"page_id":   msg.PageID,
		"widget_id": widgetID,
	})
	return nil
}
