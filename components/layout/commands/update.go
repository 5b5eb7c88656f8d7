package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/goliatone/go-insights/components/layout"
)

// UpdateWidgetInput carries a partial widget update.
type UpdateWidgetInput struct {
	PageID   string             `json:"page_id"`
	WidgetID string             `json:"widget_id"`
	Patch    layout.WidgetPatch `json:"patch"`
}

type updateService interface {
	UpdateWidget(ctx context.Context, pageID, widgetID string, patch layout.WidgetPatch) error
	ToggleWidget(ctx context.Context, pageID, widgetID string) error
}

// UpdateWidgetCommand wraps Store.UpdateWidget.
type UpdateWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateWidgetCommand builds the command.
func NewUpdateWidgetCommand(service updateService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute patches the widget.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if err := c.service.UpdateWidget(ctx, msg.PageID, msg.WidgetID, msg.Patch); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.update", map[string]any{
		"page_id":   msg.PageID,
		"widget_id": msg.WidgetID,
	})
	return nil
}

// ToggleWidgetInput identifies the widget whose visibility flips.
type ToggleWidgetInput struct {
	PageID   string `json:"page_id"`
	WidgetID string `json:"widget_id"`
}

// ToggleWidgetCommand wraps Store.ToggleWidget.
type ToggleWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewToggleWidgetCommand builds the command.
func NewToggleWidgetCommand(service updateService, telemetry Telemetry) *ToggleWidgetCommand {
	return &ToggleWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleWidgetInput] = (*ToggleWidgetCommand)(nil)

// Execute flips the widget's visibility.
func (c *ToggleWidgetCommand) Execute(ctx context.Context, msg ToggleWidgetInput) error {
	if c.service == nil {
		return errors.New("toggle command requires service")
	}
	if err := c.service.ToggleWidget(ctx, msg.PageID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.toggle", map[string]any{
		"page_id":   msg.PageID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
