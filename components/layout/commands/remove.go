package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetInput identifies the widget to delete.
type RemoveWidgetInput struct {
	PageID   string `json:"page_id"`
	WidgetID string `json:"widget_id"`
}

type removeService interface {
	RemoveWidget(ctx context.Context, pageID, widgetID string) error
}

// RemoveWidgetCommand wraps Store.RemoveWidget.
type RemoveWidgetCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveWidgetCommand builds the command.
func NewRemoveWidgetCommand(service removeService, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute deletes the widget from its page.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if err := c.service.RemoveWidget(ctx, msg.PageID, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.remove", map[string]any{
		"page_id":   msg.PageID,
		"widget_id": msg.WidgetID,
	})
	return nil
}
