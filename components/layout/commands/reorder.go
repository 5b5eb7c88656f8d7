package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ReorderWidgetsInput contains the reorder payload.
type ReorderWidgetsInput struct {
	PageID    string   `json:"page_id"`
	WidgetIDs []string `json:"widget_ids"`
}

type reorderService interface {
	ReorderByIDs(ctx context.Context, pageID string, widgetIDs []string) error
}

// ReorderWidgetsCommand wraps Store.ReorderByIDs.
type ReorderWidgetsCommand struct {
	service   reorderService
	telemetry Telemetry
}

// NewReorderWidgetsCommand builds the command.
func NewReorderWidgetsCommand(service reorderService, telemetry Telemetry) *ReorderWidgetsCommand {
	return &ReorderWidgetsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReorderWidgetsInput] = (*ReorderWidgetsCommand)(nil)

// Execute applies the new ordering.
func (c *ReorderWidgetsCommand) Execute(ctx context.Context, msg ReorderWidgetsInput) error {
	if c.service == nil {
		return errors.New("reorder command requires service")
	}
	if err := c.service.ReorderByIDs(ctx, msg.PageID, msg.WidgetIDs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.reorder", map[string]any{
		"page_id": msg.PageID,
		"count":   len(msg.WidgetIDs),
	})
	return nil
}
