package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetLayoutInput names the page to restore to defaults.
type ResetLayoutInput struct {
	PageID string `json:"page_id"`
}

type resetService interface {
	ResetLayout(ctx context.Context, pageID string) error
}

// ResetLayoutCommand wraps Store.ResetLayout.
type ResetLayoutCommand struct {
	service   resetService
	telemetry Telemetry
}

// NewResetLayoutCommand builds the command.
func NewResetLayoutCommand(service resetService, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute restores the page defaults.
func (c *ResetLayoutCommand) Execute(ctx context.Context, msg ResetLayoutInput) error {
	if c.service == nil {
		return errors.New("reset command requires service")
	}
	if err := c.service.ResetLayout(ctx, msg.PageID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.reset", map[string]any{
		"page_id": msg.PageID,
	})
	return nil
}
