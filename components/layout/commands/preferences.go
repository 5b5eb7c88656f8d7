package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-insights/components/preferences"
)

// SetWebsiteTypeInput switches the account's website type. The change
// cascades: widgets and sidebar are replaced with the type's defaults.
type SetWebsiteTypeInput struct {
	WebsiteType string `json:"website_type"`
}

type websiteTypeService interface {
	SetWebsiteType(ctx context.Context, websiteType preferences.WebsiteType) error
}

// SetWebsiteTypeCommand wraps preferences.Store.SetWebsiteType.
type SetWebsiteTypeCommand struct {
	service   websiteTypeService
	telemetry Telemetry
}

// NewSetWebsiteTypeCommand builds the command.
func NewSetWebsiteTypeCommand(service websiteTypeService, telemetry Telemetry) *SetWebsiteTypeCommand {
	return &SetWebsiteTypeCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetWebsiteTypeInput] = (*SetWebsiteTypeCommand)(nil)

// Execute validates and applies the website type.
func (c *SetWebsiteTypeCommand) Execute(ctx context.Context, msg SetWebsiteTypeInput) error {
	if c.service == nil {
		return errors.New("website type command requires service")
	}
	websiteType, err := preferences.ParseWebsiteType(msg.WebsiteType)
	if err != nil {
		return err
	}
	if err := c.service.SetWebsiteType(ctx, websiteType); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "layout.command.website_type", map[string]any{
		"website_type": string(websiteType),
	})
	return nil
}
