package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/layout/commands"
	"github.com/goliatone/go-insights/components/layout/queries"
	"github.com/goliatone/go-insights/components/preferences"
)

// Executor is the transport-agnostic surface adapters call into. Both
// the net/http handlers and the go-router bindings sit on top of it.
type Executor interface {
	Layout(ctx context.Context, req queries.LayoutRequest) (layout.LayoutPayload, error)
	Catalog(ctx context.Context, req queries.CatalogRequest) (queries.CatalogResult, error)
	Add(ctx context.Context, input commands.AddWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Toggle(ctx context.Context, input commands.ToggleWidgetInput) error
	Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error
	Reset(ctx context.Context, input commands.ResetLayoutInput) error
	SetWebsiteType(ctx context.Context, input commands.SetWebsiteTypeInput) error
}

// CommandExecutor bundles the shared commands and queries behind the
// Executor interface.
type CommandExecutor struct {
	LayoutQuery       gocommand.Querier[queries.LayoutRequest, layout.LayoutPayload]
	CatalogQuery      gocommand.Querier[queries.CatalogRequest, queries.CatalogResult]
	AddCmd            gocommand.Commander[commands.AddWidgetInput]
	RemoveCmd         gocommand.Commander[commands.RemoveWidgetInput]
	UpdateCmd         gocommand.Commander[commands.UpdateWidgetInput]
	ToggleCmd         gocommand.Commander[commands.ToggleWidgetInput]
	ReorderCmd        gocommand.Commander[commands.ReorderWidgetsInput]
	ResetCmd          gocommand.Commander[commands.ResetLayoutInput]
	SetWebsiteTypeCmd gocommand.Commander[commands.SetWebsiteTypeInput]
}

var _ Executor = (*CommandExecutor)(nil)

// NewCommandExecutor wires the full command set for a store, its
// preferences, and telemetry.
func NewCommandExecutor(store *layout.Store, controller *layout.Controller, prefs *preferences.Store, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		LayoutQuery:       queries.NewLayoutQuery(controller),
		CatalogQuery:      queries.NewCatalogQuery(store.Catalog()),
		AddCmd:            commands.NewAddWidgetCommand(store, telemetry),
		RemoveCmd:         commands.NewRemoveWidgetCommand(store, telemetry),
		UpdateCmd:         commands.NewUpdateWidgetCommand(store, telemetry),
		ToggleCmd:         commands.NewToggleWidgetCommand(store, telemetry),
		ReorderCmd:        commands.NewReorderWidgetsCommand(store, telemetry),
		ResetCmd:          commands.NewResetLayoutCommand(store, telemetry),
		SetWebsiteTypeCmd: commands.NewSetWebsiteTypeCommand(prefs, telemetry),
	}
}

func (e *CommandExecutor) Layout(ctx context.Context, req queries.LayoutRequest) (layout.LayoutPayload, error) {
	if e.LayoutQuery == nil {
		return layout.LayoutPayload{}, errors.New("httpapi: layout query is not configured")
	}
	return e.LayoutQuery.Query(ctx, req)
}

func (e *CommandExecutor) Catalog(ctx context.Context, req queries.CatalogRequest) (queries.CatalogResult, error) {
	if e.CatalogQuery == nil {
		return queries.CatalogResult{}, errors.New("httpapi: catalog query is not configured")
	}
	return e.CatalogQuery.Query(ctx, req)
}

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddWidgetInput) error {
	return execute(ctx, e.AddCmd, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return execute(ctx, e.RemoveCmd, input)
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	return execute(ctx, e.UpdateCmd, input)
}

func (e *CommandExecutor) Toggle(ctx context.Context, input commands.ToggleWidgetInput) error {
	return execute(ctx, e.ToggleCmd, input)
}

func (e *CommandExecutor) Reorder(ctx context.Context, input commands.ReorderWidgetsInput) error {
	return execute(ctx, e.ReorderCmd, input)
}

func (e *CommandExecutor) Reset(ctx context.Context, input commands.ResetLayoutInput) error {
	return execute(ctx, e.ResetCmd, input)
}

func (e *CommandExecutor) SetWebsiteType(ctx context.Context, input commands.SetWebsiteTypeInput) error {
	return execute(ctx, e.SetWebsiteTypeCmd, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], input T) error {
	if cmd == nil {
		return errors.New("httpapi: command is not configured")
	}
	return cmd.Execute(ctx, input)
}
