// Package gorouter mounts the layout endpoints on a go-router router,
// which in turn adapts to fiber or net/http backends.
package gorouter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/layout/commands"
	"github.com/goliatone/go-insights/components/layout/httpapi"
	"github.com/goliatone/go-insights/components/layout/queries"
)

// Config wires go-router with the layout controller, API, and hooks.
type Config[T any] struct {
	Router     router.Router[T]
	Controller *layout.Controller
	API        httpapi.Executor
	Broadcast  *layout.BroadcastHook
	BasePath   string
	Routes     RouteConfig
}

// RouteConfig customizes the relative paths used for layout endpoints.
type RouteConfig struct {
	HTML        string
	Layout      string
	Catalog     string
	Widgets     string
	WidgetID    string
	Reorder     string
	Toggle      string
	Reset       string
	Preferences string
	WebSocket   string
}

// Register mounts layout routes (HTML, JSON, REST, WebSocket) on a
// go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/insights"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		html, err := cfg.Controller.RenderPage(ctx.Context(), pageFrom(ctx), inferLocale(ctx))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send([]byte(html))
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		payload, err := api.Layout(ctx.Context(), queries.LayoutRequest{PageID: pageFrom(ctx)})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	r.Get(routes.Catalog, router.WrapHandler(func(ctx router.Context) error {
		result, err := api.Catalog(ctx.Context(), queries.CatalogRequest{
			Filter: layout.Filter{
				Query:    ctx.Query("q"),
				Category: ctx.Query("category"),
				Locale:   inferLocale(ctx),
			},
		})
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))

	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		input := commands.RemoveWidgetInput{PageID: pageFrom(ctx), WidgetID: id}
		if err := api.Remove(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Toggle, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ToggleWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Toggle(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Reset, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ResetLayoutInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reset(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reset"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetWebsiteTypeInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SetWebsiteType(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusUnprocessableEntity, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *layout.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func pageFrom(ctx router.Context) string {
	if page := ctx.Param("page"); page != "" {
		return page
	}
	if page := ctx.Query("page"); page != "" {
		return page
	}
	return layout.PageOverview
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.Layout == "" {
		routes.Layout = "/dashboard/_layout"
	}
	if routes.Catalog == "" {
		routes.Catalog = "/dashboard/catalog"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/dashboard/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/dashboard/widgets/:id"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/dashboard/widgets/reorder"
	}
	if routes.Toggle == "" {
		routes.Toggle = "/dashboard/widgets/toggle"
	}
	if routes.Reset == "" {
		routes.Reset = "/dashboard/reset"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/dashboard/preferences/website-type"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
