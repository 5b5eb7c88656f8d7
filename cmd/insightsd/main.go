// insightsd serves the analytics dashboard layout API: widget CRUD,
// the widget library, preferences, onboarding, and live refresh
// streams.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/layout/httpapi"
	"github.com/goliatone/go-insights/components/onboarding"
	"github.com/goliatone/go-insights/components/preferences"
	"github.com/goliatone/go-insights/pkg/activity"
	"github.com/goliatone/go-insights/pkg/analytics"
	"github.com/goliatone/go-insights/pkg/storage"
)

type cli struct {
	Config string `short:"c" type:"path" help:"Path to a TOML config file."`
	Listen string `help:"Listen address, overrides the config file."`
	Debug  bool   `help:"Enable debug logging."`
}

type config struct {
	Listen    string          `toml:"listen"`
	BasePath  string          `toml:"base_path"`
	Storage   storageConfig   `toml:"storage"`
	Analytics analyticsConfig `toml:"analytics"`
}

type storageConfig struct {
	// Driver is "memory", "sqlite", or "postgres".
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

type analyticsConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	PollInterval string `toml:"poll_interval"`
}

func defaultConfig() config {
	return config{
		Listen:   ":8089",
		BasePath: "/api",
		Storage:  storageConfig{Driver: "memory"},
	}
}

func main() {
	var flags cli
	kctx := kong.Parse(&flags,
		kong.Description("Analytics dashboard layout service."),
		kong.UsageOnError(),
	)
	kctx.FatalIfErrorf(run(flags))
}

func run(flags cli) error {
	cfg := defaultConfig()
	if flags.Config != "" {
		if _, err := toml.DecodeFile(flags.Config, &cfg); err != nil {
			return fmt.Errorf("insightsd: load config %s: %w", flags.Config, err)
		}
	}
	if flags.Listen != "" {
		cfg.Listen = flags.Listen
	}

	logger, err := buildLogger(flags.Debug)
	if err != nil {
		return fmt.Errorf("insightsd: build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	if closeStore != nil {
		defer closeStore()
	}

	broadcast := layout.NewBroadcastHook()
	telemetry := &layout.ZapTelemetry{Logger: logger}

	emitter := activity.NewEmitter(activity.Hooks{
		activity.HookFunc(func(_ context.Context, event activity.Event) error {
			logger.Info("activity",
				zap.String("verb", event.Verb),
				zap.String("object_type", event.ObjectType),
				zap.String("object_id", event.ObjectID),
			)
			return nil
		}),
	}, activity.Config{Enabled: true})

	layoutStore, err := layout.NewStore(ctx, layout.Options{
		Storage:     store,
		RefreshHook: broadcast,
		Telemetry:   telemetry,
		Validator:   layout.NewJSONSchemaValidator(),
		Activity:    layout.EmitterAdapter{Emitter: emitter},
	})
	if err != nil {
		return fmt.Errorf("insightsd: open layout store: %w", err)
	}

	prefStore, err := preferences.NewStore(ctx, preferences.Options{
		Storage:   store,
		Seeder:    layoutStore,
		Telemetry: telemetry,
	})
	if err != nil {
		return fmt.Errorf("insightsd: open preference store: %w", err)
	}

	renderer, err := layout.NewTemplateRenderer()
	if err != nil {
		return fmt.Errorf("insightsd: build renderer: %w", err)
	}
	controller := layout.NewController(layout.ControllerOptions{
		Store:    layoutStore,
		Previews: layout.NewPreviewRegistry(),
		Renderer: renderer,
	})

	executor := httpapi.NewCommandExecutor(layoutStore, controller, prefStore, telemetry)
	api := &httpapi.Handlers{
		Layout:      executor.LayoutQuery,
		Catalog:     executor.CatalogQuery,
		Add:         executor.AddCmd,
		Remove:      executor.RemoveCmd,
		Update:      executor.UpdateCmd,
		Toggle:      executor.ToggleCmd,
		Reorder:     executor.ReorderCmd,
		Reset:       executor.ResetCmd,
		WebsiteType: executor.SetWebsiteTypeCmd,
	}

	var warehouse analytics.Client
	var poller *analytics.Poller
	if cfg.Analytics.BaseURL != "" {
		client, err := analytics.NewHTTPClient(analytics.HTTPConfig{
			BaseURL: cfg.Analytics.BaseURL,
			APIKey:  cfg.Analytics.APIKey,
		})
		if err != nil {
			return fmt.Errorf("insightsd: build analytics client: %w", err)
		}
		warehouse = client
		poller = analytics.NewPoller(analytics.PollerOptions{
			Client:   client,
			Interval: parseInterval(cfg.Analytics.PollInterval),
			OnData: func(ctx context.Context, data analytics.RealTimeData) {
				_ = broadcast.WidgetUpdated(ctx, layout.WidgetEvent{
					PageID: layout.PageOverview,
					Reason: "metrics",
				})
				logger.Debug("realtime refresh", zap.Int64("active_visitors", data.ActiveVisitors))
			},
			OnError: func(err error) {
				logger.Warn("realtime poll failed", zap.Error(err))
			},
		})
		poller.Start(ctx)
		defer poller.Stop()
	}

	onboardingSvc := onboarding.NewService(onboarding.Options{
		Events:      sessionCounter(warehouse),
		Preferences: prefStore,
		Telemetry:   telemetry,
	})
	onboardingAPI := onboarding.NewHandlers(onboardingSvc)

	router := buildRouter(cfg.BasePath, api, onboardingAPI, broadcast)

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Listen))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("insightsd: shutdown: %w", err)
		}
		logger.Info("stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func buildRouter(basePath string, api *httpapi.Handlers, onboardingAPI *onboarding.Handlers, broadcast *layout.BroadcastHook) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	if basePath == "" {
		basePath = "/api"
	}
	r.Route(basePath, func(r chi.Router) {
		r.Get("/layout", api.HandleLayout)
		r.Post("/layout/reset", api.HandleResetLayout)
		r.Get("/catalog", api.HandleCatalog)
		r.Post("/widgets", api.HandleAddWidget)
		r.Patch("/widgets", api.HandleUpdateWidget)
		r.Post("/widgets/toggle", api.HandleToggleWidget)
		r.Post("/widgets/reorder", api.HandleReorderWidgets)
		r.Delete("/pages/{page}/widgets/{id}", func(w http.ResponseWriter, req *http.Request) {
			api.HandleRemoveWidget(w, req, chi.URLParam(req, "page"), chi.URLParam(req, "id"))
		})
		r.Put("/preferences/website-type", api.HandleSetWebsiteType)

		r.Route("/onboarding", func(r chi.Router) {
			r.Get("/status", onboardingAPI.HandleStatus)
			r.Post("/website-type", onboardingAPI.HandleSaveWebsiteType)
			r.Post("/tracking-id", onboardingAPI.HandleGenerateTrackingID)
			r.Post("/verify", onboardingAPI.HandleVerifyTracking)
			r.Post("/complete", onboardingAPI.HandleComplete)
			r.Post("/skip", onboardingAPI.HandleSkip)
		})

		r.Get("/events", broadcast.ServeSSE)
		r.Get("/ws", broadcast.ServeWebSocket)
	})
	return r
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func openStorage(ctx context.Context, cfg storageConfig) (storage.Store, func(), error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory":
		return storage.NewMemory(), nil, nil
	case "sqlite":
		path := cfg.Path
		if path == "" {
			path = "insights.db"
		}
		store, err := storage.OpenSQLite(path)
		if err != nil {
			return nil, nil, fmt.Errorf("insightsd: open sqlite %s: %w", path, err)
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("insightsd: connect postgres: %w", err)
		}
		store := storage.NewPostgres(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("insightsd: migrate postgres: %w", err)
		}
		return store, pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("insightsd: unknown storage driver %q", cfg.Driver)
	}
}

// sessionCounter adapts the warehouse client to the onboarding service,
// returning nil when no warehouse is configured.
func sessionCounter(client analytics.Client) onboarding.EventCounter {
	if client == nil {
		return nil
	}
	return client
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

