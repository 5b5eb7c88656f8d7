package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-insights/pkg/storage"
)

// StorageKey is where the store persists its layouts.
const StorageKey = "insights.layouts"

const layoutsVersion = 1

var (
	errInvalidPage   = errors.New("layout: page id is required")
	errInvalidWidget = errors.New("layout: widget id is required")
)

// persistedLayouts is the envelope written to storage.
type persistedLayouts struct {
	Version int                      `json:"version"`
	Layouts map[string]persistedPage `json:"layouts"`
}

type persistedPage struct {
	Widgets      []WidgetConfig `json:"widgets"`
	LastModified time.Time      `json:"last_modified"`
}

// Options configures the layout Store. Every collaborator is provided via
// interface so applications can swap implementations without importing
// other go-insights packages.
type Options struct {
	Storage     storage.Store
	Defaults    map[string][]WidgetConfig
	Catalog     *Catalog
	Validator   SettingsValidator
	RefreshHook RefreshHook
	Telemetry   Telemetry
	Activity    ActivityEmitter
	Clock       func() time.Time
}

// Store keeps per-page widget layouts with write-through persistence.
// Widget Order is renormalized to 0..n-1 after every mutation.
type Store struct {
	opts Options

	mu      sync.RWMutex
	layouts map[string]*pageState
}

type pageState struct {
	widgets      []WidgetConfig
	lastModified time.Time
}

// NewStore builds a Store, loading any persisted layouts. A corrupt or
// missing snapshot falls back to the built-in defaults rather than
// failing startup.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.Defaults == nil {
		opts.Defaults = DefaultPageLayouts()
	}
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Activity == nil {
		opts.Activity = noopActivityEmitter{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	s := &Store{
		opts:    opts,
		layouts: map[string]*pageState{},
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	raw, err := s.opts.Storage.Load(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("layout: load layouts: %w", err)
	}
	var envelope persistedLayouts
	if err := json.Unmarshal(raw, &envelope); err != nil {
		s.opts.Telemetry.Record(ctx, "layout.load.corrupt", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if envelope.Version != layoutsVersion {
		s.opts.Telemetry.Record(ctx, "layout.load.unknown_version", map[string]any{
			"version": envelope.Version,
		})
		return nil
	}
	for pageID, page := range envelope.Layouts {
		state := &pageState{
			widgets:      make([]WidgetConfig, 0, len(page.Widgets)),
			lastModified: page.LastModified,
		}
		for _, w := range page.Widgets {
			state.widgets = append(state.widgets, w.Clone())
		}
		sortByOrder(state.widgets)
		renumber(state.widgets)
		s.layouts[pageID] = state
	}
	return nil
}

// Catalog exposes the widget library backing this store.
func (s *Store) Catalog() *Catalog {
	return s.opts.Catalog
}

// GetLayout returns the page's widgets sorted by Order. Pages without a
// saved layout yield their defaults (empty for unknown page ids) without
// creating state.
func (s *Store) GetLayout(pageID string) []WidgetConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.layouts[pageID]; ok {
		return cloneWidgets(state.widgets)
	}
	return cloneWidgets(s.defaultsFor(pageID))
}

// Pages lists page ids with saved layouts plus the default pages, sorted.
func (s *Store) Pages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[string]struct{}{}
	for pageID := range s.layouts {
		seen[pageID] = struct{}{}
	}
	for pageID := range s.opts.Defaults {
		seen[pageID] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for pageID := range seen {
		out = append(out, pageID)
	}
	sort.Strings(out)
	return out
}

// SetLayout replaces the page's widgets wholesale.
func (s *Store) SetLayout(ctx context.Context, pageID string, widgets []WidgetConfig) error {
	return s.mutate(ctx, pageID, "set", WidgetConfig{}, func(state *pageState) error {
		state.widgets = cloneWidgets(widgets)
		return nil
	})
}

// AddWidget appends a widget to the page. The widget's settings are
// validated against its template schema when the type is known.
func (s *Store) AddWidget(ctx context.Context, pageID string, widget WidgetConfig) error {
	if widget.ID == "" {
		return errInvalidWidget
	}
	if widget.Size == "" {
		widget.Size = SizeMedium
	}
	if !widget.Size.Valid() {
		return fmt.Errorf("layout: invalid widget size %q", widget.Size)
	}
	if err := s.validateSettings(widget.Type, widget.Settings); err != nil {
		return err
	}
	return s.mutate(ctx, pageID, "add", widget, func(state *pageState) error {
		for _, w := range state.widgets {
			if w.ID == widget.ID {
				return fmt.Errorf("layout: widget %s already exists on page %s", widget.ID, pageID)
			}
		}
		added := widget.Clone()
		added.Order = nextOrder(state.widgets)
		state.widgets = append(state.widgets, added)
		return nil
	})
}

// AddFromTemplate instantiates a catalog template and appends it.
func (s *Store) AddFromTemplate(ctx context.Context, pageID, widgetType string) (WidgetConfig, error) {
	widget, err := s.opts.Catalog.Instantiate(widgetType, s.opts.Clock())
	if err != nil {
		return WidgetConfig{}, err
	}
	if err := s.AddWidget(ctx, pageID, widget); err != nil {
		return WidgetConfig{}, err
	}
	return widget, nil
}

// RemoveWidget deletes a widget from the page. Removing an id that is not
// present is a no-op.
func (s *Store) RemoveWidget(ctx context.Context, pageID, widgetID string) error {
	if widgetID == "" {
		return errInvalidWidget
	}
	return s.mutate(ctx, pageID, "remove", WidgetConfig{ID: widgetID}, func(state *pageState) error {
		kept := state.widgets[:0]
		for _, w := range state.widgets {
			if w.ID != widgetID {
				kept = append(kept, w)
			}
		}
		state.widgets = kept
		return nil
	})
}

// UpdateWidget applies a partial update to one widget.
func (s *Store) UpdateWidget(ctx context.Context, pageID, widgetID string, patch WidgetPatch) error {
	if widgetID == "" {
		return errInvalidWidget
	}
	if patch.Size != nil && !patch.Size.Valid() {
		return fmt.Errorf("layout: invalid widget size %q", *patch.Size)
	}
	return s.mutate(ctx, pageID, "update", WidgetConfig{ID: widgetID}, func(state *pageState) error {
		for i := range state.widgets {
			if state.widgets[i].ID != widgetID {
				continue
			}
			if patch.Settings != nil {
				if err := s.validateSettings(state.widgets[i].Type, *patch.Settings); err != nil {
					return err
				}
			}
			applyPatch(&state.widgets[i], patch)
			return nil
		}
		return fmt.Errorf("layout: widget %s not found on page %s", widgetID, pageID)
	})
}

// ToggleWidget flips a widget's visibility.
func (s *Store) ToggleWidget(ctx context.Context, pageID, widgetID string) error {
	if widgetID == "" {
		return errInvalidWidget
	}
	return s.mutate(ctx, pageID, "toggle", WidgetConfig{ID: widgetID}, func(state *pageState) error {
		for i := range state.widgets {
			if state.widgets[i].ID == widgetID {
				state.widgets[i].Visible = !state.widgets[i].Visible
				return nil
			}
		}
		return fmt.Errorf("layout: widget %s not found on page %s", widgetID, pageID)
	})
}

// ResizeWidget changes a widget's grid size.
func (s *Store) ResizeWidget(ctx context.Context, pageID, widgetID string, size Size) error {
	if !size.Valid() {
		return fmt.Errorf("layout: invalid widget size %q", size)
	}
	return s.UpdateWidget(ctx, pageID, widgetID, WidgetPatch{Size: &size})
}

// ReorderWidgets replaces the page's widget ordering with the given
// sequence. Order fields are reassigned from slice positions.
func (s *Store) ReorderWidgets(ctx context.Context, pageID string, widgets []WidgetConfig) error {
	return s.mutate(ctx, pageID, "reorder", WidgetConfig{}, func(state *pageState) error {
		state.widgets = cloneWidgets(widgets)
		for i := range state.widgets {
			state.widgets[i].Order = i
		}
		return nil
	})
}

// ReorderByIDs moves the named widgets to the front in the given order.
// Unknown ids are ignored and unnamed widgets keep their relative order.
func (s *Store) ReorderByIDs(ctx context.Context, pageID string, widgetIDs []string) error {
	return s.mutate(ctx, pageID, "reorder", WidgetConfig{}, func(state *pageState) error {
		state.widgets = applyOrderOverride(state.widgets, widgetIDs)
		return nil
	})
}

// ResetLayout restores the page to its built-in defaults. Unknown page
// ids reset to an empty layout.
func (s *Store) ResetLayout(ctx context.Context, pageID string) error {
	return s.mutate(ctx, pageID, "reset", WidgetConfig{}, func(state *pageState) error {
		state.widgets = cloneWidgets(s.defaultsFor(pageID))
		return nil
	})
}

// SeedLayout overwrites the page's widgets without telemetry noise,
// used when preferences cascade website-type defaults.
func (s *Store) SeedLayout(ctx context.Context, pageID string, widgets []WidgetConfig) error {
	return s.mutate(ctx, pageID, "seed", WidgetConfig{}, func(state *pageState) error {
		state.widgets = cloneWidgets(widgets)
		return nil
	})
}

// mutate runs fn against the page state (created from defaults when
// absent), renormalizes order, persists, and fires hooks.
func (s *Store) mutate(ctx context.Context, pageID, reason string, widget WidgetConfig, fn func(*pageState) error) error {
	if pageID == "" {
		return errInvalidPage
	}

	s.mu.Lock()
	state, ok := s.layouts[pageID]
	if !ok {
		state = &pageState{widgets: cloneWidgets(s.defaultsFor(pageID))}
		s.layouts[pageID] = state
	}
	prev := cloneWidgets(state.widgets)
	if err := fn(state); err != nil {
		state.widgets = prev
		s.mu.Unlock()
		return err
	}
	sortByOrder(state.widgets)
	renumber(state.widgets)
	state.lastModified = s.opts.Clock()
	snapshot, err := s.snapshotLocked()
	if err != nil {
		state.widgets = prev
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	if err := s.opts.Storage.Save(ctx, StorageKey, snapshot); err != nil {
		return fmt.Errorf("layout: persist layouts: %w", err)
	}

	event := WidgetEvent{PageID: pageID, Widget: widget, Reason: reason}
	if err := s.opts.RefreshHook.WidgetUpdated(ctx, event); err != nil {
		return err
	}
	s.opts.Telemetry.Record(ctx, "layout.widget."+reason, map[string]any{
		"page_id":   pageID,
		"widget_id": widget.ID,
	})
	s.opts.Activity.EmitWidget(ctx, reason, pageID, widget.ID, nil)
	return nil
}

func (s *Store) snapshotLocked() ([]byte, error) {
	envelope := persistedLayouts{
		Version: layoutsVersion,
		Layouts: make(map[string]persistedPage, len(s.layouts)),
	}
	for pageID, state := range s.layouts {
		envelope.Layouts[pageID] = persistedPage{
			Widgets:      cloneWidgets(state.widgets),
			LastModified: state.lastModified,
		}
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("layout: encode layouts: %w", err)
	}
	return data, nil
}

func (s *Store) defaultsFor(pageID string) []WidgetConfig {
	return s.opts.Defaults[pageID]
}

func (s *Store) validateSettings(widgetType string, settings map[string]any) error {
	if s.opts.Validator == nil || s.opts.Catalog == nil || widgetType == "" {
		return nil
	}
	tpl, ok := s.opts.Catalog.Template(widgetType)
	if !ok {
		return nil
	}
	return s.opts.Validator.Validate(tpl, settings)
}

func applyPatch(w *WidgetConfig, patch WidgetPatch) {
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Description != nil {
		w.Description = *patch.Description
	}
	if patch.Size != nil {
		w.Size = *patch.Size
	}
	if patch.Visible != nil {
		w.Visible = *patch.Visible
	}
	if patch.Settings != nil {
		settings := make(map[string]any, len(*patch.Settings))
		for key, value := range *patch.Settings {
			settings[key] = value
		}
		w.Settings = settings
	}
}

func cloneWidgets(widgets []WidgetConfig) []WidgetConfig {
	out := make([]WidgetConfig, len(widgets))
	for i, w := range widgets {
		out[i] = w.Clone()
	}
	return out
}

func sortByOrder(widgets []WidgetConfig) {
	sort.SliceStable(widgets, func(i, j int) bool {
		return widgets[i].Order < widgets[j].Order
	})
}

func renumber(widgets []WidgetConfig) {
	for i := range widgets {
		widgets[i].Order = i
	}
}

type noopRefreshHook struct{}

func (noopRefreshHook) WidgetUpdated(context.Context, WidgetEvent) error { return nil }

type noopActivityEmitter struct{}

func (noopActivityEmitter) EmitWidget(context.Context, string, string, string, map[string]any) {}
