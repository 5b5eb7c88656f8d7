package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	layout "github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/pkg/storage"
)

// StorageKey is where the store persists the preference document.
const StorageKey = "insights.preferences"

// LayoutSeeder receives widget defaults when the website type changes.
// The cascade is one-way: later layout edits never touch preferences.
type LayoutSeeder interface {
	SeedLayout(ctx context.Context, pageID string, widgets []layout.WidgetConfig) error
}

// Options configures the preference Store.
type Options struct {
	Storage storage.Store
	Seeder  LayoutSeeder
	// PageID is the layout page reseeded on website type changes.
	// Defaults to layout.PageOverview.
	PageID    string
	Telemetry Telemetry
}

// Store keeps the account preference document with write-through
// persistence.
type Store struct {
	opts Options

	mu    sync.RWMutex
	prefs Preferences
}

// NewStore builds a Store, loading any persisted preferences. A corrupt
// or missing document falls back to the defaults.
func NewStore(ctx context.Context, opts Options) (*Store, error) {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.PageID == "" {
		opts.PageID = layout.PageOverview
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)

	s := &Store{opts: opts, prefs: DefaultPreferences()}
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
		return fmt.Errorf("preferences: load: %w", err)
	}
	var prefs Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		s.opts.Telemetry.Record(ctx, "preferences.load.corrupt", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if !prefs.WebsiteType.Valid() {
		prefs.WebsiteType = WebsiteTypeEcommerce
	}
	if !prefs.Theme.Valid() {
		prefs.Theme = ThemeSystem
	}
	if !prefs.DefaultDateRange.Valid() {
		prefs.DefaultDateRange = DateRange7Days
	}
	s.prefs = prefs
	return nil
}

// Preferences returns a copy of the current document.
func (s *Store) Preferences() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePreferences(s.prefs)
}

// SetWebsiteType switches the website type. The change is destructive:
// the sidebar is replaced with the type's defaults and the layout page is
// reseeded with the type's widgets, discarding prior customization.
func (s *Store) SetWebsiteType(ctx context.Context, t WebsiteType) error {
	if !t.Valid() {
		return fmt.Errorf("preferences: unknown website type %q", t)
	}
	err := s.update(ctx, func(prefs *Preferences) {
		prefs.WebsiteType = t
		prefs.Sidebar = SidebarSections{
			Hidden:      DefaultSidebarForType(t),
			CustomOrder: []string{},
		}
	})
	if err != nil {
		return err
	}
	if s.opts.Seeder != nil {
		if err := s.opts.Seeder.SeedLayout(ctx, s.opts.PageID, DefaultWidgetsForType(t)); err != nil {
			return fmt.Errorf("preferences: seed layout for %s: %w", t, err)
		}
	}
	s.opts.Telemetry.Record(ctx, "preferences.website_type", map[string]any{
		"website_type": string(t),
	})
	return nil
}

// SetTheme stores the UI theme.
func (s *Store) SetTheme(ctx context.Context, theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("preferences: unknown theme %q", theme)
	}
	return s.update(ctx, func(prefs *Preferences) {
		prefs.Theme = theme
	})
}

// SetDateRange stores the default reporting window.
func (s *Store) SetDateRange(ctx context.Context, r DateRange) error {
	if !r.Valid() {
		return fmt.Errorf("preferences: unknown date range %q", r)
	}
	return s.update(ctx, func(prefs *Preferences) {
		prefs.DefaultDateRange = r
	})
}

// UpdateSidebar applies a partial sidebar update.
func (s *Store) UpdateSidebar(ctx context.Context, patch SidebarPatch) error {
	return s.update(ctx, func(prefs *Preferences) {
		if patch.Hidden != nil {
			prefs.Sidebar.Hidden = append([]string{}, (*patch.Hidden)...)
		}
		if patch.CustomOrder != nil {
			prefs.Sidebar.CustomOrder = append([]string{}, (*patch.CustomOrder)...)
		}
	})
}

// ResetToDefaults restores the sidebar and layout for the current
// website type, keeping theme and date range.
func (s *Store) ResetToDefaults(ctx context.Context) error {
	s.mu.RLock()
	t := s.prefs.WebsiteType
	s.mu.RUnlock()
	return s.SetWebsiteType(ctx, t)
}

func (s *Store) update(ctx context.Context, fn func(*Preferences)) error {
	s.mu.Lock()
	prev := s.prefs
	next := clonePreferences(s.prefs)
	fn(&next)
	s.prefs = next
	data, err := json.Marshal(next)
	if err != nil {
		s.prefs = prev
		s.mu.Unlock()
		return fmt.Errorf("preferences: encode: %w", err)
	}
	s.mu.Unlock()

	if err := s.opts.Storage.Save(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("preferences: persist: %w", err)
	}
	return nil
}

func clonePreferences(p Preferences) Preferences {
	p.Sidebar.Hidden = append([]string{}, p.Sidebar.Hidden...)
	p.Sidebar.CustomOrder = append([]string{}, p.Sidebar.CustomOrder...)
	return p
}
