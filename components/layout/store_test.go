package layout

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-insights/pkg/storage"
)

type collectingHook struct {
	events []WidgetEvent
}

func (h *collectingHook) WidgetUpdated(_ context.Context, event WidgetEvent) error {
	h.events = append(h.events, event)
	return nil
}

type collectingEmitter struct {
	verbs   []string
	widgets []string
}

func (e *collectingEmitter) EmitWidget(_ context.Context, verb, _, widgetID string, _ map[string]any) {
	e.verbs = append(e.verbs, verb)
	e.widgets = append(e.widgets, widgetID)
}

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), opts)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return store
}

func TestGetLayoutReturnsOverviewDefaults(t *testing.T) {
	store := newTestStore(t, Options{})
	widgets := store.GetLayout(PageOverview)
	if len(widgets) != 8 {
		t.Fatalf("expected 8 default widgets, got %d", len(widgets))
	}
	for i, w := range widgets {
		if w.Order != i {
			t.Fatalf("expected dense order, widget %s has order %d at index %d", w.ID, w.Order, i)
		}
	}
	if widgets[0].ID != "visitors-kpi" || widgets[7].ID != "sources-chart" {
		t.Fatalf("unexpected default widget order: %s .. %s", widgets[0].ID, widgets[7].ID)
	}
}

func TestGetLayoutUnknownPageIsEmpty(t *testing.T) {
	store := newTestStore(t, Options{})
	if widgets := store.GetLayout("audience"); len(widgets) != 0 {
		t.Fatalf("expected empty layout for unknown page, got %d widgets", len(widgets))
	}
}

func TestGetLayoutDoesNotCreateState(t *testing.T) {
	store := newTestStore(t, Options{})
	_ = store.GetLayout("audience")
	pages := store.Pages()
	if len(pages) != 1 || pages[0] != PageOverview {
		t.Fatalf("expected only default page, got %v", pages)
	}
}

func TestGetLayoutReturnsCopies(t *testing.T) {
	store := newTestStore(t, Options{})
	first := store.GetLayout(PageOverview)
	first[0].Title = "mutated"
	if store.GetLayout(PageOverview)[0].Title == "mutated" {
		t.Fatal("GetLayout leaked internal state")
	}
}

func TestRemoveWidgetRenumbersOrder(t *testing.T) {
	store := newTestStore(t, Options{})
	if err := store.RemoveWidget(context.Background(), PageOverview, "bounce-kpi"); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}
	widgets := store.GetLayout(PageOverview)
	if len(widgets) != 7 {
		t.Fatalf("expected 7 widgets after remove, got %d", len(widgets))
	}
	for i, w := range widgets {
		if w.ID == "bounce-kpi" {
			t.Fatal("removed widget still present")
		}
		if w.Order != i {
			t.Fatalf("expected dense order after remove, widget %s has order %d at index %d", w.ID, w.Order, i)
		}
	}
}

func TestRemoveUnknownWidgetIsNoop(t *testing.T) {
	store := newTestStore(t, Options{})
	if err := store.RemoveWidget(context.Background(), PageOverview, "nope"); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}
	if len(store.GetLayout(PageOverview)) != 8 {
		t.Fatal("no-op remove changed the layout")
	}
}

func TestMutationSeedsUnknownPageFromDefaults(t *testing.T) {
	store := newTestStore(t, Options{})
	err := store.AddWidget(context.Background(), "audience", WidgetConfig{
		ID: "geo-1", Type: "geo-map", Title: "Country Map", Size: SizeLarge, Visible: true,
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	widgets := store.GetLayout("audience")
	if len(widgets) != 1 || widgets[0].ID != "geo-1" || widgets[0].Order != 0 {
		t.Fatalf("unexpected layout after add on fresh page: %#v", widgets)
	}
}

func TestAddWidgetAppendsAtEnd(t *testing.T) {
	store := newTestStore(t, Options{})
	err := store.AddWidget(context.Background(), PageOverview, WidgetConfig{
		ID: "realtime-1", Type: "realtime-visitors", Title: "Visitors Now", Size: SizeSmall, Visible: true,
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	widgets := store.GetLayout(PageOverview)
	last := widgets[len(widgets)-1]
	if last.ID != "realtime-1" || last.Order != 8 {
		t.Fatalf("expected new widget appended with order 8, got %#v", last)
	}
}

func TestAddWidgetRejectsDuplicateID(t *testing.T) {
	store := newTestStore(t, Options{})
	err := store.AddWidget(context.Background(), PageOverview, WidgetConfig{
		ID: "visitors-kpi", Type: "kpi-visitors", Title: "Dup", Size: SizeSmall,
	})
	if err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

func TestAddWidgetValidatesSettings(t *testing.T) {
	store := newTestStore(t, Options{})
	err := store.AddWidget(context.Background(), PageOverview, WidgetConfig{
		ID:       "rev-1",
		Type:     "revenue-kpi",
		Title:    "Total Revenue",
		Size:     SizeSmall,
		Settings: map[string]any{"comparison": "bogus"},
	})
	if err == nil {
		t.Fatal("expected settings validation to fail for bad enum value")
	}
	err = store.AddWidget(context.Background(), PageOverview, WidgetConfig{
		ID:       "rev-1",
		Type:     "revenue-kpi",
		Title:    "Total Revenue",
		Size:     SizeSmall,
		Settings: map[string]any{"comparison": "previous_period", "goal": 1000},
	})
	if err != nil {
		t.Fatalf("expected valid settings to pass, got %v", err)
	}
}

func TestResetLayoutRestoresDefaultsAfterClear(t *testing.T) {
	store := newTestStore(t, Options{})
	ctx := context.Background()
	for _, w := range store.GetLayout(PageOverview) {
		if err := store.RemoveWidget(ctx, PageOverview, w.ID); err != nil {
			t.Fatalf("RemoveWidget(%s) returned error: %v", w.ID, err)
		}
	}
	if got := store.GetLayout(PageOverview); len(got) != 0 {
		t.Fatalf("expected empty page after clearing, got %d widgets", len(got))
	}
	if err := store.ResetLayout(ctx, PageOverview); err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	if got := store.GetLayout(PageOverview); len(got) != 8 {
		t.Fatalf("expected defaults restored, got %d widgets", len(got))
	}
}

func TestResetUnknownPageYieldsEmpty(t *testing.T) {
	store := newTestStore(t, Options{})
	ctx := context.Background()
	err := store.AddWidget(ctx, "content", WidgetConfig{ID: "a-1", Type: "top-articles", Title: "Top Articles", Size: SizeMedium})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := store.ResetLayout(ctx, "content"); err != nil {
		t.Fatalf("ResetLayout returned error: %v", err)
	}
	if got := store.GetLayout("content"); len(got) != 0 {
		t.Fatalf("expected empty layout after reset of unknown page, got %d", len(got))
	}
}

func TestUpdateWidgetAppliesPatch(t *testing.T) {
	store := newTestStore(t, Options{})
	title := "Unique Visitors"
	size := SizeMedium
	visible := false
	err := store.UpdateWidget(context.Background(), PageOverview, "visitors-kpi", WidgetPatch{
		Title:   &title,
		Size:    &size,
		Visible: &visible,
	})
	if err != nil {
		t.Fatalf("UpdateWidget returned error: %v", err)
	}
	for _, w := range store.GetLayout(PageOverview) {
		if w.ID != "visitors-kpi" {
			continue
		}
		if w.Title != title || w.Size != size || w.Visible {
			t.Fatalf("patch not applied: %#v", w)
		}
		return
	}
	t.Fatal("widget not found after update")
}

func TestUpdateWidgetUnknownIDFails(t *testing.T) {
	store := newTestStore(t, Options{})
	title := "x"
	err := store.UpdateWidget(context.Background(), PageOverview, "missing", WidgetPatch{Title: &title})
	if err == nil {
		t.Fatal("expected error for unknown widget id")
	}
	// Failed mutation must not leave partial state behind.
	if len(store.GetLayout(PageOverview)) != 8 {
		t.Fatal("failed update changed the layout")
	}
}

func TestToggleWidgetFlipsVisibility(t *testing.T) {
	store := newTestStore(t, Options{})
	ctx := context.Background()
	if err := store.ToggleWidget(ctx, PageOverview, "top-pages"); err != nil {
		t.Fatalf("ToggleWidget returned error: %v", err)
	}
	for _, w := range store.GetLayout(PageOverview) {
		if w.ID == "top-pages" && w.Visible {
			t.Fatal("expected widget hidden after toggle")
		}
	}
	if err := store.ToggleWidget(ctx, PageOverview, "top-pages"); err != nil {
		t.Fatalf("ToggleWidget returned error: %v", err)
	}
	for _, w := range store.GetLayout(PageOverview) {
		if w.ID == "top-pages" && !w.Visible {
			t.Fatal("expected widget visible after second toggle")
		}
	}
}

func TestReorderByIDsMovesNamedToFront(t *testing.T) {
	store := newTestStore(t, Options{})
	err := store.ReorderByIDs(context.Background(), PageOverview, []string{"sources-chart", "traffic-trend", "ghost"})
	if err != nil {
		t.Fatalf("ReorderByIDs returned error: %v", err)
	}
	widgets := store.GetLayout(PageOverview)
	if widgets[0].ID != "sources-chart" || widgets[1].ID != "traffic-trend" {
		t.Fatalf("expected named widgets first, got %s, %s", widgets[0].ID, widgets[1].ID)
	}
	// Remaining widgets keep their relative order.
	if widgets[2].ID != "visitors-kpi" || widgets[7].ID != "top-pages" {
		t.Fatalf("expected leftovers in original order, got %s .. %s", widgets[2].ID, widgets[7].ID)
	}
	for i, w := range widgets {
		if w.Order != i {
			t.Fatalf("expected dense order after reorder, got %d at index %d", w.Order, i)
		}
	}
}

func TestMutationsEmitActivity(t *testing.T) {
	emitter := &collectingEmitter{}
	store := newTestStore(t, Options{Activity: emitter})
	ctx := context.Background()
	err := store.AddWidget(ctx, PageOverview, WidgetConfig{
		ID: "realtime-1", Type: "realtime-visitors", Title: "Visitors Now", Size: SizeSmall, Visible: true,
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if err := store.RemoveWidget(ctx, PageOverview, "realtime-1"); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}
	if len(emitter.verbs) != 2 || emitter.verbs[0] != "add" || emitter.verbs[1] != "remove" {
		t.Fatalf("unexpected activity verbs: %v", emitter.verbs)
	}
	if emitter.widgets[0] != "realtime-1" {
		t.Fatalf("unexpected activity widget ids: %v", emitter.widgets)
	}
}

func TestAddWidgetAfterReorderAppendsAtEnd(t *testing.T) {
	store := newTestStore(t, Options{})
	ctx := context.Background()
	if err := store.ReorderByIDs(ctx, PageOverview, []string{"sources-chart"}); err != nil {
		t.Fatalf("ReorderByIDs returned error: %v", err)
	}
	err := store.AddWidget(ctx, PageOverview, WidgetConfig{
		ID: "realtime-1", Type: "realtime-visitors", Title: "Visitors Now", Size: SizeSmall, Visible: true,
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	widgets := store.GetLayout(PageOverview)
	if widgets[0].ID != "sources-chart" {
		t.Fatalf("expected reordered widget to stay first, got %s", widgets[0].ID)
	}
	if last := widgets[len(widgets)-1]; last.ID != "realtime-1" || last.Order != 8 {
		t.Fatalf("expected new widget appended with order 8, got %#v", last)
	}
}

func TestSetLayoutRenumbersFromPosition(t *testing.T) {
	store := newTestStore(t, Options{})
	widgets := []WidgetConfig{
		{ID: "b", Type: "kpi-pageviews", Title: "B", Size: SizeSmall, Visible: true, Order: 40},
		{ID: "a", Type: "kpi-visitors", Title: "A", Size: SizeSmall, Visible: true, Order: 7},
	}
	if err := store.SetLayout(context.Background(), "custom", widgets); err != nil {
		t.Fatalf("SetLayout returned error: %v", err)
	}
	got := store.GetLayout("custom")
	if got[0].ID != "a" || got[0].Order != 0 || got[1].ID != "b" || got[1].Order != 1 {
		t.Fatalf("expected sparse orders compacted, got %#v", got)
	}
}

func TestMutationsPersistAcrossStores(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	store := newTestStore(t, Options{Storage: mem})
	if err := store.RemoveWidget(ctx, PageOverview, "duration-kpi"); err != nil {
		t.Fatalf("RemoveWidget returned error: %v", err)
	}

	reloaded := newTestStore(t, Options{Storage: mem})
	widgets := reloaded.GetLayout(PageOverview)
	if len(widgets) != 7 {
		t.Fatalf("expected persisted layout with 7 widgets, got %d", len(widgets))
	}
	for _, w := range widgets {
		if w.ID == "duration-kpi" {
			t.Fatal("removed widget came back after reload")
		}
	}
}

func TestCorruptSnapshotFallsBackToDefaults(t *testing.T) {
	mem := storage.NewMemory()
	ctx := context.Background()
	if err := mem.Save(ctx, StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	store := newTestStore(t, Options{Storage: mem})
	if widgets := store.GetLayout(PageOverview); len(widgets) != 8 {
		t.Fatalf("expected defaults after corrupt snapshot, got %d widgets", len(widgets))
	}
}

func TestMutationEmitsRefreshHookAndClockStamp(t *testing.T) {
	hook := &collectingHook{}
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	store := newTestStore(t, Options{
		RefreshHook: hook,
		Clock:       func() time.Time { return now },
	})
	err := store.AddWidget(context.Background(), PageOverview, WidgetConfig{
		ID: "geo-1", Type: "geo-map", Title: "Country Map", Size: SizeLarge,
	})
	if err != nil {
		t.Fatalf("AddWidget returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected one refresh event, got %d", len(hook.events))
	}
	event := hook.events[0]
	if event.PageID != PageOverview || event.Reason != "add" || event.Widget.ID != "geo-1" {
		t.Fatalf("unexpected event: %#v", event)
	}
}

func TestAddFromTemplateGeneratesTimeBasedID(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	store := newTestStore(t, Options{Clock: func() time.Time { return now }})
	widget, err := store.AddFromTemplate(context.Background(), PageOverview, "geo-map")
	if err != nil {
		t.Fatalf("AddFromTemplate returned error: %v", err)
	}
	want := "geo-map-" + "1771059600000"
	if widget.ID != want {
		t.Fatalf("expected id %s, got %s", want, widget.ID)
	}
	if !widget.Visible || widget.Size != SizeLarge {
		t.Fatalf("expected template defaults applied, got %#v", widget)
	}
}

func TestMutationsRejectEmptyIdentifiers(t *testing.T) {
	store := newTestStore(t, Options{})
	ctx := context.Background()
	if err := store.RemoveWidget(ctx, "", "visitors-kpi"); err == nil {
		t.Fatal("expected error for empty page id")
	}
	if err := store.RemoveWidget(ctx, PageOverview, ""); err == nil {
		t.Fatal("expected error for empty widget id")
	}
}
