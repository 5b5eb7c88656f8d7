package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/layout/commands"
	"github.com/goliatone/go-insights/components/layout/queries"
)

type stubCommander[T any] struct {
	last  T
	calls int
	err   error
}

func (s *stubCommander[T]) Execute(_ context.Context, msg T) error {
	s.last = msg
	s.calls++
	return s.err
}

type stubQuerier[T any, R any] struct {
	last   T
	result R
	err    error
}

func (s *stubQuerier[T, R]) Query(_ context.Context, msg T) (R, error) {
	s.last = msg
	return s.result, s.err
}

func TestHandleLayoutDefaultsToOverview(t *testing.T) {
	query := &stubQuerier[queries.LayoutRequest, layout.LayoutPayload]{
		result: layout.LayoutPayload{PageID: layout.PageOverview},
	}
	api := &Handlers{Layout: query}
	req := httptest.NewRequest(http.MethodGet, "/layout", nil)
	rec := httptest.NewRecorder()
	api.HandleLayout(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if query.last.PageID != layout.PageOverview {
		t.Fatalf("expected overview default, got %q", query.last.PageID)
	}
	var payload layout.LayoutPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.PageID != layout.PageOverview {
		t.Fatalf("unexpected payload page %q", payload.PageID)
	}
}

func TestHandleLayoutUsesPageParam(t *testing.T) {
	query := &stubQuerier[queries.LayoutRequest, layout.LayoutPayload]{}
	api := &Handlers{Layout: query}
	req := httptest.NewRequest(http.MethodGet, "/layout?page=reports", nil)
	rec := httptest.NewRecorder()
	api.HandleLayout(rec, req)
	if query.last.PageID != "reports" {
		t.Fatalf("expected reports, got %q", query.last.PageID)
	}
}

func TestHandleCatalogForwardsFilter(t *testing.T) {
	query := &stubQuerier[queries.CatalogRequest, queries.CatalogResult]{}
	api := &Handlers{Catalog: query}
	req := httptest.NewRequest(http.MethodGet, "/catalog?q=revenue&category=ecommerce&locale=ar", nil)
	rec := httptest.NewRecorder()
	api.HandleCatalog(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	filter := query.last.Filter
	if filter.Query != "revenue" || filter.Category != "ecommerce" || filter.Locale != "ar" {
		t.Fatalf("filter not forwarded: %+v", filter)
	}
}

func TestHandleAddWidget(t *testing.T) {
	add := &stubCommander[commands.AddWidgetInput]{}
	api := &Handlers{Add: add}
	payload := commands.AddWidgetInput{PageID: layout.PageOverview, WidgetType: "geo-map"}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if add.last.WidgetType != "geo-map" {
		t.Fatalf("expected widget type propagation, got %+v", add.last)
	}
}

func TestHandleAddWidgetRejectsBadJSON(t *testing.T) {
	add := &stubCommander[commands.AddWidgetInput]{}
	api := &Handlers{Add: add}
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if add.calls != 0 {
		t.Fatal("command should not run on malformed payload")
	}
}

func TestHandleAddWidgetReportsCommandFailure(t *testing.T) {
	add := &stubCommander[commands.AddWidgetInput]{err: errors.New("layout: duplicate widget id")}
	api := &Handlers{Add: add}
	buf, _ := json.Marshal(commands.AddWidgetInput{PageID: layout.PageOverview})
	req := httptest.NewRequest(http.MethodPost, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleAddWidget(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestHandleRemoveWidget(t *testing.T) {
	remove := &stubCommander[commands.RemoveWidgetInput]{}
	api := &Handlers{Remove: remove}
	req := httptest.NewRequest(http.MethodDelete, "/widgets/visitors-kpi", nil)
	rec := httptest.NewRecorder()
	api.HandleRemoveWidget(rec, req, layout.PageOverview, "visitors-kpi")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if remove.last.WidgetID != "visitors-kpi" || remove.last.PageID != layout.PageOverview {
		t.Fatalf("expected id propagation, got %+v", remove.last)
	}
}

func TestHandleUpdateWidget(t *testing.T) {
	update := &stubCommander[commands.UpdateWidgetInput]{}
	api := &Handlers{Update: update}
	size := layout.SizeLarge
	payload := commands.UpdateWidgetInput{
		PageID:   layout.PageOverview,
		WidgetID: "traffic-trend",
		Patch:    layout.WidgetPatch{Size: &size},
	}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPatch, "/widgets", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleUpdateWidget(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if update.last.Patch.Size == nil || *update.last.Patch.Size != layout.SizeLarge {
		t.Fatalf("expected size patch, got %+v", update.last.Patch)
	}
}

func TestHandleToggleWidget(t *testing.T) {
	toggle := &stubCommander[commands.ToggleWidgetInput]{}
	api := &Handlers{Toggle: toggle}
	buf, _ := json.Marshal(commands.ToggleWidgetInput{PageID: layout.PageOverview, WidgetID: "top-pages"})
	req := httptest.NewRequest(http.MethodPost, "/widgets/toggle", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleToggleWidget(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if toggle.last.WidgetID != "top-pages" {
		t.Fatalf("expected widget id propagation, got %+v", toggle.last)
	}
}

func TestHandleReorderWidgets(t *testing.T) {
	reorder := &stubCommander[commands.ReorderWidgetsInput]{}
	api := &Handlers{Reorder: reorder}
	payload := commands.ReorderWidgetsInput{PageID: layout.PageOverview, WidgetIDs: []string{"w2", "w1"}}
	buf, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/widgets/reorder", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleReorderWidgets(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(reorder.last.WidgetIDs) != 2 {
		t.Fatalf("expected ids propagation, got %+v", reorder.last)
	}
}

func TestHandleResetLayout(t *testing.T) {
	reset := &stubCommander[commands.ResetLayoutInput]{}
	api := &Handlers{Reset: reset}
	buf, _ := json.Marshal(commands.ResetLayoutInput{PageID: layout.PageOverview})
	req := httptest.NewRequest(http.MethodPost, "/layout/reset", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleResetLayout(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if reset.last.PageID != layout.PageOverview {
		t.Fatalf("expected page propagation, got %+v", reset.last)
	}
}

func TestHandleSetWebsiteType(t *testing.T) {
	websiteType := &stubCommander[commands.SetWebsiteTypeInput]{}
	api := &Handlers{WebsiteType: websiteType}
	buf, _ := json.Marshal(commands.SetWebsiteTypeInput{WebsiteType: "saas"})
	req := httptest.NewRequest(http.MethodPut, "/preferences/website-type", bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	api.HandleSetWebsiteType(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if websiteType.last.WebsiteType != "saas" {
		t.Fatalf("expected type propagation, got %+v", websiteType.last)
	}
}
