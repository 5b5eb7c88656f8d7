package commands

import (
	"context"
	"testing"

	layout "github.com/goliatone/go-insights/components/layout"
	"github.com/goliatone/go-insights/components/preferences"
)

type stubService struct {
	addCalls       int
	templateCalls  int
	removeCalls    int
	reorderCalls   int
	updateCalls    int
	toggleCalls    int
	resetCalls     int
	lastPageID     string
	lastWidgetType string
	lastWidgetIDs  []string
}

func (s *stubService) AddWidget(_ context.Context, pageID string, _ layout.WidgetConfig) error {
	s.addCalls++
	s.lastPageID = pageID
	return nil
}

func (s *stubService) AddFromTemplate(_ context.Context, pageID, widgetType string) (layout.WidgetConfig, error) {
	s.templateCalls++
	s.lastPageID = pageID
	s.lastWidgetType = widgetType
	return layout.WidgetConfig{ID: widgetType + "-1", Type: widgetType}, nil
}

func (s *stubService) RemoveWidget(_ context.Context, pageID, _ string) error {
	s.removeCalls++
	s.lastPageID = pageID
	return nil
}

func (s *stubService) ReorderByIDs(_ context.Context, pageID string, widgetIDs []string) error {
	s.reorderCalls++
	s.lastPageID = pageID
	s.lastWidgetIDs = widgetIDs
	return nil
}

func (s *stubService) UpdateWidget(_ context.Context, pageID, _ string, _ layout.WidgetPatch) error {
	s.updateCalls++
	s.lastPageID = pageID
	return nil
}

func (s *stubService) ToggleWidget(_ context.Context, pageID, _ string) error {
	s.toggleCalls++
	s.lastPageID = pageID
	return nil
}

func (s *stubService) ResetLayout(_ context.Context, pageID string) error {
	s.resetCalls++
	s.lastPageID = pageID
	return nil
}

type stubTelemetry struct {
	calls  int
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.calls++
	s.events = append(s.events, event)
}

func TestAddWidgetCommandDirect(t *testing.T) {
	service := &stubService{}
	cmd := NewAddWidgetCommand(service, nil)
	err := cmd.Execute(context.Background(), AddWidgetInput{
		PageID: layout.PageOverview,
		Widget: layout.WidgetConfig{ID: "w1", Type: "geo-map"},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.addCalls != 1 || service.templateCalls != 0 {
		t.Fatalf("expected direct add, got add=%d template=%d", service.addCalls, service.templateCalls)
	}
}

func TestAddWidgetCommandFromTemplate(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewAddWidgetCommand(service, telemetry)
	err := cmd.Execute(context.Background(), AddWidgetInput{
		PageID:     layout.PageOverview,
		WidgetType: "geo-map",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.templateCalls != 1 || service.lastWidgetType != "geo-map" {
		t.Fatalf("expected template instantiation, got %d (%s)", service.templateCalls, service.lastWidgetType)
	}
	if telemetry.calls != 1 {
		t.Fatalf("expected telemetry record, got %d", telemetry.calls)
	}
}

func TestRemoveWidgetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRemoveWidgetCommand(service, nil)
	err := cmd.Execute(context.Background(), RemoveWidgetInput{PageID: layout.PageOverview, WidgetID: "w1"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.removeCalls != 1 {
		t.Fatal("expected remove call")
	}
}

func TestReorderWidgetsCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewReorderWidgetsCommand(service, nil)
	err := cmd.Execute(context.Background(), ReorderWidgetsInput{
		PageID:    layout.PageOverview,
		WidgetIDs: []string{"w2", "w1"},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.reorderCalls != 1 || len(service.lastWidgetIDs) != 2 {
		t.Fatal("expected reorder call with ids")
	}
}

func TestUpdateAndToggleCommands(t *testing.T) {
	service := &stubService{}
	update := NewUpdateWidgetCommand(service, nil)
	title := "New"
	err := update.Execute(context.Background(), UpdateWidgetInput{
		PageID:   layout.PageOverview,
		WidgetID: "w1",
		Patch:    layout.WidgetPatch{Title: &title},
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	toggle := NewToggleWidgetCommand(service, nil)
	if err := toggle.Execute(context.Background(), ToggleWidgetInput{PageID: layout.PageOverview, WidgetID: "w1"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.updateCalls != 1 || service.toggleCalls != 1 {
		t.Fatalf("expected update+toggle, got %d/%d", service.updateCalls, service.toggleCalls)
	}
}

func TestResetLayoutCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewResetLayoutCommand(service, nil)
	if err := cmd.Execute(context.Background(), ResetLayoutInput{PageID: "audience"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.resetCalls != 1 || service.lastPageID != "audience" {
		t.Fatal("expected reset call")
	}
}

type stubWebsiteTypeService struct {
	calls int
	last  preferences.WebsiteType
}

func (s *stubWebsiteTypeService) SetWebsiteType(_ context.Context, websiteType preferences.WebsiteType) error {
	s.calls++
	s.last = websiteType
	return nil
}

func TestSetWebsiteTypeCommand(t *testing.T) {
	service := &stubWebsiteTypeService{}
	cmd := NewSetWebsiteTypeCommand(service, nil)
	if err := cmd.Execute(context.Background(), SetWebsiteTypeInput{WebsiteType: "ecommerce"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.calls != 1 || service.last != preferences.WebsiteTypeEcommerce {
		t.Fatalf("expected ecommerce applied, got %q", service.last)
	}
	if err := cmd.Execute(context.Background(), SetWebsiteTypeInput{WebsiteType: "spaceship"}); err == nil {
		t.Fatal("expected error for unknown website type")
	}
}

func TestCommandsRequireService(t *testing.T) {
	if err := NewAddWidgetCommand(nil, nil).Execute(context.Background(), AddWidgetInput{}); err == nil {
		t.Fatal("expected error without service")
	}
	if err := NewResetLayoutCommand(nil, nil).Execute(context.Background(), ResetLayoutInput{}); err == nil {
		t.Fatal("expected error without service")
	}
}
