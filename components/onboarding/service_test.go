package onboarding

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-insights/components/preferences"
)

type recordingPreferences struct {
	types []preferences.WebsiteType
}

func (p *recordingPreferences) SetWebsiteType(_ context.Context, t preferences.WebsiteType) error {
	p.types = append(p.types, t)
	return nil
}

type failingCounter struct{}

func (failingCounter) SessionCount(context.Context, string) (int64, error) {
	return 0, errors.New("warehouse offline")
}

func TestSaveWebsiteTypeMintsTrackingIDAndCascades(t *testing.T) {
	prefs := &recordingPreferences{}
	svc := NewService(Options{Preferences: prefs})

	account, err := svc.SaveWebsiteType(context.Background(), "acct-1", preferences.WebsiteTypeBlog, "https://blog.example")
	if err != nil {
		t.Fatalf("save website type: %v", err)
	}
	if account.WebsiteType != preferences.WebsiteTypeBlog {
		t.Fatalf("expected blog, got %s", account.WebsiteType)
	}
	if account.WebsiteURL != "https://blog.example" {
		t.Fatalf("unexpected url %q", account.WebsiteURL)
	}
	if !strings.HasPrefix(account.TrackingID, "trk_") {
		t.Fatalf("tracking id missing prefix: %q", account.TrackingID)
	}
	if len(prefs.types) != 1 || prefs.types[0] != preferences.WebsiteTypeBlog {
		t.Fatalf("expected cascade call, got %v", prefs.types)
	}
}

func TestSaveWebsiteTypeRejectsUnknownType(t *testing.T) {
	svc := NewService(Options{})
	if _, err := svc.SaveWebsiteType(context.Background(), "acct-1", "forum", ""); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestSaveWebsiteTypeKeepsExistingTrackingID(t *testing.T) {
	svc := NewService(Options{})
	ctx := context.Background()

	first, err := svc.SaveWebsiteType(ctx, "acct-1", preferences.WebsiteTypeSaaS, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := svc.SaveWebsiteType(ctx, "acct-1", preferences.WebsiteTypeBlog, "")
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if first.TrackingID != second.TrackingID {
		t.Fatalf("tracking id changed: %q vs %q", first.TrackingID, second.TrackingID)
	}
}

func TestGenerateTrackingIDIsIdempotent(t *testing.T) {
	svc := NewService(Options{})
	ctx := context.Background()

	first, err := svc.GenerateTrackingID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := svc.GenerateTrackingID(ctx, "acct-1")
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}
	if first != second {
		t.Fatalf("expected same id, got %q and %q", first, second)
	}
}

func TestCompleteRequiresStepsInOrder(t *testing.T) {
	store := NewInMemoryAccountStore()
	svc := NewService(Options{Accounts: store})
	ctx := context.Background()

	if err := store.Put(ctx, Account{ID: "acct-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Complete(ctx, "acct-1"); !errors.Is(err, ErrWebsiteTypeRequired) {
		t.Fatalf("expected website type error, got %v", err)
	}

	if err := store.Put(ctx, Account{ID: "acct-1", WebsiteType: preferences.WebsiteTypeNews}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.Complete(ctx, "acct-1"); !errors.Is(err, ErrTrackingIDRequired) {
		t.Fatalf("expected tracking id error, got %v", err)
	}

	if _, err := svc.GenerateTrackingID(ctx, "acct-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := svc.Complete(ctx, "acct-1"); err != nil {
		t.Fatalf("complete: %v", err)
	}

	status, err := svc.Status(ctx, "acct-1")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !status.Onboarded || !status.Steps.Completed {
		t.Fatalf("expected onboarded status, got %+v", status)
	}
}

func TestSkipFillsDefaults(t *testing.T) {
	svc := NewService(Options{})

	account, err := svc.Skip(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("skip: %v", err)
	}
	if !account.Onboarded {
		t.Fatal("expected onboarded account")
	}
	if account.WebsiteType != preferences.WebsiteTypeCustom {
		t.Fatalf("expected custom type, got %s", account.WebsiteType)
	}
	if account.TrackingID == "" {
		t.Fatal("expected tracking id to be minted")
	}
}

func TestVerifyTrackingCountsSessions(t *testing.T) {
	svc := NewService(Options{
		Events:        StaticEventCounter{Counts: map[string]int64{"trk_fixed": 42}},
		NewTrackingID: func() string { return "trk_fixed" },
	})
	ctx := context.Background()

	if _, err := svc.GenerateTrackingID(ctx, "acct-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	verification, err := svc.VerifyTracking(ctx, "acct-1")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !verification.Verified || verification.EventsCount != 42 {
		t.Fatalf("unexpected verification %+v", verification)
	}
}

func TestVerifyTrackingRequiresTrackingID(t *testing.T) {
	store := NewInMemoryAccountStore()
	svc := NewService(Options{Accounts: store})
	ctx := context.Background()

	if err := store.Put(ctx, Account{ID: "acct-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.VerifyTracking(ctx, "acct-1"); !errors.Is(err, ErrTrackingIDRequired) {
		t.Fatalf("expected tracking id error, got %v", err)
	}
}

func TestVerifyTrackingDegradesWhenBackendUnavailable(t *testing.T) {
	svc := NewService(Options{Events: failingCounter{}})
	ctx := context.Background()

	if _, err := svc.GenerateTrackingID(ctx, "acct-1"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	verification, err := svc.VerifyTracking(ctx, "acct-1")
	if err != nil {
		t.Fatalf("expected graceful fallback, got %v", err)
	}
	if verification.Verified {
		t.Fatal("expected unverified result")
	}
	if verification.Message == "" {
		t.Fatal("expected explanatory message")
	}
}

func TestTrackingIDFormat(t *testing.T) {
	id := NewTrackingID()
	if !strings.HasPrefix(id, "trk_") {
		t.Fatalf("missing prefix: %q", id)
	}
	if len(id) != len("trk_")+16 {
		t.Fatalf("unexpected length %d for %q", len(id), id)
	}
}
