package layout

import (
	"context"
	"testing"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	defer cancel()
	event := WidgetEvent{PageID: PageOverview, Reason: "add"}
	if err := hook.WidgetUpdated(context.Background(), event); err != nil {
		t.Fatalf("WidgetUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.PageID != event.PageID || e.Reason != "add" {
			t.Fatalf("unexpected event %#v", e)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookPageFilter(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.SubscribePage("audience")
	defer cancel()

	_ = hook.WidgetUpdated(context.Background(), WidgetEvent{PageID: PageOverview, Reason: "add"})
	select {
	case e := <-ch:
		t.Fatalf("expected overview event filtered out, got %#v", e)
	default:
	}

	_ = hook.WidgetUpdated(context.Background(), WidgetEvent{PageID: "audience", Reason: "remove"})
	select {
	case e := <-ch:
		if e.Reason != "remove" {
			t.Fatalf("unexpected event %#v", e)
		}
	default:
		t.Fatalf("expected audience event delivered")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatal("expected channel closed after cancel")
	}
	// Cancel twice must not panic.
	cancel()
	if err := hook.WidgetUpdated(context.Background(), WidgetEvent{PageID: PageOverview}); err != nil {
		t.Fatalf("WidgetUpdated returned error: %v", err)
	}
}

func TestBroadcastHookDropsWhenSubscriberIsFull(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()
	for i := 0; i < 50; i++ {
		if err := hook.WidgetUpdated(context.Background(), WidgetEvent{PageID: PageOverview}); err != nil {
			t.Fatalf("WidgetUpdated must not block or fail, got %v", err)
		}
	}
}
