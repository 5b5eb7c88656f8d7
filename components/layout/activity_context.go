package layout

import (
	"context"

	"github.com/goliatone/go-insights/pkg/activity"
)

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

// ActivityFrom extracts the activity context from the context, if present.
func ActivityFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

// EmitterAdapter publishes layout mutations through an activity.Emitter,
// pulling actor identity from the request context.
type EmitterAdapter struct {
	Emitter *activity.Emitter
}

var _ ActivityEmitter = EmitterAdapter{}

// EmitWidget implements ActivityEmitter.
func (a EmitterAdapter) EmitWidget(ctx context.Context, verb, pageID, widgetID string, metadata map[string]any) {
	if a.Emitter == nil || !a.Emitter.Enabled() {
		return
	}
	meta := activityContextMeta(metadata, pageID)
	actor := ActivityFrom(ctx)
	objectType, objectID := "widget", widgetID
	if objectID == "" {
		// Page-level mutations (set, reorder, reset) have no single widget.
		objectType, objectID = "page", pageID
	}
	_ = a.Emitter.Emit(ctx, activity.Event{
		Verb:           verb,
		ActorID:        actor.ActorID,
		UserID:         actor.UserID,
		TenantID:       actor.TenantID,
		ObjectType:     objectType,
		ObjectID:       objectID,
		DefinitionCode: objectType + ":" + verb,
		Metadata:       meta,
	})
}

func activityContextMeta(metadata map[string]any, pageID string) map[string]any {
	meta := make(map[string]any, len(metadata)+1)
	for key, value := range metadata {
		meta[key] = value
	}
	meta["page_id"] = pageID
	return meta
}
