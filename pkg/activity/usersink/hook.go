// Package usersink bridges dashboard activity events into the go-users
// activity log.
package usersink

import (
	"context"

	"github.com/goliatone/go-insights/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the subset of the go-users activity logger the hook needs.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook forwards events to a Sink, mapping string identifiers onto the
// UUID fields go-users records use. Malformed UUIDs map to uuid.Nil.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify maps evt to a types.ActivityRecord and logs it. Events that
// fail activity.Event.Valid are dropped.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	if !evt.Valid() {
		return nil
	}

	data := make(map[string]any, len(evt.Metadata)+2)
	for key, value := range evt.Metadata {
		data[key] = value
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}

	record := types.ActivityRecord{
		ActorID:    parseUUID(evt.ActorID),
		UserID:     parseUUID(evt.UserID),
		TenantID:   parseUUID(evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    evt.Channel,
		OccurredAt: evt.OccurredAt,
		Data:       data,
	}
	return h.Sink.Log(ctx, record)
}

func parseUUID(value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
