package activity

import (
	"context"
	"time"
)

// Config toggles emission without forcing callers to nil-check hooks.
type Config struct {
	Enabled bool
	// Channel overrides DefaultChannel for events that do not set one.
	Channel string
}

// Emitter is the entry point mutation code uses to publish events.
type Emitter struct {
	hooks   Hooks
	config  Config
	nowFunc func() time.Time
}

// NewEmitter builds an emitter over the given hooks.
func NewEmitter(hooks Hooks, config Config) *Emitter {
	if config.Channel == "" {
		config.Channel = DefaultChannel
	}
	return &Emitter{
		hooks:   hooks,
		config:  config,
		nowFunc: time.Now,
	}
}

// Enabled reports whether Emit will deliver anything.
func (e *Emitter) Enabled() bool {
	if e == nil || !e.config.Enabled {
		return false
	}
	return len(e.hooks) > 0
}

// Emit stamps and delivers evt. Disabled emitters drop events silently.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.config.Channel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = e.nowFunc()
	}
	return e.hooks.Notify(ctx, evt)
}
