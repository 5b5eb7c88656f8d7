package activity

import "context"

// Hook receives normalized events. Implementations must be safe for
// concurrent use.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify calls the wrapped function.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans an event out to every registered hook. Invalid events are
// dropped before any hook runs. The first hook error stops the fan-out.
type Hooks []Hook

// Notify normalizes evt and delivers it to each hook in order.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	evt = NormalizeEvent(evt)
	if !evt.Valid() {
		return nil
	}
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			return err
		}
	}
	return nil
}
