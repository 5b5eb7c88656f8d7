package layout

import (
	"context"
	"errors"
	"sync"
)

// ArrayMove returns a copy of widgets with the element at from moved to
// to, shifting the elements in between. Out-of-range indexes are clamped.
func ArrayMove(widgets []WidgetConfig, from, to int) []WidgetConfig {
	out := make([]WidgetConfig, len(widgets))
	copy(out, widgets)
	if len(out) == 0 {
		return out
	}
	from = clamp(from, 0, len(out)-1)
	to = clamp(to, 0, len(out)-1)
	if from == to {
		return out
	}
	moved := out[from]
	if from < to {
		copy(out[from:], out[from+1:to+1])
	} else {
		copy(out[to+1:], out[to:from])
	}
	out[to] = moved
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ErrNoActiveDrag is returned when DragEnd or MoveBy runs without a
// preceding DragStart.
var ErrNoActiveDrag = errors.New("layout: no active drag")

type reorderStore interface {
	GetLayout(pageID string) []WidgetConfig
	ReorderWidgets(ctx context.Context, pageID string, widgets []WidgetConfig) error
}

// DragController mirrors pointer-driven drag and drop on top of a layout
// store: DragStart marks the grabbed widget and DragEnd commits the move
// over the drop target.
type DragController struct {
	store reorderStore

	mu     sync.Mutex
	active string
}

// NewDragController builds a controller over the store.
func NewDragController(store reorderStore) *DragController {
	return &DragController{store: store}
}

// DragStart records the grabbed widget. Starting a new drag while one is
// active replaces it.
func (d *DragController) DragStart(widgetID string) {
	d.mu.Lock()
	d.active = widgetID
	d.mu.Unlock()
}

// Active returns the id of the widget currently being dragged.
func (d *DragController) Active() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Cancel drops the active drag without touching the layout.
func (d *DragController) Cancel() {
	d.mu.Lock()
	d.active = ""
	d.mu.Unlock()
}

// DragEnd commits the active drag: the dragged widget takes overID's
// position and the widgets in between shift. Dropping onto itself or
// outside any target (empty overID) cancels without mutating.
func (d *DragController) DragEnd(ctx context.Context, pageID, overID string) error {
	d.mu.Lock()
	active := d.active
	d.active = ""
	d.mu.Unlock()

	if active == "" {
		return ErrNoActiveDrag
	}
	if overID == "" || overID == active {
		return nil
	}

	widgets := d.store.GetLayout(pageID)
	from, to := -1, -1
	for i, w := range widgets {
		switch w.ID {
		case active:
			from = i
		case overID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil
	}
	return d.store.ReorderWidgets(ctx, pageID, ArrayMove(widgets, from, to))
}

// MoveBy shifts the active widget by delta positions, clamped to the
// page bounds. Used by keyboard-driven reordering.
func (d *DragController) MoveBy(ctx context.Context, pageID string, delta int) error {
	d.mu.Lock()
	active := d.active
	d.mu.Unlock()
	if active == "" {
		return ErrNoActiveDrag
	}

	widgets := d.store.GetLayout(pageID)
	from := -1
	for i, w := range widgets {
		if w.ID == active {
			from = i
			break
		}
	}
	if from < 0 {
		return nil
	}
	to := clamp(from+delta, 0, len(widgets)-1)
	if to == from {
		return nil
	}
	return d.store.ReorderWidgets(ctx, pageID, ArrayMove(widgets, from, to))
}

// Rect is a widget's rendered bounding box used for drop detection.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ClosestCenter returns the id of the candidate whose center is nearest
// the pointer. Ties keep the earliest candidate. Empty input returns "".
func ClosestCenter(pointerX, pointerY float64, candidates []string, rects map[string]Rect) string {
	best := ""
	bestDist := 0.0
	for _, id := range candidates {
		rect, ok := rects[id]
		if !ok {
			continue
		}
		cx, cy := rect.center()
		dx, dy := cx-pointerX, cy-pointerY
		dist := dx*dx + dy*dy
		if best == "" || dist < bestDist {
			best = id
			bestDist = dist
		}
	}
	return best
}
