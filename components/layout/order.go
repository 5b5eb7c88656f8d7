package layout

// nextOrder returns the order slot after the current maximum, so a new
// widget sorts last regardless of gaps left by earlier mutations.
func nextOrder(widgets []WidgetConfig) int {
	next := 0
	for _, w := range widgets {
		if w.Order >= next {
			next = w.Order + 1
		}
	}
	return next
}

// applyOrderOverride moves the named widgets to the front in the given
// order and renumbers every widget from its new slice position.
func applyOrderOverride(widgets []WidgetConfig, order []string) []WidgetConfig {
	if len(order) == 0 {
		return widgets
	}
	index := make(map[string]WidgetConfig, len(widgets))
	for _, w := range widgets {
		index[w.ID] = w
	}
	result := make([]WidgetConfig, 0, len(widgets))
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, dup := seen[id]; dup {
			continue
		}
		if w, ok := index[id]; ok {
			result = append(result, w)
			seen[id] = struct{}{}
		}
	}
	for _, w := range widgets {
		if _, ok := seen[w.ID]; !ok {
			result = append(result, w)
		}
	}
	for i := range result {
		result[i].Order = i
	}
	return result
}
