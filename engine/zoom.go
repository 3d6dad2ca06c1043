package engine

import "math"

// ZoomBy rescales the viewport width: factor > 1 narrows the window
// (more detail), factor < 1 widens it. The result is clamped to
// [MinWindow, Capacity]. The cursor is the anchor and does not move, so
// a live view stays live and a frozen view keeps its newest visible
// sample; only clamping may shift the window beyond that.
func (e *Engine) ZoomBy(factor float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	e.mom.stop()
	e.view.window = int(math.Round(float64(e.view.window) / factor))
	e.view.clampWindow(e.store, e.cfg.MinWindow)
	e.view.clampCursor(e.store)
}
