package engine

import (
	"sync"
	"time"

	"github.com/serialscope/serialscope/model"
)

// Config holds the engine tunables. The momentum constants and the zoom
// floor are UI-feel parameters surfaced here rather than hard-coded.
type Config struct {
	Capacity         int           // ring buffer size in rows
	Window           int           // initial viewport width in samples
	MinWindow        int           // zoom floor, must stay >= 2
	MomentumHalfLife time.Duration // flick velocity halves every interval
	MomentumMinSpeed float64       // samples/sec below which a flick stops
}

// DefaultConfig returns the engine defaults used when no config file
// overrides them.
func DefaultConfig() Config {
	return Config{
		Capacity:         4096,
		Window:           512,
		MinWindow:        8,
		MomentumHalfLife: 250 * time.Millisecond,
		MomentumMinSpeed: 2,
	}
}

// Engine owns all plotting state: the channel registry and ring buffer,
// the viewport, and the momentum animation. There are no package-level
// singletons; whoever needs the state gets the *Engine.
//
// The source goroutine appends while the UI goroutine pans, zooms, and
// snapshots, so every method takes the one mutex. Each method is a single
// logical update: an Append can never observe a half-applied clamp, and a
// Snapshot reads one consistent (total, cursor, window) triple.
type Engine struct {
	mu    sync.Mutex
	cfg   Config
	store *Store
	view  viewport
	mom   momentum
	pan   panTrail

	panning bool
}

// New creates an engine with the given tunables. Out-of-range values are
// clamped, never rejected.
func New(cfg Config) *Engine {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.MinWindow < 2 {
		cfg.MinWindow = 2
	}
	if cfg.Window < cfg.MinWindow {
		cfg.Window = cfg.MinWindow
	}
	if cfg.Window > cfg.Capacity {
		cfg.Window = cfg.Capacity
	}
	e := &Engine{
		cfg:   cfg,
		store: NewStore(cfg.Capacity),
	}
	e.view = viewport{mode: ModeLive, window: cfg.Window}
	return e
}

// SetSeries declares the channel set. A changed set clears all history
// and drops the viewport back to live mode; declaring the same set again
// is a no-op, and an empty set is ignored.
func (e *Engine) SetSeries(names []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.SetSeries(names) {
		return
	}
	e.mom.stop()
	e.panning = false
	e.view.mode = ModeLive
	e.view.cursor = 0
}

// Names returns the registered channel names.
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Names()
}

// Append stores one sample row. Rows with the wrong arity are dropped.
// While frozen the cursor advances with the live edge so the visible
// window stays pinned to the same samples; in live mode it rides the edge
// at 0. Reports whether the row was stored.
func (e *Engine) Append(values []float64, now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.store.Append(values, now) {
		return false
	}
	if e.view.mode == ModeFrozen && !e.mom.active && !e.panning {
		e.view.cursor++
	}
	e.view.clampCursor(e.store)
	return true
}

// Clear drops all retained rows and resumes live mode.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.Clear()
	e.mom.stop()
	e.panning = false
	e.view.mode = ModeLive
	e.view.cursor = 0
}

// SetCapacity resizes the ring buffer, dropping the oldest rows when
// shrinking, then re-clamps the viewport.
func (e *Engine) SetCapacity(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.SetCapacity(n)
	e.view.clampWindow(e.store, e.cfg.MinWindow)
	e.view.clampCursor(e.store)
}

// Capacity returns the ring buffer size.
func (e *Engine) Capacity() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Capacity()
}

// Total returns the number of rows ever appended.
func (e *Engine) Total() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Total()
}

// Len returns the number of retained rows.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Len()
}

// Snapshot assembles the render-ready view of the current viewport.
// Side-effect free: safe to call every animation frame, and two calls
// without an intervening mutation return equal snapshots.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return snapshot(e.store, &e.view)
}

// Cursor returns the viewport offset back from the live edge.
func (e *Engine) Cursor() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.cursor
}

// SetCursor moves the viewport, clamping into the valid range instead of
// failing. A nonzero cursor only makes sense frozen, so this freezes.
func (e *Engine) SetCursor(v int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.mode = ModeFrozen
	e.view.cursor = v
	e.view.clampCursor(e.store)
}

// Frozen reports whether the viewport is pinned.
func (e *Engine) Frozen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.mode == ModeFrozen
}

// SetFrozen toggles the follow mode. Freezing preserves the current
// cursor; resuming live resets it to 0 and cancels any momentum.
func (e *Engine) SetFrozen(frozen bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if frozen {
		e.view.mode = ModeFrozen
		return
	}
	e.mom.stop()
	e.panning = false
	e.view.mode = ModeLive
	e.view.cursor = 0
}

// Window returns the viewport width in samples.
func (e *Engine) Window() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view.window
}

// SetWindow sets the viewport width, clamped to [MinWindow, Capacity].
func (e *Engine) SetWindow(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.view.window = n
	e.view.clampWindow(e.store, e.cfg.MinWindow)
	e.view.clampCursor(e.store)
}

// PanStart begins a drag gesture: any momentum stops and the viewport
// freezes in place if it was live.
func (e *Engine) PanStart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mom.stop()
	e.view.mode = ModeFrozen
	e.panning = true
	e.pan.begin(e.view.cursor)
}

// PanDelta applies one drag step. Positive deltas reveal older data.
// Fractional deltas accumulate so slow drags still move.
func (e *Engine) PanDelta(delta float64, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.panning {
		return
	}
	e.pan.push(delta, now)
	// Keep the drag position inside the clamp range too, so a drag past
	// a bound does not bank distance the user has to drag back through.
	e.pan.pos = min(max(e.pan.pos, 0), float64(maxCursor(e.store, e.view.window)))
	e.view.cursor = int(e.pan.pos + 0.5)
	e.view.clampCursor(e.store)
}

// PanEnd finishes the gesture and, if it ended with speed, hands off to a
// momentum animation.
func (e *Engine) PanEnd(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.panning {
		return
	}
	e.panning = false
	if v := e.pan.releaseVelocity(now); v != 0 {
		e.mom.start(e.view.cursor, v, now)
	}
}

// StartMomentum begins a decaying scroll at the given velocity in
// samples per second, replacing any animation already in flight.
func (e *Engine) StartMomentum(velocity float64, now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if velocity == 0 {
		return
	}
	e.view.mode = ModeFrozen
	e.mom.start(e.view.cursor, velocity, now)
}

// StopMomentum cancels any in-flight scroll. Idempotent.
func (e *Engine) StopMomentum() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mom.stop()
}

// MomentumActive reports whether a decaying scroll is in flight.
func (e *Engine) MomentumActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mom.active
}

// Tick advances the momentum animation to now. The UI calls this once per
// frame, before taking the frame's snapshot, so a scroll and its render
// can never be half a frame apart.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mom.active {
		return
	}
	cur := e.mom.tick(now, e.cfg.MomentumHalfLife, e.cfg.MomentumMinSpeed, maxCursor(e.store, e.view.window))
	e.view.cursor = cur
	e.view.clampCursor(e.store)
}
