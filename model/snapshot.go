package model

import "time"

// Snapshot is a render-ready view of the current viewport.
//
// It is rebuilt from scratch on every request: the per-channel slices are
// copies owned by the snapshot, so the renderer can hold one across a frame
// without racing the producer, and two snapshots never alias. Callers must
// treat it as read-only and ask for a fresh one each frame.
type Snapshot struct {
	// Names holds the registered channel names, in declaration order.
	Names []string

	// Series holds one value slice per channel, restricted to the
	// viewport window. All slices have length Size.
	Series [][]float64

	// Start and End bound the window in global sample indices,
	// half-open [Start, End).
	Start uint64
	End   uint64

	// Size is the number of samples visible (may be less than the
	// requested window when fewer samples have been written).
	Size int

	// Total is the number of rows ever appended; Capacity the ring size.
	Total    uint64
	Capacity int

	// Frozen reports whether the viewport is pinned rather than
	// following the live edge.
	Frozen bool

	// StartTime and EndTime are the arrival times of the first and last
	// visible rows. Zero when the window is empty. The engine works in
	// sample-index space; these exist only for the renderer's axis
	// labels and for export.
	StartTime time.Time
	EndTime   time.Time
}
