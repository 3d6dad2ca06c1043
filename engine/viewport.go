package engine

import "github.com/serialscope/serialscope/model"

// Mode is the viewport follow state. The cursor is only meaningful while
// frozen; live mode pins it to 0 so the two can never disagree.
type Mode int

const (
	// ModeLive keeps the viewport glued to the newest sample.
	ModeLive Mode = iota
	// ModeFrozen pins the viewport at a user-chosen offset.
	ModeFrozen
)

// viewport maps a cursor and window width onto the store.
//
// The cursor counts samples back from the live edge: 0 means the window
// ends at the newest sample. The window is the number of samples visible.
type viewport struct {
	mode   Mode
	cursor int
	window int
}

// maxCursor returns how far back the cursor may go: past that the window
// would reference evicted rows.
func maxCursor(s *Store, window int) int {
	return max(0, s.size-window)
}

// clampCursor forces v into [0, maxCursor].
func (v *viewport) clampCursor(s *Store) {
	if v.mode == ModeLive {
		v.cursor = 0
		return
	}
	v.cursor = min(max(v.cursor, 0), maxCursor(s, v.window))
}

// clampWindow forces the window into [minWindow, capacity].
func (v *viewport) clampWindow(s *Store, minWindow int) {
	v.window = min(max(v.window, minWindow), s.cap)
}

// snapshot assembles a render-ready copy of the visible slice. It reads
// one consistent (total, cursor, window) triple; the caller holds the
// engine lock for the whole call.
func snapshot(s *Store, v *viewport) model.Snapshot {
	oldest := s.Oldest()
	end := s.total - uint64(min(v.cursor, s.size))
	start := end
	if w := uint64(v.window); start >= oldest+w {
		start = end - w
	} else {
		start = oldest
	}
	size := int(end - start)

	snap := model.Snapshot{
		Names:    s.Names(),
		Series:   make([][]float64, len(s.names)),
		Start:    start,
		End:      end,
		Size:     size,
		Total:    s.total,
		Capacity: s.cap,
		Frozen:   v.mode == ModeFrozen,
	}
	for ch := range snap.Series {
		snap.Series[ch] = s.CopyRange(ch, start, end)
	}
	if size > 0 {
		snap.StartTime = s.TimeAt(start)
		snap.EndTime = s.TimeAt(end - 1)
	}
	return snap
}
