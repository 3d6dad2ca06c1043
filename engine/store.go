package engine

import (
	"slices"
	"time"
)

// Store is the channel registry plus a fixed-capacity ring buffer of
// sample rows. All channels share one index axis: a row carries one value
// per registered channel and is stamped with the next global index.
//
// Store is not safe for concurrent use on its own; the Engine serializes
// every access behind its mutex.
type Store struct {
	names []string
	buf   [][]float64 // one ring per channel, each sized cap
	times []time.Time // arrival time per row, same ring geometry
	head  int         // next write slot
	size  int         // retained rows, min(total, cap)
	cap   int
	total uint64 // rows ever appended
}

// NewStore creates an empty store with the given capacity (minimum 1).
func NewStore(capacity int) *Store {
	if capacity < 1 {
		capacity = 1
	}
	return &Store{
		times: make([]time.Time, capacity),
		cap:   capacity,
	}
}

// SetSeries declares the channel set. A changed set discards all retained
// rows: history never mixes schemas. An unchanged set is a no-op, and an
// empty set is rejected. Reports whether the registry changed.
func (s *Store) SetSeries(names []string) bool {
	if len(names) == 0 {
		return false
	}
	if slices.Equal(names, s.names) {
		return false
	}
	s.names = slices.Clone(names)
	s.buf = make([][]float64, len(names))
	for i := range s.buf {
		s.buf[i] = make([]float64, s.cap)
	}
	s.head = 0
	s.size = 0
	s.total = 0
	return true
}

// Names returns a copy of the registered channel names.
func (s *Store) Names() []string {
	return slices.Clone(s.names)
}

// Channels returns the number of registered channels.
func (s *Store) Channels() int {
	return len(s.names)
}

// Append writes one row at the next global index, evicting the oldest row
// when the ring is full. A row whose length does not match the channel
// count is dropped: wrong arity means line noise, not a fault. Reports
// whether the row was stored.
func (s *Store) Append(values []float64, now time.Time) bool {
	if len(s.names) == 0 || len(values) != len(s.names) {
		return false
	}
	for ch, v := range values {
		s.buf[ch][s.head] = v
	}
	s.times[s.head] = now
	s.head = (s.head + 1) % s.cap
	if s.size < s.cap {
		s.size++
	}
	s.total++
	return true
}

// SetCapacity resizes the ring. Shrinking below the retained row count
// drops the oldest rows immediately; the store never holds more than its
// capacity. Values below 1 are clamped.
func (s *Store) SetCapacity(n int) {
	if n < 1 {
		n = 1
	}
	if n == s.cap {
		return
	}
	keep := min(s.size, n)
	newBuf := make([][]float64, len(s.names))
	for ch := range newBuf {
		newBuf[ch] = make([]float64, n)
	}
	newTimes := make([]time.Time, n)
	// Copy the newest `keep` rows into the front of the new ring.
	first := s.total - uint64(keep)
	for i := 0; i < keep; i++ {
		idx := s.slot(first + uint64(i))
		for ch := range newBuf {
			newBuf[ch][i] = s.buf[ch][idx]
		}
		newTimes[i] = s.times[idx]
	}
	s.buf = newBuf
	s.times = newTimes
	s.cap = n
	s.size = keep
	s.head = keep % n
}

// Capacity returns the ring size.
func (s *Store) Capacity() int {
	return s.cap
}

// Len returns the number of retained rows.
func (s *Store) Len() int {
	return s.size
}

// Total returns the number of rows ever appended.
func (s *Store) Total() uint64 {
	return s.total
}

// Oldest returns the global index of the oldest retained row.
func (s *Store) Oldest() uint64 {
	return s.total - uint64(s.size)
}

// Clear drops all retained rows but keeps the channel registry.
func (s *Store) Clear() {
	s.head = 0
	s.size = 0
	s.total = 0
}

// slot maps a retained global index onto a ring position.
func (s *Store) slot(global uint64) int {
	back := int(s.total - global) // 1 = newest
	return ((s.head-back)%s.cap + s.cap) % s.cap
}

// At returns the value of channel ch at a retained global index.
func (s *Store) At(ch int, global uint64) float64 {
	return s.buf[ch][s.slot(global)]
}

// TimeAt returns the arrival time of the row at a retained global index.
func (s *Store) TimeAt(global uint64) time.Time {
	return s.times[s.slot(global)]
}

// CopyRange copies channel ch over [start, end) into a fresh slice.
// The bounds must lie within the retained range.
func (s *Store) CopyRange(ch int, start, end uint64) []float64 {
	out := make([]float64, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, s.buf[ch][s.slot(i)])
	}
	return out
}
