package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestZoomByFactor(t *testing.T) {
	tests := []struct {
		name   string
		window int
		factor float64
		want   int
	}{
		{"zoom in halves the window", 10, 2, 5},
		{"zoom out doubles the window", 10, 0.5, 20},
		{"zoom in clamps at the floor", 4, 8, 2},
		{"zoom out clamps at capacity", 60, 0.1, 100},
		{"non-integer factor rounds", 10, 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(100, tt.window)
			fill(e, []string{"a"}, 100)
			e.ZoomBy(tt.factor)
			require.Equal(t, tt.want, e.Window())
		})
	}
}

func TestZoomIgnoresBadFactors(t *testing.T) {
	for _, f := range []float64{0, -2} {
		e := newTestEngine(100, 10)
		fill(e, []string{"a"}, 100)
		e.ZoomBy(f)
		require.Equal(t, 10, e.Window())
	}
}

func TestZoomAnchorsAtCursor(t *testing.T) {
	e := newTestEngine(100, 40)
	fill(e, []string{"a"}, 100)
	e.SetCursor(30)

	e.ZoomBy(2)

	require.Equal(t, 20, e.Window())
	require.Equal(t, 30, e.Cursor(), "zoom does not move the view")

	snap := e.Snapshot()
	require.Equal(t, uint64(70), snap.End, "newest visible sample unchanged")
}

func TestZoomLiveStaysLive(t *testing.T) {
	e := newTestEngine(100, 40)
	fill(e, []string{"a"}, 100)

	e.ZoomBy(2)

	require.False(t, e.Frozen())
	require.Equal(t, 0, e.Cursor())
	require.Equal(t, uint64(100), e.Snapshot().End)
}

func TestZoomOutReclampsCursor(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)
	e.SetCursor(90)

	e.ZoomBy(0.25) // window 40, max cursor now 60

	require.Equal(t, 40, e.Window())
	require.Equal(t, 60, e.Cursor(), "only clamping may move the view")
}

func TestZoomCancelsMomentum(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	e.StartMomentum(50, time.Now())
	e.ZoomBy(2)
	require.False(t, e.MomentumActive())
}
