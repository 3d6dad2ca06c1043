package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const frame = 16 * time.Millisecond

func TestMomentumDecaysToRest(t *testing.T) {
	e := newTestEngine(1000, 10)
	fill(e, []string{"a"}, 500)

	t0 := time.Now()
	e.StartMomentum(100, t0)
	require.True(t, e.MomentumActive())

	maxCur := 500 - 10
	prev := e.Cursor()
	var ticks int
	for ticks = 1; ticks < 500; ticks++ {
		e.Tick(t0.Add(time.Duration(ticks) * frame))
		cur := e.Cursor()
		require.GreaterOrEqual(t, cur, prev, "positive velocity never moves the cursor back")
		require.LessOrEqual(t, cur, maxCur, "cursor stays inside clamp bounds mid-decay")
		prev = cur
		if !e.MomentumActive() {
			break
		}
	}
	require.False(t, e.MomentumActive(), "decay must finish in a bounded number of ticks")
	require.Greater(t, prev, 0, "the flick moved the view")
}

func TestMomentumSpeedDecaysMonotonically(t *testing.T) {
	m := momentum{}
	t0 := time.Now()
	m.start(0, 80, t0)

	speed := 80.0
	for i := 1; i <= 100 && m.active; i++ {
		m.tick(t0.Add(time.Duration(i)*frame), 250*time.Millisecond, 2, 1<<20)
		require.Less(t, math.Abs(m.velocity), speed)
		speed = math.Abs(m.velocity)
	}
	require.False(t, m.active)
	require.Less(t, speed, 2.0)
}

func TestMomentumStopsAtOldBound(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	t0 := time.Now()
	e.StartMomentum(1e6, t0)
	e.Tick(t0.Add(frame))

	require.Equal(t, 90, e.Cursor(), "clamped at the oldest retained window")
	require.False(t, e.MomentumActive(), "velocity is zeroed at a bound, no bounce")
}

func TestMomentumStopsAtLiveEdge(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)
	e.SetCursor(50)

	t0 := time.Now()
	e.StartMomentum(-1e6, t0)
	e.Tick(t0.Add(frame))

	require.Equal(t, 0, e.Cursor())
	require.False(t, e.MomentumActive())
}

func TestStopMomentumIsSynchronousAndIdempotent(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	t0 := time.Now()
	e.StartMomentum(50, t0)
	e.Tick(t0.Add(frame))
	cur := e.Cursor()

	e.StopMomentum()
	e.StopMomentum() // second call is a no-op

	// A tick that fires after the stop must not move the cursor.
	e.Tick(t0.Add(10 * frame))
	require.Equal(t, cur, e.Cursor())
}

func TestNewGestureCancelsMomentum(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	t0 := time.Now()
	e.StartMomentum(50, t0)
	e.PanStart()
	require.False(t, e.MomentumActive())
}

func TestResumeLiveCancelsMomentum(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	t0 := time.Now()
	e.StartMomentum(50, t0)
	e.SetFrozen(false)

	require.False(t, e.MomentumActive())
	e.Tick(t0.Add(frame))
	require.Equal(t, 0, e.Cursor())
}

func TestStartMomentumReplacesPrevious(t *testing.T) {
	e := newTestEngine(200, 10)
	fill(e, []string{"a"}, 200)

	t0 := time.Now()
	e.StartMomentum(100, t0)
	e.Tick(t0.Add(frame))
	cur := e.Cursor()

	// Opposite flick takes over the single animation slot.
	e.StartMomentum(-100, t0.Add(frame))
	e.Tick(t0.Add(2 * frame))
	require.Less(t, e.Cursor(), cur+2)
	require.True(t, e.MomentumActive() || e.Cursor() == 0)
}

func TestPanEndStartsMomentumFromTrail(t *testing.T) {
	e := newTestEngine(2000, 10)
	fill(e, []string{"a"}, 2000)

	t0 := time.Now()
	e.PanStart()
	for i := 1; i <= 5; i++ {
		e.PanDelta(4, t0.Add(time.Duration(i)*frame))
	}
	e.PanEnd(t0.Add(5 * frame))

	require.True(t, e.MomentumActive(), "a moving release flicks")
	cur := e.Cursor()
	e.Tick(t0.Add(6 * frame))
	require.Greater(t, e.Cursor(), cur, "momentum continues in the drag direction")
}

func TestPanEndAtRestDoesNotFlick(t *testing.T) {
	e := newTestEngine(2000, 10)
	fill(e, []string{"a"}, 2000)

	t0 := time.Now()
	e.PanStart()
	e.PanDelta(30, t0)
	// Held still past the velocity window before releasing.
	e.PanEnd(t0.Add(500 * time.Millisecond))

	require.False(t, e.MomentumActive())
	require.Equal(t, 30, e.Cursor())
}

func TestPanFractionalDeltasAccumulate(t *testing.T) {
	e := newTestEngine(100, 10)
	fill(e, []string{"a"}, 100)

	t0 := time.Now()
	e.PanStart()
	for i := 0; i < 4; i++ {
		e.PanDelta(0.4, t0.Add(time.Duration(i)*frame))
	}
	require.Equal(t, 2, e.Cursor(), "four 0.4-sample drags round to 2")
}

func TestPanDeltaClampsAtBounds(t *testing.T) {
	e := newTestEngine(20, 10)
	fill(e, []string{"a"}, 20)

	t0 := time.Now()
	e.PanStart()
	e.PanDelta(1000, t0)
	require.Equal(t, 10, e.Cursor())

	e.PanDelta(-5000, t0.Add(frame))
	require.Equal(t, 0, e.Cursor())
}
