package engine

import (
	"math"
	"time"
)

// velocityWindow bounds how much of the drag trail feeds the release
// velocity: only deltas newer than this count, so an old fast drag that
// ended in a hold does not fling the view.
const velocityWindow = 120 * time.Millisecond

// momentum is the decaying-scroll state machine. At most one animation is
// in flight: Start reuses the single slot, Stop releases it. Ticks come
// from the UI frame tick, never from an internal timer, so cancellation
// is synchronous: after Stop returns no tick can move the cursor.
type momentum struct {
	active   bool
	velocity float64 // samples per second, positive = toward older data
	pos      float64 // fractional cursor position
	last     time.Time
}

// start begins a decay animation from the current cursor.
func (m *momentum) start(cursor int, velocity float64, now time.Time) {
	m.active = true
	m.velocity = velocity
	m.pos = float64(cursor)
	m.last = now
}

// stop cancels any in-flight animation. Idempotent.
func (m *momentum) stop() {
	m.active = false
	m.velocity = 0
}

// tick advances the animation to now and returns the new cursor. The
// animation ends when speed decays below minSpeed or the cursor hits a
// clamp bound; at a bound the velocity is zeroed, not reflected.
func (m *momentum) tick(now time.Time, halfLife time.Duration, minSpeed float64, maxCur int) int {
	if !m.active {
		return int(math.Round(m.pos))
	}
	dt := now.Sub(m.last).Seconds()
	m.last = now
	if dt <= 0 {
		return int(math.Round(m.pos))
	}

	m.pos += m.velocity * dt
	if hl := halfLife.Seconds(); hl > 0 {
		m.velocity *= math.Pow(0.5, dt/hl)
	} else {
		m.velocity = 0
	}

	if m.pos <= 0 {
		m.pos = 0
		m.stop()
	} else if m.pos >= float64(maxCur) {
		m.pos = float64(maxCur)
		m.stop()
	} else if math.Abs(m.velocity) < minSpeed {
		m.stop()
	}
	return int(math.Round(m.pos))
}

// panSample is one reported drag delta with its arrival time.
type panSample struct {
	delta float64
	at    time.Time
}

// panTrail accumulates drag deltas during a gesture and derives the
// release velocity from the recent portion of the trail.
type panTrail struct {
	samples []panSample
	pos     float64 // fractional cursor during the drag
}

func (p *panTrail) begin(cursor int) {
	p.samples = p.samples[:0]
	p.pos = float64(cursor)
}

func (p *panTrail) push(delta float64, now time.Time) {
	p.pos += delta
	p.samples = append(p.samples, panSample{delta: delta, at: now})
}

// releaseVelocity sums the deltas inside velocityWindow and divides by the
// span they cover. Returns 0 for a gesture that ended at rest.
func (p *panTrail) releaseVelocity(now time.Time) float64 {
	cutoff := now.Add(-velocityWindow)
	var sum float64
	oldest := now
	for i := len(p.samples) - 1; i >= 0; i-- {
		s := p.samples[i]
		if s.at.Before(cutoff) {
			break
		}
		sum += s.delta
		oldest = s.at
	}
	span := now.Sub(oldest).Seconds()
	if span <= 0 || sum == 0 {
		return 0
	}
	return sum / span
}
