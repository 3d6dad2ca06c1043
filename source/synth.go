package source

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/serialscope/serialscope/model"
)

// SynthSource generates a few named waveforms at a fixed sample rate.
// It exists for -demo and for developing against no hardware.
type SynthSource struct {
	Rate int // samples per second
}

var synthNames = []string{"sine", "square", "ramp", "noise"}

// Describe returns the generator rate for the status bar.
func (s *SynthSource) Describe() string {
	return "synthetic generator"
}

// Run declares the waveform channels and then streams rows at Rate until
// ctx is cancelled.
func (s *SynthSource) Run(ctx context.Context, emit func(model.Event)) error {
	rate := s.Rate
	if rate < 1 {
		rate = 60
	}
	emit(model.Event{Names: synthNames})

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	var n int
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			phase := float64(n) / float64(rate) // seconds
			sine := math.Sin(2 * math.Pi * 0.5 * phase)
			square := 1.0
			if sine < 0 {
				square = -1
			}
			ramp := 2*math.Mod(0.25*phase, 1) - 1
			noise := rng.NormFloat64() * 0.3
			emit(model.Event{Values: []float64{sine, square * 0.8, ramp, noise}})
			n++
		}
	}
}
