// Package source turns byte transports into parsed engine events: a
// serial port, an io.Reader (stdin or a file), or a synthetic waveform
// generator. Sources know nothing about the engine; they hand each
// schema declaration or sample row to a callback and let the caller
// decide where it goes.
package source

import (
	"context"

	"github.com/serialscope/serialscope/model"
)

// Source is a line producer. Run blocks until the context is cancelled
// or the transport fails permanently, calling emit for every parsed
// event. Malformed lines are dropped before emit is ever called.
type Source interface {
	Run(ctx context.Context, emit func(model.Event)) error
	Describe() string
}
