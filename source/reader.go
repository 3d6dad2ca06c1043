package source

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/serialscope/serialscope/model"
)

// ReaderSource streams parsed lines from an io.Reader, typically a piped
// stdin or a capture file.
type ReaderSource struct {
	R    io.Reader
	Name string

	// Pace inserts a delay between rows so captured files replay at a
	// watchable speed instead of arriving all at once. Zero disables.
	Pace time.Duration
}

// Describe returns the reader name for the status bar.
func (r *ReaderSource) Describe() string {
	if r.Name != "" {
		return r.Name
	}
	return "stdin"
}

// Run scans lines until EOF or cancellation. EOF is a normal end of
// stream, not an error: the view stays up for inspection.
func (r *ReaderSource) Run(ctx context.Context, emit func(model.Event)) error {
	scanner := bufio.NewScanner(r.R)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		ev, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		emit(ev)
		if r.Pace > 0 && !ev.IsHeader() {
			if !sleepCtx(ctx, r.Pace) {
				return nil
			}
		}
	}
	return scanner.Err()
}
