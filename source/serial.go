package source

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/serialscope/serialscope/model"
)

// reconnectDelay spaces out reopen attempts after a port error; boards
// reset and USB adapters re-enumerate, so the port usually comes back.
const reconnectDelay = 2 * time.Second

// SerialSource reads newline-framed text from a serial port.
type SerialSource struct {
	Port string
	Baud int

	// Status is updated with the last transport state ("connected",
	// open errors) for the UI status bar. Optional.
	Status func(string)
}

// ListPorts enumerates the serial ports visible to the OS.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Describe returns the port and baud for the status bar.
func (s *SerialSource) Describe() string {
	return fmt.Sprintf("%s @ %d", s.Port, s.Baud)
}

// Run opens the port and emits parsed lines until ctx is cancelled. Read
// and open errors trigger a close-and-reopen loop rather than a failure:
// transient noise must not interrupt a live stream.
func (s *SerialSource) Run(ctx context.Context, emit func(model.Event)) error {
	mode := &serial.Mode{BaudRate: s.Baud}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		port, err := serial.Open(s.Port, mode)
		if err != nil {
			s.status(fmt.Sprintf("open %s: %v", s.Port, err))
			if !sleepCtx(ctx, reconnectDelay) {
				return nil
			}
			continue
		}
		s.status("connected")

		// Close the port on cancellation to unblock the pending Read.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				port.Close()
			case <-done:
			}
		}()

		scanner := bufio.NewScanner(port)
		scanner.Buffer(make([]byte, 0, 4*1024), 256*1024)
		for scanner.Scan() {
			if ev, ok := ParseLine(scanner.Text()); ok {
				emit(ev)
			}
		}
		close(done)
		port.Close()

		if ctx.Err() != nil {
			return nil
		}
		s.status(fmt.Sprintf("lost %s, reconnecting", s.Port))
		if !sleepCtx(ctx, reconnectDelay) {
			return nil
		}
	}
}

func (s *SerialSource) status(msg string) {
	if s.Status != nil {
		s.Status(msg)
	}
}

// sleepCtx sleeps for d unless ctx is cancelled first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
