package source

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serialscope/serialscope/model"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.Event
		ok   bool
	}{
		{"comma row", "1,2,3", model.Event{Values: []float64{1, 2, 3}}, true},
		{"space row", "1.5 -2 3e2", model.Event{Values: []float64{1.5, -2, 300}}, true},
		{"tab row", "4\t5", model.Event{Values: []float64{4, 5}}, true},
		{"mixed separators", "1, 2,\t3", model.Event{Values: []float64{1, 2, 3}}, true},
		{"single value", "42", model.Event{Values: []float64{42}}, true},
		{"header", "temp,rpm,volts", model.Event{Names: []string{"temp", "rpm", "volts"}}, true},
		{"header with colons", "temp: rpm:", model.Event{Names: []string{"temp", "rpm"}}, true},
		{"mixed numeric and text dropped", "temp 1 2", model.Event{}, false},
		{"blank", "   ", model.Event{}, false},
		{"empty", "", model.Event{}, false},
		{"nan dropped", "1,nan,3", model.Event{}, false},
		{"inf dropped", "inf", model.Event{}, false},
		{"control bytes dropped", "1,2,\x00x", model.Event{}, false},
		{"underscore name ok", "ch_1,ch_2", model.Event{Names: []string{"ch_1", "ch_2"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReaderSourceStreamsEvents(t *testing.T) {
	in := "a,b\n1,2\nnot,1\n3,4\n\nnan,5\n"
	src := &ReaderSource{R: strings.NewReader(in), Name: "test"}

	var events []model.Event
	err := src.Run(context.Background(), func(ev model.Event) {
		events = append(events, ev)
	})
	require.NoError(t, err)

	require.Len(t, events, 3, "blank, garbled, and non-finite lines are dropped")
	require.Equal(t, []string{"a", "b"}, events[0].Names)
	require.Equal(t, []float64{1, 2}, events[1].Values)
	require.Equal(t, []float64{3, 4}, events[2].Values)
}

func TestReaderSourceCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &ReaderSource{R: strings.NewReader("1\n2\n3\n")}
	var n int
	err := src.Run(ctx, func(model.Event) { n++ })
	require.NoError(t, err)
	require.LessOrEqual(t, n, 1)
}

func TestSynthSourceDeclaresSchemaFirst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &SynthSource{Rate: 500}
	var events []model.Event
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = src.Run(ctx, func(ev model.Event) {
			events = append(events, ev)
			if len(events) >= 5 {
				cancel()
			}
		})
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("generator did not produce events in time")
	}

	require.GreaterOrEqual(t, len(events), 5)
	require.Equal(t, synthNames, events[0].Names)
	for _, ev := range events[1:] {
		require.Len(t, ev.Values, len(synthNames))
	}
}
