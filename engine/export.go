package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
)

// ExportCSV writes every retained row as flat CSV: a header of
// index,time plus the channel names, then one line per row, oldest
// first. The dump is taken under the engine lock so a concurrent append
// cannot tear it.
func (e *Engine) ExportCSV(w io.Writer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	names := e.store.Names()
	if len(names) == 0 {
		return fmt.Errorf("export: no channels registered")
	}

	cw := csv.NewWriter(w)
	header := append([]string{"index", "time"}, names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, len(header))
	for i := e.store.Oldest(); i < e.store.Total(); i++ {
		rec[0] = strconv.FormatUint(i, 10)
		rec[1] = e.store.TimeAt(i).Format(time.RFC3339Nano)
		for ch := range names {
			rec[2+ch] = strconv.FormatFloat(e.store.At(ch, i), 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportPNG renders the current viewport as a PNG line chart, one series
// per channel, X axis in sample indices.
func (e *Engine) ExportPNG(w io.Writer, width, height int) error {
	snap := e.Snapshot()
	if snap.Size == 0 {
		return fmt.Errorf("export: viewport is empty")
	}

	xs := make([]float64, snap.Size)
	for i := range xs {
		xs[i] = float64(snap.Start + uint64(i))
	}

	series := make([]chart.Series, 0, len(snap.Series))
	for ch, ys := range snap.Series {
		series = append(series, chart.ContinuousSeries{
			Name:    snap.Names[ch],
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Width:  width,
		Height: height,
		XAxis:  chart.XAxis{Name: "sample"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
