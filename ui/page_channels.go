package ui

import (
	"fmt"
	"strings"

	"github.com/serialscope/serialscope/model"
	"github.com/serialscope/serialscope/util"
)

// renderChannelsPage shows per-channel statistics over the current
// viewport plus a detail chart of the selected channel.
func renderChannelsPage(snap model.Snapshot, selected, width, height int, lo, hi float64) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("CHANNELS"))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  (%d, window %d samples)", len(snap.Names), snap.Size)))
	sb.WriteString("\n\n")

	if len(snap.Names) == 0 {
		sb.WriteString(dimStyle.Render("  no channels registered yet"))
		return sb.String()
	}

	header := fmt.Sprintf("  %-12s %10s %10s %10s %10s", "name", "last", "min", "max", "mean")
	sb.WriteString(dimStyle.Render(header))
	sb.WriteString("\n")

	for ch, name := range snap.Names {
		last, mn, mx, mean := seriesStats(snap.Series[ch])
		line := fmt.Sprintf("  %-12s %10s %10s %10s %10s",
			name,
			util.FormatValue(last),
			util.FormatValue(mn),
			util.FormatValue(mx),
			util.FormatValue(mean),
		)
		if ch == selected {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(channelStyle(ch).Render(line))
		}
		sb.WriteString("\n")
	}

	// Detail chart for the selected channel.
	chartH := height - len(snap.Names) - 6
	if chartH >= 4 && selected < len(snap.Series) && snap.Size > 0 {
		sb.WriteString("\n")
		left := fmt.Sprintf("#%d", snap.Start)
		right := fmt.Sprintf("#%d", snap.End-1)
		sb.WriteString(blockChart(snap.Series[selected], snap.Names[selected],
			width-2, min(chartH, 10), lo, hi, channelStyle(selected), left, right))
	}

	return sb.String()
}

// seriesStats returns the last value and the min/max/mean of one series.
func seriesStats(s []float64) (last, lo, hi, mean float64) {
	if len(s) == 0 {
		return 0, 0, 0, 0
	}
	lo, hi = s[0], s[0]
	var sum float64
	for _, v := range s {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return s[len(s)-1], lo, hi, sum / float64(len(s))
}
