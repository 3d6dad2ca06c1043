package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/serialscope/serialscope/util"
)

// blockChart renders one channel as an area chart with Y-axis labels and
// sub-cell resolution using fractional block characters.
//
//	volts                                       now: 2.40
//	 3.0│
//	 2.0│          ████
//	 1.0│        ████████       ██
//	 0.0│████████████████████████████████████████
//	    └────────────────────────────────────────
//	    -8.5s                                now
func blockChart(data []float64, label string, width, height int, lo, hi float64,
	style lipgloss.Style, leftLabel, rightLabel string) string {

	if height < 2 {
		height = 2
	}
	if hi <= lo {
		hi = lo + 1
	}

	axisW := 7 // e.g. "  -1.5│"
	chartW := width - axisW - 1
	if chartW < 10 {
		chartW = 10
	}

	resampled := resampleData(data, chartW)

	subBlocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var sb strings.Builder

	last := float64(0)
	if len(resampled) > 0 {
		last = resampled[len(resampled)-1]
	}
	sb.WriteString(titleStyle.Render(label))
	sb.WriteString(dimStyle.Render("  now: " + util.FormatValue(last)))
	sb.WriteString("\n")

	rangeVal := hi - lo

	for row := height - 1; row >= 0; row-- {
		yVal := lo + (float64(row+1)/float64(height))*rangeVal
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%6s", util.FormatValue(yVal))))
		sb.WriteString(dimStyle.Render("│"))

		for col := 0; col < len(resampled); col++ {
			normalized := (resampled[col] - lo) / rangeVal * float64(height)

			cellBottom := float64(row)
			cellTop := float64(row + 1)

			var ch rune
			switch {
			case normalized >= cellTop:
				ch = '█'
			case normalized <= cellBottom:
				ch = ' '
			default:
				idx := int((normalized - cellBottom) * 8)
				if idx >= len(subBlocks) {
					idx = len(subBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				ch = subBlocks[idx]
			}

			if ch == ' ' {
				sb.WriteRune(' ')
			} else {
				sb.WriteString(style.Render(string(ch)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render(strings.Repeat(" ", axisW-1) + "└" + strings.Repeat("─", len(resampled))))

	if leftLabel != "" || rightLabel != "" {
		sb.WriteString("\n")
		gap := len(resampled) - len(leftLabel) - len(rightLabel) + axisW
		if gap < 1 {
			gap = 1
		}
		sb.WriteString(dimStyle.Render(strings.Repeat(" ", axisW-1) + leftLabel + strings.Repeat(" ", gap) + rightLabel))
	}

	return sb.String()
}

// resampleData reduces data to fit targetWidth columns by averaging each
// column's bucket of source values.
func resampleData(data []float64, targetWidth int) []float64 {
	if len(data) == 0 || len(data) <= targetWidth {
		return data
	}
	result := make([]float64, targetWidth)
	for i := 0; i < targetWidth; i++ {
		srcStart := i * len(data) / targetWidth
		srcEnd := (i + 1) * len(data) / targetWidth
		if srcEnd > len(data) {
			srcEnd = len(data)
		}
		if srcStart >= srcEnd {
			srcStart = srcEnd - 1
			if srcStart < 0 {
				srcStart = 0
			}
		}
		sum := float64(0)
		count := 0
		for j := srcStart; j < srcEnd; j++ {
			sum += data[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}

// niceRange computes display bounds around the data with ~10% headroom,
// rounded outward to a "nice" step so axis labels stay readable. An
// all-equal series still gets a nonzero span.
func niceRange(lo, hi float64) (float64, float64) {
	if hi < lo {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 {
		if lo == 0 {
			return -1, 1
		}
		span = math.Abs(lo) * 0.2
		lo, hi = lo-span/2, hi+span/2
	}
	pad := span * 0.1
	lo, hi = lo-pad, hi+pad

	step := niceStep((hi - lo) / 4)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	return lo, hi
}

// niceStep rounds a raw step up to the nearest 1/2/5 multiple.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// dataBounds returns the min and max over all series. ok is false when
// there is no data at all.
func dataBounds(series [][]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
			ok = true
		}
	}
	return lo, hi, ok
}

// clampSeries copies series with every value clamped into [lo, hi], for
// plotting against manual bounds.
func clampSeries(series [][]float64, lo, hi float64) [][]float64 {
	out := make([][]float64, len(series))
	for i, s := range series {
		out[i] = make([]float64, len(s))
		for j, v := range s {
			out[i][j] = math.Min(math.Max(v, lo), hi)
		}
	}
	return out
}
