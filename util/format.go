package util

import (
	"fmt"
	"math"
	"time"
)

// FormatValue renders a sample value compactly for axis labels and
// status lines: integers without decimals, small magnitudes with a few,
// extremes in scientific notation.
func FormatValue(v float64) string {
	av := math.Abs(v)
	switch {
	case v == math.Trunc(v) && av < 1e6:
		return fmt.Sprintf("%.0f", v)
	case av >= 1e6 || (av < 1e-3 && av > 0):
		return fmt.Sprintf("%.2g", v)
	case av >= 100:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatDuration formats a duration as "XmYs" or "X.Ys" for time-axis
// labels.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	s := d.Seconds()
	if s >= 60 {
		return fmt.Sprintf("%dm%ds", int(s)/60, int(s)%60)
	}
	if s >= 10 {
		return fmt.Sprintf("%ds", int(s))
	}
	return fmt.Sprintf("%.1fs", s)
}
