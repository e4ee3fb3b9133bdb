package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// WeightChart plots a weight-over-time series as a line graph. A
// single point is padded so the plot library has a segment to draw.
func WeightChart(series []float64, width, height int) string {
	if len(series) == 0 {
		return DimStyle.Render("no history recorded")
	}
	if len(series) == 1 {
		series = append(series, series[0])
	}
	return asciigraph.Plot(series,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption("error weight"),
	)
}

// Sparkline renders a compact one-line view of a series.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	step := float64(len(values)) / float64(width)
	if step < 1 {
		step = 1
	}
	for i := 0; i < width && int(float64(i)*step) < len(values); i++ {
		v := values[int(float64(i)*step)]
		idx := int((v - min) / rng * float64(len(chars)-1))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
