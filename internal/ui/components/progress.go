package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/adaptlearn/internal/ui/theme"
)

const (
	gaugeMinCells   = 4
	gaugeSuffixSize = 6 // "  100%"
)

// Gauge is a labelled horizontal bar for a ratio in [0, 1]. Mark, when set,
// draws a tick at that ratio (the fast-speed threshold in progress views).
type Gauge struct {
	Label       string
	Ratio       float64
	Mark        float64
	ShowPercent bool
	Width       int
}

// NewGauge returns a gauge without a threshold mark.
func NewGauge(label string, ratio float64, showPercent bool, width int) Gauge {
	return Gauge{Label: label, Ratio: ratio, ShowPercent: showPercent, Width: width}
}

// WithMark returns a copy of g with a threshold tick at ratio.
func (g Gauge) WithMark(ratio float64) Gauge {
	g.Mark = ratio
	return g
}

func (g Gauge) View() string {
	var b strings.Builder
	if g.Label != "" {
		b.WriteString(theme.Body.Render(g.Label) + "  ")
	}

	cells := g.Width - lipgloss.Width(b.String())
	if g.ShowPercent {
		cells -= gaugeSuffixSize
	}
	cells = max(cells, gaugeMinCells)

	ratio := clamp01(g.Ratio)
	filled := int(float64(cells) * ratio)
	mark := -1
	if g.Mark > 0 && g.Mark < 1 {
		mark = int(math.Round(float64(cells) * g.Mark))
	}

	for i := 0; i < cells; i++ {
		switch {
		case i == mark:
			b.WriteString(theme.Warn.Render("┃"))
		case i < filled:
			b.WriteString(theme.ProgressFilled.Render("█"))
		default:
			b.WriteString(theme.ProgressEmpty.Render("░"))
		}
	}

	if g.ShowPercent {
		b.WriteString(theme.Subtitle.Render(fmt.Sprintf("  %d%%", int(ratio*100))))
	}
	return b.String()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return min(v, 1)
}
