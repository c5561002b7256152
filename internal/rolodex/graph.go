package rolodex

import (
	"fmt"
	"math"
	"strconv"
)

// Point is one dated value in a trend series, oldest first.
type Point struct {
	Date  string // YYYY-MM-DD
	Value float64
}

// NormalRange is the clinically-normal band drawn as guide rows on a graph.
type NormalRange struct {
	Min float64
	Max float64
}

// GraphPlaceholder is shown when a series is too short to graph. Fewer than
// two entries is a defined display state, not an error.
const GraphPlaceholder = "need 2+ entries for graph"

const (
	pointGlyph    = '●'
	guideGlyph    = '┄'
	baselineGlyph = '─'
	dateLabelLen  = 5 // MM-DD
)

// RenderGraph plots a series into a grid of exactly width×height cells with
// an auto-computed Y scale. The returned size is a hard contract: the card
// formatter embeds the grid without measuring it.
//
// Layout: a left gutter holds three Y tick labels, the bottom two rows hold
// the baseline and periodic date labels, and the remaining cells are the
// plotting area. Each point maps to a cell by linear interpolation on both
// axes, rounded to nearest.
func RenderGraph(series []Point, width, height int, normal *NormalRange) Grid {
	g := NewGrid(width, height)

	if len(series) < 2 {
		g.SetStringCentered(height/2, GraphPlaceholder, RoleMuted)
		return g
	}

	yLo, yHi := graphScale(series)

	// Gutter sized to the widest tick label.
	labels := [3]string{
		formatTick(yHi),
		formatTick((yHi + yLo) / 2),
		formatTick(yLo),
	}
	gutter := 0
	for _, l := range labels {
		if len(l) > gutter {
			gutter = len(l)
		}
	}
	gutter++

	plotW := width - gutter
	plotH := height - 2
	if plotW < 2 || plotH < 2 {
		// Too cramped for axes; degrade to the placeholder instead of
		// rendering a misleading plot.
		g.SetStringCentered(height/2, GraphPlaceholder, RoleMuted)
		return g
	}
	plotBottom := plotH - 1

	// Y tick labels at top, middle, and bottom of the plotting area,
	// right-aligned in the gutter.
	tickRows := [3]int{0, plotBottom / 2, plotBottom}
	for i, label := range labels {
		g.SetString(gutter-1-len(label), tickRows[i], label, RoleMuted)
	}

	// Normal range guides go in first so point glyphs win the cell. Bounds
	// beyond the data scale clamp to the plot edges, so the band stays
	// oriented even when every value sits outside it.
	if normal != nil {
		for _, bound := range []float64{normal.Min, normal.Max} {
			row := mapRow(bound, yLo, yHi, plotBottom)
			g.HLine(gutter, row, plotW, guideGlyph, RoleGuide)
		}
	}

	// Baseline under the plotting area.
	g.HLine(gutter, height-2, plotW, baselineGlyph, RoleMuted)

	// Points.
	n := len(series)
	for i, p := range series {
		col := gutter + roundToInt(float64(i)*float64(plotW-1)/float64(n-1))
		row := mapRow(p.Value, yLo, yHi, plotBottom)
		g.Set(col, row, pointGlyph, RolePoint)
	}

	// Date labels along the baseline, stride chosen so labels never overlap.
	spacing := float64(plotW-1) / float64(n-1)
	stride := 1
	if spacing < dateLabelLen+1 {
		stride = int(math.Ceil(float64(dateLabelLen+1) / spacing))
	}
	lastEnd := -1
	for i := 0; i < n; i += stride {
		col := gutter + roundToInt(float64(i)*float64(plotW-1)/float64(n-1))
		label := shortDate(series[i].Date)
		start := col - len(label)/2
		if start < gutter {
			start = gutter
		}
		if start+len(label) > width {
			start = width - len(label)
		}
		if start <= lastEnd {
			continue
		}
		g.SetString(start, height-1, label, RoleMuted)
		lastEnd = start + len(label)
	}

	return g
}

// graphScale computes the visible Y range: data min/max expanded by 10% of
// the span on each side, or a fixed unit span when every value is equal.
func graphScale(series []Point) (lo, hi float64) {
	lo, hi = series[0].Value, series[0].Value
	for _, p := range series {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}

	span := hi - lo
	if span == 0 {
		return lo - 0.5, hi + 0.5
	}
	margin := span * 0.1
	return lo - margin, hi + margin
}

// mapRow maps a value onto a plot row, row 0 being the top.
func mapRow(v, yLo, yHi float64, plotBottom int) int {
	norm := (v - yLo) / (yHi - yLo)
	row := plotBottom - roundToInt(norm*float64(plotBottom))
	if row < 0 {
		row = 0
	}
	if row > plotBottom {
		row = plotBottom
	}
	return row
}

// formatTick renders a Y tick label on the raw numeric scale.
func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 10000 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return fmt.Sprintf("%.1f", v)
}

// shortDate shortens YYYY-MM-DD to MM-DD for axis labels.
func shortDate(date string) string {
	if len(date) == 10 {
		return date[5:]
	}
	return date
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}
