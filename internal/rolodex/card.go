package rolodex

import (
	"fmt"

	"github.com/agustinfitipaldi/blood/internal/store"
)

// BorderStyle selects the border glyph set for a card.
type BorderStyle int

const (
	// BorderSingle is the thin border used for neighbor cards.
	BorderSingle BorderStyle = iota
	// BorderDouble is the heavy border used for the current card.
	BorderDouble
)

// borderGlyphs is one complete border glyph set.
type borderGlyphs struct {
	tl, tr, bl, br rune
	h, v           rune
	divL, divR     rune
}

var borders = map[BorderStyle]borderGlyphs{
	BorderSingle: {tl: '┌', tr: '┐', bl: '└', br: '┘', h: '─', v: '│', divL: '├', divR: '┤'},
	BorderDouble: {tl: '╔', tr: '╗', bl: '╚', br: '╝', h: '═', v: '║', divL: '╟', divR: '╢'},
}

// CardOpts controls card geometry and emphasis.
type CardOpts struct {
	Width  int
	Height int
	Border BorderStyle
	Dimmed bool
}

// Value-row budget per card. The most recent entries render oldest to newest,
// top to bottom.
const cardValueRows = 3

// CardGraphSize returns the exact dimensions of the graph sub-region for the
// given card geometry. The graph renderer must be called with these so the
// card can embed its output without measuring.
func CardGraphSize(opts CardOpts) (width, height int) {
	return opts.Width - 4, opts.Height - 8
}

// FormatCard renders one component card: border, centered header, up to
// three recent value rows, and the embedded trend graph. A nil graph leaves
// the reserved region blank, which is how neighbor cards render.
func FormatCard(c store.Component, recent []store.Entry, graph *Grid, opts CardOpts) Grid {
	g := NewGrid(opts.Width, opts.Height)
	bd := borders[opts.Border]

	role := func(r Role) Role {
		if opts.Dimmed {
			return Dim(r)
		}
		return r
	}

	drawBorder(g, bd, role(RoleBorder))
	drawDivider(g, bd, 2, role(RoleBorder))
	drawDivider(g, bd, 2+cardValueRows+1, role(RoleBorder))

	inner := opts.Width - 4

	// Header: component name and unit, centered.
	header := fmt.Sprintf("%s (%s)", c.Name, c.Unit)
	g.SetStringCentered(1, truncate(header, inner), role(RoleTitle))

	// Value rows.
	if len(recent) == 0 {
		g.SetString(2, 3, "No data yet", role(RoleText))
	} else {
		if len(recent) > cardValueRows {
			recent = recent[len(recent)-cardValueRows:]
		}
		for i, e := range recent {
			drawValueRow(g, c, e, 3+i, inner, opts.Dimmed)
		}
	}

	// Graph region.
	if graph != nil {
		g.Blit(2, 2+cardValueRows+2, *graph)
	}

	return g
}

// drawValueRow writes one "date → value unit" line, emphasizing the value
// and flagging it when it falls outside the component's normal range.
func drawValueRow(g Grid, c store.Component, e store.Entry, y, inner int, dimmed bool) {
	role := func(r Role) Role {
		if dimmed {
			return Dim(r)
		}
		return r
	}

	valueRole := role(RoleValue)
	if outOfRange(c, e.Value) {
		valueRole = role(RoleAccent)
	}

	x := 2
	g.SetString(x, y, e.Date, role(RoleText))
	x += len(e.Date)
	g.SetString(x, y, "  →  ", RoleMuted)
	x += 5

	value := fmt.Sprintf("%.2f", e.Value)
	g.SetString(x, y, value, valueRole)
	x += len(value)

	unit := " " + c.Unit
	if x-2+len(unit) > inner {
		unit = truncate(unit, inner-(x-2))
	}
	g.SetString(x, y, unit, role(RoleText))
}

// outOfRange reports whether a value falls outside the normal band. Each
// bound is checked independently since either may be absent.
func outOfRange(c store.Component, v float64) bool {
	if c.NormalMin != nil && v < *c.NormalMin {
		return true
	}
	if c.NormalMax != nil && v > *c.NormalMax {
		return true
	}
	return false
}

func drawBorder(g Grid, bd borderGlyphs, role Role) {
	w, h := g.Width(), g.Height()
	g.Set(0, 0, bd.tl, role)
	g.Set(w-1, 0, bd.tr, role)
	g.Set(0, h-1, bd.bl, role)
	g.Set(w-1, h-1, bd.br, role)
	g.HLine(1, 0, w-2, bd.h, role)
	g.HLine(1, h-1, w-2, bd.h, role)
	for y := 1; y < h-1; y++ {
		g.Set(0, y, bd.v, role)
		g.Set(w-1, y, bd.v, role)
	}
}

// drawDivider draws a horizontal rule joined to the side borders.
func drawDivider(g Grid, bd borderGlyphs, y int, role Role) {
	g.Set(0, y, bd.divL, role)
	g.HLine(1, y, g.Width()-2, '─', role)
	g.Set(g.Width()-1, y, bd.divR, role)
}

// truncate shortens a string to maxLen runes, adding an ellipsis when it cuts.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return ""
	}
	return string(runes[:maxLen-1]) + "…"
}
