package rolodex

import "strings"

// Role identifies the visual function of a cell. Styling is resolved at
// render time through StyleFor, so the grid itself stays a plain value type
// that tests can inspect without parsing ANSI sequences.
type Role uint8

const (
	RoleBackground Role = iota
	RoleBorder
	RoleBorderDim
	RoleTitle
	RoleTitleDim
	RoleText
	RoleTextDim
	RoleValue
	RoleValueDim
	RoleAccent
	RolePoint
	RoleGuide
	RoleMuted
)

// Cell is one character of a rendered frame plus its style role.
type Cell struct {
	Rune rune
	Role Role
}

// Grid is a fixed-size matrix of styled cells. It is the unit of composition
// for cards, graphs, and the final screen buffer. All drawing operations clip
// at the edges; nothing wraps and nothing panics on out-of-range coordinates.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid creates a width×height grid filled with background blanks.
func NewGrid(width, height int) Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = Cell{Rune: ' ', Role: RoleBackground}
		}
		cells[y] = row
	}
	return Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width in cells.
func (g Grid) Width() int { return g.width }

// Height returns the grid height in rows.
func (g Grid) Height() int { return g.height }

// Set writes a single cell, ignoring out-of-range coordinates.
func (g Grid) Set(x, y int, r rune, role Role) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = Cell{Rune: r, Role: role}
}

// Get reads a single cell. Out-of-range coordinates read as background.
func (g Grid) Get(x, y int) Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Cell{Rune: ' ', Role: RoleBackground}
	}
	return g.cells[y][x]
}

// SetString writes a string left-to-right starting at (x, y), clipping at the
// right edge.
func (g Grid) SetString(x, y int, s string, role Role) {
	for i, r := range []rune(s) {
		g.Set(x+i, y, r, role)
	}
}

// SetStringCentered writes a string horizontally centered on row y.
func (g Grid) SetStringCentered(y int, s string, role Role) {
	runes := []rune(s)
	g.SetString((g.width-len(runes))/2, y, s, role)
}

// HLine draws a horizontal run of the same rune.
func (g Grid) HLine(x, y, length int, r rune, role Role) {
	for i := 0; i < length; i++ {
		g.Set(x+i, y, r, role)
	}
}

// Blit copies src onto g with src's origin at (x, y), clipping at all edges.
func (g Grid) Blit(x, y int, src Grid) {
	for sy := 0; sy < src.height; sy++ {
		for sx := 0; sx < src.width; sx++ {
			g.Set(x+sx, y+sy, src.cells[sy][sx].Rune, src.cells[sy][sx].Role)
		}
	}
}

// String renders the grid with lipgloss styles applied. Runs of equal roles
// are styled together to keep the escape-sequence overhead down.
func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		x := 0
		for x < g.width {
			role := g.cells[y][x].Role
			var run strings.Builder
			for x < g.width && g.cells[y][x].Role == role {
				run.WriteRune(g.cells[y][x].Rune)
				x++
			}
			b.WriteString(StyleFor(role).Render(run.String()))
		}
	}
	return b.String()
}

// Plain renders the grid without styling. Intended for tests and debugging.
func (g Grid) Plain() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.cells[y][x].Rune)
		}
	}
	return b.String()
}

// Row returns one row of the grid as an unstyled string.
func (g Grid) Row(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var b strings.Builder
	for x := 0; x < g.width; x++ {
		b.WriteRune(g.cells[y][x].Rune)
	}
	return b.String()
}
