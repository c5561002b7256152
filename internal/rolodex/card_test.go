package rolodex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agustinfitipaldi/blood/internal/store"
)

func floatPtr(v float64) *float64 { return &v }

func testComponent() store.Component {
	return store.Component{
		ID:        1,
		Name:      "HbA1c",
		Unit:      "mmol/mol",
		NormalMin: floatPtr(20),
		NormalMax: floatPtr(42),
	}
}

func fullOpts() CardOpts {
	return CardOpts{Width: FullCardWidth, Height: FullCardHeight, Border: BorderDouble}
}

func neighborOpts() CardOpts {
	return CardOpts{Width: NeighborCardWidth, Height: NeighborCardHeight, Border: BorderSingle, Dimmed: true}
}

func TestFormatCardExactSize(t *testing.T) {
	tests := []struct {
		name string
		opts CardOpts
	}{
		{"full card", fullOpts()},
		{"neighbor card", neighborOpts()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := FormatCard(testComponent(), nil, nil, tt.opts)
			assert.Equal(t, tt.opts.Width, g.Width())
			assert.Equal(t, tt.opts.Height, g.Height())
		})
	}
}

func TestFormatCardBorderGlyphs(t *testing.T) {
	t.Run("double border for the current card", func(t *testing.T) {
		g := FormatCard(testComponent(), nil, nil, fullOpts())
		w, h := g.Width(), g.Height()
		assert.Equal(t, '╔', g.Get(0, 0).Rune)
		assert.Equal(t, '╗', g.Get(w-1, 0).Rune)
		assert.Equal(t, '╚', g.Get(0, h-1).Rune)
		assert.Equal(t, '╝', g.Get(w-1, h-1).Rune)
		assert.Equal(t, '║', g.Get(0, 5).Rune)
		assert.Equal(t, '═', g.Get(5, 0).Rune)
		assert.Equal(t, '╟', g.Get(0, 2).Rune)
		assert.Equal(t, '╢', g.Get(w-1, 2).Rune)
	})

	t.Run("single border for neighbors", func(t *testing.T) {
		g := FormatCard(testComponent(), nil, nil, neighborOpts())
		w, h := g.Width(), g.Height()
		assert.Equal(t, '┌', g.Get(0, 0).Rune)
		assert.Equal(t, '┐', g.Get(w-1, 0).Rune)
		assert.Equal(t, '└', g.Get(0, h-1).Rune)
		assert.Equal(t, '┘', g.Get(w-1, h-1).Rune)
	})
}

func TestFormatCardHeader(t *testing.T) {
	g := FormatCard(testComponent(), nil, nil, fullOpts())
	assert.Contains(t, g.Row(1), "HbA1c (mmol/mol)")
}

func TestFormatCardHeaderTruncated(t *testing.T) {
	c := testComponent()
	c.Name = strings.Repeat("x", 100)
	g := FormatCard(c, nil, nil, fullOpts())

	header := g.Row(1)
	assert.Contains(t, header, "…")
	// Border must survive an oversized header
	assert.Equal(t, '║', g.Get(0, 1).Rune)
	assert.Equal(t, '║', g.Get(g.Width()-1, 1).Rune)
}

func TestFormatCardNoData(t *testing.T) {
	g := FormatCard(testComponent(), nil, nil, fullOpts())
	assert.Contains(t, g.Row(3), "No data yet")
}

func TestFormatCardValueRows(t *testing.T) {
	entries := []store.Entry{
		{Date: "2025-01-01", Value: 39.8},
		{Date: "2025-02-01", Value: 41.2},
	}
	g := FormatCard(testComponent(), entries, nil, fullOpts())

	assert.Contains(t, g.Row(3), "2025-01-01")
	assert.Contains(t, g.Row(3), "39.80")
	assert.Contains(t, g.Row(3), "mmol/mol")
	assert.Contains(t, g.Row(4), "2025-02-01")
	assert.Contains(t, g.Row(4), "41.20")
}

func TestFormatCardKeepsNewestThree(t *testing.T) {
	entries := []store.Entry{
		{Date: "2025-01-01", Value: 1},
		{Date: "2025-02-01", Value: 2},
		{Date: "2025-03-01", Value: 3},
		{Date: "2025-04-01", Value: 4},
	}
	g := FormatCard(testComponent(), entries, nil, fullOpts())

	plain := g.Plain()
	assert.NotContains(t, plain, "2025-01-01")
	assert.Contains(t, g.Row(3), "2025-02-01")
	assert.Contains(t, g.Row(5), "2025-04-01")
}

func TestFormatCardOutOfRangeAccent(t *testing.T) {
	entries := []store.Entry{
		{Date: "2025-01-01", Value: 50}, // above max 42
		{Date: "2025-02-01", Value: 30}, // inside
	}
	g := FormatCard(testComponent(), entries, nil, fullOpts())

	roleAt := func(y int, substr string) Role {
		row := g.Row(y)
		x := strings.Index(row, substr)
		require.GreaterOrEqual(t, x, 0)
		return g.Get(x, y).Role
	}

	assert.Equal(t, RoleAccent, roleAt(3, "50.00"))
	assert.Equal(t, RoleValue, roleAt(4, "30.00"))
}

func TestFormatCardDimmedRoles(t *testing.T) {
	entries := []store.Entry{{Date: "2025-01-01", Value: 30}}
	g := FormatCard(testComponent(), entries, nil, neighborOpts())

	assert.Equal(t, RoleBorderDim, g.Get(0, 0).Role)

	row := g.Row(1)
	x := strings.Index(row, "HbA1c")
	require.GreaterOrEqual(t, x, 0)
	assert.Equal(t, RoleTitleDim, g.Get(x, 1).Role)
}

func TestFormatCardEmbedsGraph(t *testing.T) {
	opts := fullOpts()
	gw, gh := CardGraphSize(opts)
	assert.Equal(t, opts.Width-4, gw)
	assert.Equal(t, opts.Height-8, gh)

	graph := NewGrid(gw, gh)
	graph.Set(0, 0, '●', RolePoint)
	graph.Set(gw-1, gh-1, '●', RolePoint)

	g := FormatCard(testComponent(), nil, &graph, opts)

	// Graph origin lands just inside the second divider
	assert.Equal(t, '●', g.Get(2, 7).Rune)
	assert.Equal(t, '●', g.Get(2+gw-1, 7+gh-1).Rune)
	// Bottom border is intact below the graph region
	assert.Equal(t, '╚', g.Get(0, opts.Height-1).Rune)
}

func TestOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		min  *float64
		max  *float64
		v    float64
		want bool
	}{
		{"inside both bounds", floatPtr(20), floatPtr(42), 30, false},
		{"below min", floatPtr(20), floatPtr(42), 10, true},
		{"above max", floatPtr(20), floatPtr(42), 50, true},
		{"only min set, below", floatPtr(20), nil, 10, true},
		{"only max set, above", nil, floatPtr(42), 50, true},
		{"no bounds", nil, nil, 1e9, false},
		{"exactly on bound", floatPtr(20), floatPtr(42), 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := store.Component{NormalMin: tt.min, NormalMax: tt.max}
			assert.Equal(t, tt.want, outOfRange(c, tt.v))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "", truncate("abc", 1))
}
