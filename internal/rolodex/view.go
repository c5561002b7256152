package rolodex

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/agustinfitipaldi/blood/internal/store"
)

// FrameTitle is the header shown on every carousel frame.
const FrameTitle = "BLOOD PANEL"

// View implements tea.Model. Rendering reads only state cached by the last
// refresh, so calling it repeatedly without events yields identical output.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.mode {
	case ViewForm:
		return m.viewForm()
	case ViewDetail:
		return m.viewDetail()
	}

	return m.RenderFrame(m.width, m.height).String()
}

// RenderFrame composes the complete carousel frame for the given screen size.
// It is exposed separately from View so tests can inspect exact buffers at
// chosen dimensions.
func (m Model) RenderFrame(width, height int) Grid {
	// Before the first WindowSizeMsg arrives the size is unknown; render at
	// the design minimum rather than emitting an empty frame.
	if width <= 0 || height <= 0 {
		width, height = m.minWidth, m.minHeight
	}

	if width < m.minWidth || height < m.minHeight {
		return m.calibrationFrame(width, height)
	}
	if m.err != nil {
		return m.errorFrame(width, height)
	}

	in := FrameInput{
		Title: FrameTitle,
		Hints: KeyHints,
	}
	if m.status != "" {
		in.Hints = m.status
	}

	count := len(m.components)
	if count == 0 {
		return Compose(in, width, height)
	}

	cur := m.components[m.nav.Index()]
	in.Position = fmt.Sprintf("%d/%d", m.nav.Index()+1, count)
	in.Current = m.currentCard(cur)

	if count > 1 {
		next := m.components[(m.nav.Index()+1)%count]
		in.Next = m.neighborCard(next)
	}
	if count > 2 {
		prev := m.components[(m.nav.Index()-1+count)%count]
		in.Prev = m.neighborCard(prev)
	}

	return Compose(in, width, height)
}

// currentCard builds the full-scale card with its embedded trend graph.
func (m Model) currentCard(c store.Component) *Grid {
	opts := CardOpts{
		Width:  FullCardWidth,
		Height: FullCardHeight,
		Border: BorderDouble,
	}

	d := m.data[c.ID]
	gw, gh := CardGraphSize(opts)
	graph := RenderGraph(seriesPoints(d.series), gw, gh, normalRangeOf(c))

	card := FormatCard(c, d.recent, &graph, opts)
	return &card
}

// neighborCard builds a reduced, dimmed card without a graph.
func (m Model) neighborCard(c store.Component) *Grid {
	card := FormatCard(c, m.data[c.ID].recent, nil, CardOpts{
		Width:  NeighborCardWidth,
		Height: NeighborCardHeight,
		Border: BorderSingle,
		Dimmed: true,
	})
	return &card
}

// calibrationFrame asks the user to resize. Everything is centered so it
// stays legible at any undersized geometry.
func (m Model) calibrationFrame(width, height int) Grid {
	g := NewGrid(width, height)
	mid := height / 2
	g.SetStringCentered(mid-2, "TERMINAL TOO SMALL", RoleAccent)
	g.SetStringCentered(mid, fmt.Sprintf("current  %d×%d", width, height), RoleText)
	g.SetStringCentered(mid+1, fmt.Sprintf("required %d×%d", m.minWidth, m.minHeight), RoleText)
	g.SetStringCentered(mid+3, "resize the terminal to continue", RoleMuted)
	return g
}

// errorFrame replaces the carousel after a data provider failure. A clearly
// marked error beats a stale or half-drawn frame.
func (m Model) errorFrame(width, height int) Grid {
	g := NewGrid(width, height)
	mid := height / 2
	g.SetStringCentered(mid-1, "✗ data unavailable", RoleAccent)
	g.SetStringCentered(mid+1, truncate(firstLine(m.err), width-4), RoleText)
	g.SetStringCentered(height-1, "q quit", RoleMuted)
	return g
}

// viewForm renders the active form with a small header naming the selected
// component, when there is one.
func (m Model) viewForm() string {
	var b strings.Builder
	if cur, ok := m.Selected(); ok {
		header := StyleFor(RoleTitle).Render(fmt.Sprintf("%s (%s)", cur.Name, cur.Unit))
		b.WriteString(header)
		b.WriteString("\n\n")
	}
	b.WriteString(m.form.View())
	return b.String()
}

// viewDetail renders the scrollable full history for the selected component.
func (m Model) viewDetail() string {
	cur, ok := m.Selected()
	if !ok {
		return ""
	}

	title := fmt.Sprintf("%s (%s)", cur.Name, cur.Unit)
	if cur.LongTitle != "" {
		title = fmt.Sprintf("%s · %s (%s)", cur.Name, cur.LongTitle, cur.Unit)
	}

	header := StyleFor(RoleTitle).Render(title)
	footer := StyleFor(RoleMuted).Render("esc back · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.detail.View(), footer)
}

// setDetailContent rebuilds the detail viewport from the cached history.
func (m *Model) setDetailContent() {
	cur, ok := m.Selected()
	if !ok {
		m.detail.SetContent("")
		return
	}

	series := m.data[cur.ID].series
	if len(series) == 0 {
		m.detail.SetContent(StyleFor(RoleMuted).Render("No entries recorded."))
		return
	}

	var b strings.Builder
	for i := len(series) - 1; i >= 0; i-- {
		e := series[i]
		valueRole := RoleValue
		if outOfRange(cur, e.Value) {
			valueRole = RoleAccent
		}

		b.WriteString(StyleFor(RoleText).Render(e.Date))
		b.WriteString("  ")
		b.WriteString(StyleFor(valueRole).Render(fmt.Sprintf("%8.2f %s", e.Value, cur.Unit)))
		if e.Notes != "" {
			b.WriteString("  ")
			b.WriteString(StyleFor(RoleMuted).Render(e.Notes))
		}
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	m.detail.SetContent(b.String())
}

// resizeDetail fits the viewport inside the current screen, leaving rows for
// the header and footer.
func (m *Model) resizeDetail() {
	w, h := m.width, m.height
	if w <= 0 || h <= 0 {
		w, h = m.minWidth, m.minHeight
	}
	vh := h - 3
	if vh < 1 {
		vh = 1
	}
	if !m.detailReady {
		m.detail = viewport.New(w, vh)
		m.detailReady = true
		return
	}
	m.detail.Width = w
	m.detail.Height = vh
}

// seriesPoints converts stored entries to graph points, preserving order.
func seriesPoints(entries []store.Entry) []Point {
	points := make([]Point, len(entries))
	for i, e := range entries {
		points[i] = Point{Date: e.Date, Value: e.Value}
	}
	return points
}

// normalRangeOf returns the graph guide band, or nil unless both bounds are
// set. A single open bound still colors out-of-range values on the card but
// is not drawn as a band.
func normalRangeOf(c store.Component) *NormalRange {
	if !c.HasNormalRange() {
		return nil
	}
	return &NormalRange{Min: *c.NormalMin, Max: *c.NormalMax}
}
