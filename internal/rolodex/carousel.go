package rolodex

// Card and screen geometry. The current card renders full scale with its
// graph; neighbors render at roughly 75% scale, dimmed, without a graph.
const (
	FullCardWidth  = 64
	FullCardHeight = 30

	NeighborCardWidth  = 48
	NeighborCardHeight = 22

	// Gap between the current card and each neighbor. Neighbors that do
	// not fit are clipped at the screen edge, never wrapped.
	neighborGap = 2

	// Minimum terminal size the layout is designed for. Below this the
	// shell gates on a calibration screen; the layout itself degrades by
	// truncation rather than failing.
	MinScreenWidth  = 120
	MinScreenHeight = 40
)

// EmptyStatePrompt is the frame content when no components exist.
const EmptyStatePrompt = "No components found. Press 'c' to create one."

// FrameInput is everything the carousel needs to compose one frame.
// Prev and Next are nil when the component count leaves no neighbor to show;
// at count 2 the single neighbor appears on the next side only.
type FrameInput struct {
	Current *Grid
	Prev    *Grid
	Next    *Grid

	Title    string
	Position string // e.g. "3/7"
	Hints    string
}

// Compose lays the visible cards into a screen buffer of exactly
// width×height cells. Every cell not covered by a card or chrome carries the
// explicit background role, so no stale content survives from earlier frames.
func Compose(in FrameInput, width, height int) Grid {
	g := NewGrid(width, height)

	// Header: title on the left, carousel position on the right.
	g.SetString(2, 0, in.Title, RoleTitle)
	if in.Position != "" {
		g.SetString(width-2-len(in.Position), 0, in.Position, RoleMuted)
	}

	// Footer key hints.
	if in.Hints != "" {
		g.SetStringCentered(height-1, in.Hints, RoleMuted)
	}

	if in.Current == nil {
		g.SetStringCentered(height/2, EmptyStatePrompt, RoleText)
		return g
	}

	// Card area excludes the header and footer rows.
	areaTop := 1
	areaHeight := height - 2

	curW, curH := in.Current.Width(), in.Current.Height()
	curX := (width - curW) / 2
	curY := areaTop + (areaHeight-curH)/2
	if curY < areaTop {
		curY = areaTop
	}

	if in.Prev != nil {
		x := curX - neighborGap - in.Prev.Width()
		y := areaTop + (areaHeight-in.Prev.Height())/2
		g.Blit(x, y, *in.Prev)
	}
	if in.Next != nil {
		x := curX + curW + neighborGap
		y := areaTop + (areaHeight-in.Next.Height())/2
		g.Blit(x, y, *in.Next)
	}

	// Current card last so clipped neighbors can never bleed into it.
	g.Blit(curX, curY, *in.Current)

	return g
}
