package rolodex

import "github.com/charmbracelet/lipgloss"

// Rolodex color palette - 80s neon over a black card table
const (
	ColorVoid = lipgloss.Color("#000000") // Background black

	// Card chrome - bright red for the current card, embers for neighbors
	ColorCrimson    = lipgloss.Color("#FF0000") // Bright red
	ColorCrimsonDim = lipgloss.Color("#800000") // Dark red

	// Text colors
	ColorEmber    = lipgloss.Color("#FF5050") // Light red
	ColorEmberDim = lipgloss.Color("#B43232") // Medium red

	// Value emphasis
	ColorGold    = lipgloss.Color("#FFD700") // Bright gold
	ColorGoldDim = lipgloss.Color("#968C32") // Dim gold

	// Secondary marks
	ColorAmber = lipgloss.Color("#FFAA00") // Out-of-range accent
	ColorSmoke = lipgloss.Color("#646464") // Muted gray
)

// roleStyles maps each cell role to its lipgloss style. Built once; StyleFor
// never mutates it, so frames render the same style for the same role.
var roleStyles = map[Role]lipgloss.Style{
	RoleBackground: lipgloss.NewStyle().Background(ColorVoid),
	RoleBorder:     lipgloss.NewStyle().Foreground(ColorCrimson).Background(ColorVoid).Bold(true),
	RoleBorderDim:  lipgloss.NewStyle().Foreground(ColorCrimsonDim).Background(ColorVoid),
	RoleTitle:      lipgloss.NewStyle().Foreground(ColorEmber).Background(ColorVoid).Bold(true),
	RoleTitleDim:   lipgloss.NewStyle().Foreground(ColorEmberDim).Background(ColorVoid),
	RoleText:       lipgloss.NewStyle().Foreground(ColorEmber).Background(ColorVoid),
	RoleTextDim:    lipgloss.NewStyle().Foreground(ColorEmberDim).Background(ColorVoid),
	RoleValue:      lipgloss.NewStyle().Foreground(ColorGold).Background(ColorVoid).Bold(true),
	RoleValueDim:   lipgloss.NewStyle().Foreground(ColorGoldDim).Background(ColorVoid),
	RoleAccent:     lipgloss.NewStyle().Foreground(ColorAmber).Background(ColorVoid).Bold(true),
	RolePoint:      lipgloss.NewStyle().Foreground(ColorCrimson).Background(ColorVoid).Bold(true),
	RoleGuide:      lipgloss.NewStyle().Foreground(ColorGoldDim).Background(ColorVoid),
	RoleMuted:      lipgloss.NewStyle().Foreground(ColorSmoke).Background(ColorVoid),
}

// StyleFor returns the lipgloss style for a cell role. Pure function over the
// enumerated role set; unknown roles fall back to the background style.
func StyleFor(role Role) lipgloss.Style {
	if s, ok := roleStyles[role]; ok {
		return s
	}
	return roleStyles[RoleBackground]
}

// Dim maps a role to its dimmed counterpart for neighbor cards. Roles without
// a dim variant map to themselves.
func Dim(role Role) Role {
	switch role {
	case RoleBorder:
		return RoleBorderDim
	case RoleTitle:
		return RoleTitleDim
	case RoleText:
		return RoleTextDim
	case RoleValue, RoleAccent:
		return RoleValueDim
	default:
		return role
	}
}
