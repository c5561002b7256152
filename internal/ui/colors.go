// Package ui holds shared styling for plain CLI output. The carousel has its
// own palette; this package covers the non-TUI commands (component list,
// export, init).
package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// SymbolSuccess marks completed command output. Failures carry their own ✗
// through the errors package.
const SymbolSuccess = "✓"
