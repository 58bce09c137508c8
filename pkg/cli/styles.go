package cli

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/secondary text color
	Accent  lipgloss.Color // Highlight color for printable bytes
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Accent:  lipgloss.Color("#e3b341"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Offset    lipgloss.Style // hex dump offset column
	Hex       lipgloss.Style // hex byte columns
	Printable lipgloss.Style // printable bytes in the ASCII column
	Dim       lipgloss.Style // non-printable bytes, separators
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Offset:    lipgloss.NewStyle().Foreground(t.Dim),
		Hex:       lipgloss.NewStyle().Foreground(t.Primary),
		Printable: lipgloss.NewStyle().Foreground(t.Accent),
		Dim:       lipgloss.NewStyle().Foreground(t.Dim),
	}
}
