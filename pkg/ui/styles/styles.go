// Package styles defines the visual styling for headline's terminal output.
//
// All styles use semantic names and adaptive colors that adjust to light and
// dark terminal themes.
package styles

import "github.com/charmbracelet/lipgloss"

var registry = map[string]lipgloss.Style{
	"Error": lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#C03030", Dark: "#FF6B6B"}),
	"Success": lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#107040", Dark: "#50FA7B"}),
	"Path": lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#305090", Dark: "#8BE9FD"}),
	"Muted": lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#707070", Dark: "#6272A4"}),
}

// GetStyle returns the style registered under the semantic name, or an empty
// style for unknown names.
func GetStyle(name string) lipgloss.Style {
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
