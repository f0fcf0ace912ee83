package ui

import "github.com/charmbracelet/lipgloss"

// ModalStyles contains shared style definitions for modals.
var ModalStyles = struct {
	BoxDefault lipgloss.Style // Standard modal box
	Title      lipgloss.Style
	Help       lipgloss.Style // Help text (dim gray)
	Value      lipgloss.Style // Detail record values
	Nested     lipgloss.Style // Pretty-printed object/array values
}{
	BoxDefault: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Value: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Nested: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
