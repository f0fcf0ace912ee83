package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FilterPanel holds the user ID and user name filter inputs. It keeps no
// filter logic: every edit is forwarded to its owner as FilterChangedMsg.
type FilterPanel struct {
	ID   textinput.Model
	Name textinput.Model
}

// NewFilterPanel creates a panel with both inputs blurred and empty.
func NewFilterPanel() *FilterPanel {
	id := textinput.New()
	id.Placeholder = "Enter User ID"
	id.Prompt = ""
	id.CharLimit = 128

	name := textinput.New()
	name.Placeholder = "Enter Username"
	name.Prompt = ""
	name.CharLimit = 128

	return &FilterPanel{ID: id, Name: name}
}

// Focus focuses the input matching target (FocusFilterID or FocusFilterName)
// and blurs the other. Any other target blurs both.
func (p *FilterPanel) Focus(target string) tea.Cmd {
	p.ID.Blur()
	p.Name.Blur()
	switch target {
	case FocusFilterID:
		return p.ID.Focus()
	case FocusFilterName:
		return p.Name.Focus()
	}
	return nil
}

// Focused reports whether either input holds focus.
func (p *FilterPanel) Focused() bool {
	return p.ID.Focused() || p.Name.Focused()
}

// Values returns the current input text.
func (p *FilterPanel) Values() (id, name string) {
	return p.ID.Value(), p.Name.Value()
}

// Update forwards msg to the focused input and emits FilterChangedMsg when
// either value changed.
func (p *FilterPanel) Update(msg tea.Msg) tea.Cmd {
	beforeID, beforeName := p.Values()
	var cmd tea.Cmd
	switch {
	case p.ID.Focused():
		p.ID, cmd = p.ID.Update(msg)
	case p.Name.Focused():
		p.Name, cmd = p.Name.Update(msg)
	default:
		return nil
	}
	id, name := p.Values()
	if id == beforeID && name == beforeName {
		return cmd
	}
	return tea.Batch(cmd, msgCmd(FilterChangedMsg{IDSubstring: id, NameSubstring: name}))
}

// View renders the panel at the given total width.
func (p *FilterPanel) View(width int) string {
	style := Styles.Panel
	if p.Focused() {
		style = Styles.PanelFocused
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 20 {
		inner = 20
	}
	col := inner/2 - 1

	field := func(label string, in textinput.Model) string {
		ls := Styles.Label
		if in.Focused() {
			ls = Styles.LabelFocused
		}
		in.Width = col - 1
		return lipgloss.NewStyle().Width(col).Render(ls.Render(label) + "\n" + in.View())
	}

	var b strings.Builder
	b.WriteString(Styles.Section.Render("Filter Users") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		field("Filter by User ID", p.ID),
		"  ",
		field("Filter by User Name", p.Name),
	))
	return style.Width(inner).Render(b.String())
}
