package ui

import tea "github.com/charmbracelet/bubbletea"

// View is one screen or overlay: the users screen, the login screen, or the
// user detail modal. It mirrors tea.Model but returns itself as a View so
// AppModel can keep concrete pointers.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
