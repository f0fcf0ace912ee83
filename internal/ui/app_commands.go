package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersadmin/internal/users"
)

// listCmd runs a list fetch off the update loop and reports it as ListLoadedMsg.
// A nil task yields a nil command.
func listCmd(task users.ListTask) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		return ListLoadedMsg{ListLoaded: task()}
	}
}

// profileCmd runs a profile fetch off the update loop and reports it as ProfileLoadedMsg.
func profileCmd(task users.ProfileTask) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		return ProfileLoadedMsg{ProfileLoaded: task()}
	}
}

// toastExpiryCmd schedules removal of toast id after d.
func toastExpiryCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return toastExpiredMsg{ID: id, At: t}
	})
}

// msgCmd wraps a message in a command.
func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
