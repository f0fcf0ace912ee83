package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"usersadmin/internal/users"
)

// handleListLoaded applies a finished list fetch and refreshes the table.
func (a *appModelAdapter) handleListLoaded(msg ListLoadedMsg) (tea.Model, tea.Cmd) {
	a.Controller.HandleListLoaded(msg.ListLoaded)
	a.syncUsers()
	return a, nil
}

// handleFilterChanged narrows the table to the new criteria, back on page one.
func (a *appModelAdapter) handleFilterChanged(msg FilterChangedMsg) (tea.Model, tea.Cmd) {
	a.Controller.SetFilter(msg.IDSubstring, msg.NameSubstring)
	a.syncUsers()
	a.Users.ResetPage()
	return a, nil
}

// handleSelectUser opens the detail overlay in its loading state and starts
// the profile fetch. Rejected ids leave the screen unchanged.
func (a *appModelAdapter) handleSelectUser(msg SelectUserMsg) (tea.Model, tea.Cmd) {
	task, err := a.Controller.SelectUser(a.ctx, msg.UserID)
	if err != nil {
		return a, nil
	}
	modal := NewUserDetailModal(msg.UserID, a.width, a.height)
	a.Overlays.Clear()
	a.Overlays.Push(Overlay{View: modal, Dismiss: "esc"})
	return a, tea.Batch(profileCmd(task), modal.Init())
}

// handleProfileLoaded fills the open overlay once the controller accepts the
// result. Stale results change nothing; failures close the overlay through
// the controller's modal hook.
func (a *appModelAdapter) handleProfileLoaded(msg ProfileLoadedMsg) (tea.Model, tea.Cmd) {
	a.Controller.HandleProfileLoaded(msg.ProfileLoaded)
	if a.Controller.ModalState() != users.ModalShown {
		return a, nil
	}
	top, ok := a.Overlays.Peek()
	if !ok {
		return a, nil
	}
	if modal, isDetail := top.View.(*UserDetailModal); isDetail && modal.UserID == msg.Ticket.UserID {
		modal.SetRecord(a.Controller.Shown())
	}
	return a, nil
}

// handleDismissModal closes the detail overlay. A fetch still in flight is
// ignored when it lands.
func (a *appModelAdapter) handleDismissModal() (tea.Model, tea.Cmd) {
	a.Controller.CloseModal()
	a.Overlays.Clear()
	return a, nil
}

// handleReload refetches the list, keeping the current filter.
func (a *appModelAdapter) handleReload() (tea.Model, tea.Cmd) {
	task := a.Controller.Reload(a.ctx)
	if task == nil {
		return a, nil
	}
	a.syncUsers()
	return a, tea.Batch(listCmd(task), a.Users.Init())
}
