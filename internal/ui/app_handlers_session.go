package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleLogout clears the session; the controller navigates to login.
func (a *appModelAdapter) handleLogout() (tea.Model, tea.Cmd) {
	a.Controller.Logout()
	return a, nil
}

// handleLoginSubmitted stores the token and starts over from Initialize.
// A token the session rejects keeps the login screen up with an error.
func (a *appModelAdapter) handleLoginSubmitted(msg LoginSubmittedMsg) (tea.Model, tea.Cmd) {
	if a.session == nil {
		return a, nil
	}
	if err := a.session.Save(msg.Token, nil); err != nil {
		a.logger.Error("save session", "error", err)
		a.Login.SetError("Failed to save session")
		return a, nil
	}
	a.logger.Info("session saved")

	if !a.session.IsValid() {
		a.logger.Info("submitted token rejected by session")
		a.Login.Reset()
		a.Login.SetError("Token is invalid or expired")
		return a, nil
	}
	task := a.Controller.Initialize(a.ctx)
	if task == nil {
		a.Login.SetError("Token is invalid or expired")
		return a, nil
	}
	a.Mode = ModeUsers
	a.enterLogin = false
	a.syncUsers()
	return a, tea.Batch(listCmd(task), a.Users.Init())
}
