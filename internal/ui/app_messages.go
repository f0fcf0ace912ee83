package ui

import (
	"time"

	"usersadmin/internal/users"
)

// ListLoadedMsg is sent when a users list fetch completes.
type ListLoadedMsg struct {
	users.ListLoaded
}

// ProfileLoadedMsg is sent when a user profile fetch completes.
type ProfileLoadedMsg struct {
	users.ProfileLoaded
}

// FilterChangedMsg is sent by the filter panel whenever either input changes.
type FilterChangedMsg struct {
	IDSubstring   string
	NameSubstring string
}

// SelectUserMsg is sent when the user opens a row (Enter on the table).
type SelectUserMsg struct {
	UserID string
}

// DismissModalMsg is sent when user closes the detail modal (Esc).
type DismissModalMsg struct{}

// ReloadMsg triggers a refetch of the users list (ctrl+r, SPC r).
type ReloadMsg struct{}

// LogoutMsg triggers logout (SPC l).
type LogoutMsg struct{}

// LoginSubmittedMsg is sent when a token is entered on the login screen.
type LoginSubmittedMsg struct {
	Token string
}

// toastExpiredMsg removes a toast once its display time has passed.
type toastExpiredMsg struct {
	ID int
	At time.Time
}
