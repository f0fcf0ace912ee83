// Package ui is the Bubble Tea front end of usersadmin.
//
// Core abstractions:
//   - View: A screen or major UI region with its own model, update, view (Elm-style)
//   - AppModel: Root model switching between the login boundary and the users screen
//   - UsersView: Filter panel plus paginated, sortable users table
//   - Overlay: Modal views (the user detail modal) with a dismiss key
//   - FocusManager: Tracks and rotates focus across the filter inputs and the table
//   - ToastQueue: Transient success/error notifications
//
// All state writes happen inside Update. Network work runs as tea.Cmd and
// comes back as ListLoadedMsg / ProfileLoadedMsg, which AppModel applies to
// the users.Controller.
package ui
