package ui

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"usersadmin/internal/users"
)

// SessionStore is the session the app reads, writes on login, and clears
// on logout.
type SessionStore interface {
	users.Session
	Save(token string, userInfo json.RawMessage) error
}

// Options configures NewAppModel. API and Session are required.
type Options struct {
	API           users.API
	Session       SessionStore
	Logger        *slog.Logger
	PageSize      int
	ToastDuration time.Duration
	Context       context.Context // parent of every fetch; defaults to Background
}

// AppModel is the root model. It switches between the users screen and the
// login screen and owns the detail overlay.
type AppModel struct {
	Mode       AppMode
	Controller *users.Controller
	Users      *UsersView
	Login      *LoginView
	Overlays   OverlayStack
	Toasts     *ToastQueue
	KeyHandler *KeyHandler

	session    SessionStore
	logger     *slog.Logger
	ctx        context.Context
	pageSize   int
	width      int
	height     int
	enterLogin bool // set by ToLogin; Update schedules the login view's Init
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// appNavigator routes the controller's navigation requests to the app.
type appNavigator struct {
	app *AppModel
}

// ToLogin implements users.Navigator.
func (n appNavigator) ToLogin() {
	n.app.toLogin()
}

// NewAppModel creates the root application model in users mode. Init decides
// whether the session allows staying there.
func NewAppModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := &AppModel{
		Mode:       ModeUsers,
		Users:      NewUsersView(opts.PageSize),
		Login:      NewLoginView(),
		Toasts:     NewToastQueue(opts.ToastDuration),
		KeyHandler: NewKeyHandler(DefaultKeybinds()),
		session:    opts.Session,
		logger:     logger.With("component", "ui"),
		ctx:        ctx,
		pageSize:   opts.PageSize,
		width:      80,
		height:     24,
	}
	m.Controller = users.NewController(opts.API, opts.Session, appNavigator{app: m}, m.Toasts, logger)
	m.Controller.OnModalChange = func(from, to users.ModalState) {
		if to == users.ModalClosed {
			m.Overlays.Clear()
		}
	}
	return m
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// toLogin switches to the login screen and drops everything the users
// screen showed.
func (m *AppModel) toLogin() {
	m.Mode = ModeLogin
	m.Overlays.Clear()
	m.KeyHandler.Reset()
	m.Users = NewUsersView(m.pageSize)
	m.Users.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	m.Login.Reset()
	m.enterLogin = true
}

// syncUsers pushes the controller's list state and filtered rows to the view.
func (m *AppModel) syncUsers() {
	m.Users.Sync(m.Controller.ListState(), m.Controller.FilteredSlice())
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	task := a.Controller.Initialize(a.ctx)
	a.enterLogin = false
	if task == nil {
		return a.Login.Init()
	}
	a.syncUsers()
	return tea.Batch(listCmd(task), a.Users.Init())
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.update(msg)
	cmds := []tea.Cmd{cmd, a.Toasts.Schedule()}
	if a.enterLogin {
		a.enterLogin = false
		cmds = append(cmds, a.Login.Init())
	}
	return model, tea.Batch(cmds...)
}

func (a *appModelAdapter) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Users.Update(msg)
		a.Login.Update(msg)
		return a, nil
	case toastExpiredMsg:
		a.Toasts.Expire(msg.ID)
		return a, nil
	case ListLoadedMsg:
		return a.handleListLoaded(msg)
	case ProfileLoadedMsg:
		return a.handleProfileLoaded(msg)
	case FilterChangedMsg:
		return a.handleFilterChanged(msg)
	case SelectUserMsg:
		return a.handleSelectUser(msg)
	case DismissModalMsg:
		return a.handleDismissModal()
	case ReloadMsg:
		return a.handleReload()
	case LogoutMsg:
		return a.handleLogout()
	case LoginSubmittedMsg:
		return a.handleLoginSubmitted(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Everything else (spinner ticks, cursor blink) goes to the live views.
	if a.Mode == ModeLogin {
		_, cmd := a.Login.Update(msg)
		return a, cmd
	}
	var cmds []tea.Cmd
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		cmds = append(cmds, cmd)
	}
	_, cmd := a.Users.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleKey routes a key press: ctrl+c always quits, the login screen and
// an open overlay take keys exclusively, and global bindings apply only
// while no text input has focus.
func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()
	if s == "ctrl+c" {
		return a, tea.Quit
	}
	if a.Mode == ModeLogin {
		_, cmd := a.Login.Update(msg)
		return a, cmd
	}
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(s) {
			return a.handleDismissModal()
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	if a.Users.Focus.Current == FocusTable || strings.HasPrefix(s, "ctrl+") {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
	}
	_, cmd := a.Users.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.Mode == ModeLogin {
		return joinNonEmpty(a.Login.View(), a.Toasts.View())
	}
	if top, ok := a.Overlays.Peek(); ok {
		modal := lipgloss.Place(a.width, max(a.height-a.Toasts.Len(), 1), lipgloss.Center, lipgloss.Center, top.View.View())
		return joinNonEmpty(modal, a.Toasts.View())
	}
	return joinNonEmpty(a.Users.View(), RenderKeybindHelp(a.KeyHandler), a.Toasts.View())
}

func joinNonEmpty(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n")
}
