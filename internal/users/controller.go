// Package users holds the list/detail controller behind the users screen.
//
// The Controller owns the fetched user list, the active filter criteria and
// the detail modal. It exposes synchronous transition methods plus two
// completion handlers; network work is handed back to the caller as tasks
// so the event loop that drives the controller decides where they run.
package users

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// ErrInvalidInput is returned by SelectUser when no user id is given.
var ErrInvalidInput = errors.New("users: user id is required")

// API is the remote users service.
type API interface {
	FetchList(ctx context.Context) ([]Summary, error)
	FetchProfile(ctx context.Context, userID string) (Detail, error)
}

// Session answers whether a local credential is usable and discards it.
type Session interface {
	IsValid() bool
	Clear() error
}

// Navigator moves the user to the login boundary.
type Navigator interface {
	ToLogin()
}

// Level classifies a notification.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification is a transient user-visible message.
type Notification struct {
	Level Level
	Text  string
}

// Notifier surfaces notifications to the user.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Notification texts.
const (
	MsgListFailed    = "Failed to fetch users list"
	MsgProfileFailed = "Failed to fetch user details"
	MsgLoggedOut     = "Logged out successfully"
	MsgLogoutFailed  = "Failed to clear session"
)

// ListLoaded is the completion of a list fetch.
type ListLoaded struct {
	Generation uint64
	Users      []Summary
	Err        error
}

// Ticket identifies one profile request.
type Ticket struct {
	UserID string
	Seq    uint64
}

// ProfileLoaded is the completion of a profile fetch.
type ProfileLoaded struct {
	Ticket Ticket
	User   Detail
	Err    error
}

// ListTask performs a list fetch. It is safe to run on any goroutine.
type ListTask func() ListLoaded

// ProfileTask performs a profile fetch. It is safe to run on any goroutine.
type ProfileTask func() ProfileLoaded

// Controller coordinates the users list, filter and detail modal.
// It is not safe for concurrent use; tasks it returns are.
type Controller struct {
	api     API
	session Session
	nav     Navigator
	notify  Notifier
	logger  *slog.Logger

	users    []Summary
	list     ListState
	listGen  uint64
	criteria Criteria

	modal   ModalState
	shown   Detail
	pending Ticket
	seq     uint64

	// OnModalChange, if set, observes every modal transition.
	OnModalChange func(from, to ModalState)
}

// NewController creates a controller. A nil logger discards log output.
func NewController(api API, session Session, nav Navigator, notify Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		api:     api,
		session: session,
		nav:     nav,
		notify:  notify,
		logger:  logger.With(slog.String("component", "users")),
		list:    ListLoading,
		modal:   ModalClosed,
	}
}

// Initialize checks the session and starts the list fetch. It returns nil
// after redirecting to login when no valid session is present.
func (c *Controller) Initialize(ctx context.Context) ListTask {
	if !c.session.IsValid() {
		c.logger.Info("no valid session, redirecting to login")
		c.nav.ToLogin()
		return nil
	}
	c.list = ListLoading
	c.listGen++
	gen := c.listGen
	api := c.api
	return func() ListLoaded {
		list, err := api.FetchList(ctx)
		return ListLoaded{Generation: gen, Users: list, Err: err}
	}
}

// Reload refetches the list, keeping the filter criteria.
func (c *Controller) Reload(ctx context.Context) ListTask {
	return c.Initialize(ctx)
}

// HandleListLoaded applies a list fetch result. Results from superseded
// fetches are ignored. A failure leaves an empty list, never a pending one.
func (c *Controller) HandleListLoaded(msg ListLoaded) {
	if msg.Generation != c.listGen {
		c.logger.Debug("discarding stale list result",
			slog.Uint64("generation", msg.Generation), slog.Uint64("current", c.listGen))
		return
	}
	if msg.Err != nil {
		c.logger.Error("fetch users list failed", slog.Any("error", msg.Err))
		c.notify.Notify(Notification{Level: LevelError, Text: MsgListFailed})
		c.users = nil
		c.list = ListEmpty
		return
	}
	c.users = msg.Users
	if len(c.users) == 0 {
		c.list = ListEmpty
	} else {
		c.list = ListReady
	}
	c.logger.Info("users list loaded", slog.Int("count", len(c.users)))
}

// SetFilter replaces the filter criteria. It does no I/O.
func (c *Controller) SetFilter(idSubstring, nameSubstring string) {
	c.criteria = Criteria{IDSubstring: idSubstring, NameSubstring: nameSubstring}
}

// Criteria returns the active filter criteria.
func (c *Controller) Criteria() Criteria {
	return c.criteria
}

// FilteredUsers yields the stored users matching the active criteria, in
// stored order. The sequence captures the list and criteria at call time.
func (c *Controller) FilteredUsers() iter.Seq[Summary] {
	return Filter(c.users, c.criteria)
}

// FilteredSlice collects FilteredUsers.
func (c *Controller) FilteredSlice() []Summary {
	return slices.Collect(c.FilteredUsers())
}

// Users returns the full stored list.
func (c *Controller) Users() []Summary {
	return c.users
}

// ListState returns the list lifecycle state.
func (c *Controller) ListState() ListState {
	return c.list
}

// SelectUser opens the modal in Loading and returns the profile fetch for
// userID. An empty id is rejected with ErrInvalidInput before any state
// change or request.
func (c *Controller) SelectUser(ctx context.Context, userID string) (ProfileTask, error) {
	if strings.TrimSpace(userID) == "" {
		c.logger.Warn("select user rejected", slog.Any("error", ErrInvalidInput))
		return nil, ErrInvalidInput
	}
	c.seq++
	t := Ticket{UserID: userID, Seq: c.seq}
	c.pending = t
	c.shown = nil
	c.setModal(ModalLoading)

	api := c.api
	return func() ProfileLoaded {
		d, err := api.FetchProfile(ctx, t.UserID)
		return ProfileLoaded{Ticket: t, User: d, Err: err}
	}, nil
}

// HandleProfileLoaded applies a profile fetch result. A result for anything
// other than the pending request is discarded.
func (c *Controller) HandleProfileLoaded(msg ProfileLoaded) {
	if msg.Ticket != c.pending || c.pending == (Ticket{}) {
		c.logger.Debug("discarding stale profile result", slog.String("user_id", msg.Ticket.UserID))
		return
	}
	c.pending = Ticket{}
	if msg.Err != nil {
		c.logger.Error("fetch user details failed",
			slog.String("user_id", msg.Ticket.UserID), slog.Any("error", msg.Err))
		c.notify.Notify(Notification{Level: LevelError, Text: MsgProfileFailed})
		c.shown = nil
		c.setModal(ModalFailed)
		c.setModal(ModalClosed)
		return
	}
	c.shown = msg.User
	if c.shown == nil {
		c.shown = Detail{}
	}
	c.setModal(ModalShown)
}

// CloseModal closes the modal and drops the shown record. A fetch still in
// flight will be discarded on arrival.
func (c *Controller) CloseModal() {
	c.pending = Ticket{}
	c.shown = nil
	c.setModal(ModalClosed)
}

// ModalState returns the modal lifecycle state.
func (c *Controller) ModalState() ModalState {
	return c.modal
}

// Shown returns the record displayed in the modal, or nil unless ModalShown.
func (c *Controller) Shown() Detail {
	if c.modal != ModalShown {
		return nil
	}
	return c.shown
}

// PendingUserID returns the id whose profile is being fetched, if any.
func (c *Controller) PendingUserID() string {
	return c.pending.UserID
}

// Logout clears the stored session, reports the outcome and redirects to login.
func (c *Controller) Logout() {
	if err := c.session.Clear(); err != nil {
		c.logger.Error("clear session failed", slog.Any("error", err))
		c.notify.Notify(Notification{Level: LevelError, Text: MsgLogoutFailed})
	} else {
		c.logger.Info("logged out")
		c.notify.Notify(Notification{Level: LevelSuccess, Text: MsgLoggedOut})
	}
	c.reset()
	c.nav.ToLogin()
}

// reset returns the controller to its freshly-constructed state. The list
// generation keeps counting so results from before the reset are stale.
func (c *Controller) reset() {
	c.users = nil
	c.list = ListLoading
	c.listGen++
	c.criteria = Criteria{}
	c.CloseModal()
}

func (c *Controller) setModal(to ModalState) {
	from := c.modal
	c.modal = to
	if c.OnModalChange != nil && from != to {
		c.OnModalChange(from, to)
	}
}
