package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersadmin/internal/users"
)

func TestApp_InvalidSessionStartsOnLogin(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	m, tm := startApp(api, &fakeSession{})

	assert.Equal(t, ModeLogin, m.Mode)
	list, _ := api.calls()
	assert.Zero(t, list, "no fetch without a session")
	assert.Contains(t, tm.View(), "Sign in with an API token")
}

func TestApp_LoadsUsersOnStart(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	m, tm := startApp(api, &fakeSession{token: "t"})

	require.Equal(t, ModeUsers, m.Mode)
	assert.Equal(t, users.ListReady, m.Controller.ListState())
	assert.Len(t, m.Users.Rows, 3)

	view := tm.View()
	for _, want := range []string{"Users List", "Filter Users", "Filter by User ID", "Filter by User Name", "User ID", "Username", "Alice", "ALBERT"} {
		assert.Contains(t, view, want)
	}
}

func TestApp_ShowsSpinnerWhileLoading(t *testing.T) {
	m, tm := newTestApp(&fakeAPI{list: sampleUsers()}, &fakeSession{token: "t"})
	tm.Init() // fetch command not run

	assert.Equal(t, users.ListLoading, m.Users.State)
	assert.Contains(t, tm.View(), "Loading users")
}

func TestApp_ListFailureShowsEmptyAndToast(t *testing.T) {
	_, tm := startApp(&fakeAPI{listErr: errBoom}, &fakeSession{token: "t"})

	view := tm.View()
	assert.Contains(t, view, "No users found")
	assert.Contains(t, view, users.MsgListFailed)
}

func TestApp_FilterNarrowsTable(t *testing.T) {
	m, tm := startApp(&fakeAPI{list: sampleUsers()}, &fakeSession{token: "t"})

	pump(tm, keyMsg("tab")) // table -> filter id
	require.Equal(t, FocusFilterID, m.Users.Focus.Current)
	typeText(tm, "1")

	assert.Equal(t, users.Criteria{IDSubstring: "1"}, m.Controller.Criteria())
	ids := make([]string, 0, len(m.Users.Rows))
	for _, u := range m.Users.Rows {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []string{"1", "12"}, ids)

	pump(tm, keyMsg("tab")) // filter id -> filter name
	typeText(tm, "al")
	assert.Equal(t, users.Criteria{IDSubstring: "1", NameSubstring: "al"}, m.Controller.Criteria())
	assert.Len(t, m.Users.Rows, 2)

	pump(tm, keyMsg("backspace"))
	pump(tm, keyMsg("backspace"))
	pump(tm, keyMsg("shift+tab"))
	pump(tm, keyMsg("backspace"))
	assert.True(t, m.Controller.Criteria().IsZero())
	assert.Len(t, m.Users.Rows, 3)
}

func TestApp_QOnlyQuitsFromTable(t *testing.T) {
	m, tm := startApp(&fakeAPI{list: sampleUsers()}, &fakeSession{token: "t"})

	pump(tm, keyMsg("tab"))
	seen := pump(tm, keyMsg("q"))
	assert.NotContains(t, seen, tea.Msg(tea.QuitMsg{}))
	id, _ := m.Users.Filter.Values()
	assert.Equal(t, "q", id)

	pump(tm, keyMsg("esc")) // back to table
	require.Equal(t, FocusTable, m.Users.Focus.Current)
	seen = pump(tm, keyMsg("q"))
	assert.Contains(t, seen, tea.Msg(tea.QuitMsg{}))
}

func TestApp_CtrlCAlwaysQuits(t *testing.T) {
	_, tm := startApp(&fakeAPI{}, &fakeSession{})
	seen := pump(tm, keyMsg("ctrl+c"))
	assert.Contains(t, seen, tea.Msg(tea.QuitMsg{}))
}

func TestApp_SelectShowsDetail(t *testing.T) {
	api := &fakeAPI{
		list: sampleUsers(),
		profiles: map[string]users.Detail{
			"1": {"userId": float64(1), "username": "Alice", "email": "alice@example.com", "roles": []any{"admin"}},
		},
	}
	m, tm := startApp(api, &fakeSession{token: "t"})

	pump(tm, keyMsg("enter"))

	_, ids := api.calls()
	assert.Equal(t, []string{"1"}, ids)
	require.Equal(t, users.ModalShown, m.Controller.ModalState())
	require.Equal(t, 1, m.Overlays.Len())

	view := tm.View()
	for _, want := range []string{"User Details", "email:", "alice@example.com", "username:", "admin"} {
		assert.Contains(t, view, want)
	}

	pump(tm, keyMsg("esc"))
	assert.Equal(t, users.ModalClosed, m.Controller.ModalState())
	assert.Zero(t, m.Overlays.Len())
	assert.NotContains(t, tm.View(), "User Details")
}

func TestApp_ModalIgnoresGlobalKeys(t *testing.T) {
	api := &fakeAPI{list: sampleUsers(), profiles: map[string]users.Detail{"1": {"id": "1"}}}
	m, tm := startApp(api, &fakeSession{token: "t"})
	pump(tm, keyMsg("enter"))
	require.Equal(t, 1, m.Overlays.Len())

	seen := pump(tm, keyMsg("q"))
	assert.Empty(t, seen)
	assert.Equal(t, 1, m.Overlays.Len())
}

func TestApp_ClosedBeforeResponseStaysClosed(t *testing.T) {
	api := &fakeAPI{list: sampleUsers(), profiles: map[string]users.Detail{"1": {"id": "1"}}}
	m, tm := startApp(api, &fakeSession{token: "t"})

	// Drive the selection by hand so the response can be held back.
	_, cmd := tm.Update(SelectUserMsg{UserID: "1"})
	var loaded []tea.Msg
	for _, msg := range collect(cmd) {
		if _, ok := msg.(ProfileLoadedMsg); ok {
			loaded = append(loaded, msg)
		}
	}
	require.Len(t, loaded, 1)
	require.Equal(t, users.ModalLoading, m.Controller.ModalState())
	assert.Contains(t, tm.View(), "Loading user 1")

	pump(tm, keyMsg("esc"))
	pump(tm, loaded[0])

	assert.Equal(t, users.ModalClosed, m.Controller.ModalState())
	assert.Zero(t, m.Overlays.Len())
}

func TestApp_ProfileFailureClosesModal(t *testing.T) {
	api := &fakeAPI{list: sampleUsers(), profileErr: errBoom}
	m, tm := startApp(api, &fakeSession{token: "t"})

	pump(tm, keyMsg("enter"))

	assert.Equal(t, users.ModalClosed, m.Controller.ModalState())
	assert.Zero(t, m.Overlays.Len())
	assert.Contains(t, tm.View(), users.MsgProfileFailed)
}

func TestApp_RowWithoutIDIsNotSelectable(t *testing.T) {
	api := &fakeAPI{list: []users.Summary{{Name: "ghost"}}}
	m, tm := startApp(api, &fakeSession{token: "t"})

	assert.Contains(t, tm.View(), "N/A")
	pump(tm, keyMsg("enter"))

	_, ids := api.calls()
	assert.Empty(t, ids)
	assert.Equal(t, users.ModalClosed, m.Controller.ModalState())
}

func TestApp_ReloadRefetches(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	m, tm := startApp(api, &fakeSession{token: "t"})

	api.mu.Lock()
	api.list = append(api.list, users.Summary{ID: "99", Name: "zed"})
	api.mu.Unlock()

	pump(tm, keyMsg("ctrl+r"))

	list, _ := api.calls()
	assert.Equal(t, 2, list)
	assert.Len(t, m.Users.Rows, 4)
}

func TestApp_LeaderLogout(t *testing.T) {
	sess := &fakeSession{token: "t"}
	m, tm := startApp(&fakeAPI{list: sampleUsers()}, sess)

	pump(tm, keyMsg(" "))
	assert.Contains(t, tm.View(), "Logout")
	pump(tm, keyMsg("l"))

	assert.Equal(t, ModeLogin, m.Mode)
	assert.Equal(t, 1, sess.cleared)
	assert.Nil(t, m.Controller.Users())
	assert.Contains(t, tm.View(), users.MsgLoggedOut)
}

func TestApp_LoginFlow(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	sess := &fakeSession{}
	m, tm := startApp(api, sess)
	require.Equal(t, ModeLogin, m.Mode)

	pump(tm, keyMsg("enter"))
	assert.Contains(t, tm.View(), "Token is required")

	typeText(tm, "secret")
	pump(tm, keyMsg("enter"))

	assert.Equal(t, "secret", sess.token)
	assert.Equal(t, ModeUsers, m.Mode)
	list, _ := api.calls()
	assert.Equal(t, 1, list)
	assert.Len(t, m.Users.Rows, 3)
}

func TestApp_LoginWithRejectedToken(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	m, tm := startApp(api, &fakeSession{})

	typeText(tm, "expired")
	pump(tm, keyMsg("enter"))

	assert.Equal(t, ModeLogin, m.Mode)
	assert.Contains(t, tm.View(), "Token is invalid or expired")
	list, _ := api.calls()
	assert.Zero(t, list)
}

func TestApp_RejectedTokenNeverLeavesLogin(t *testing.T) {
	api := &fakeAPI{list: sampleUsers()}
	m, tm := startApp(api, &fakeSession{})
	usersView := m.Users

	typeText(tm, "expired")
	_, cmd := tm.Update(keyMsg("enter"))
	for _, msg := range collect(cmd) {
		if sub, ok := msg.(LoginSubmittedMsg); ok {
			tm.Update(sub)
			assert.Equal(t, ModeLogin, m.Mode, "mode after submit")
		}
	}

	assert.Same(t, usersView, m.Users, "users screen is not rebuilt")
	assert.Empty(t, m.Login.Token.Value())
	assert.Equal(t, "Token is invalid or expired", m.Login.Err)
	list, _ := api.calls()
	assert.Zero(t, list)
}

func TestApp_LoginSaveFailure(t *testing.T) {
	m, tm := startApp(&fakeAPI{}, &fakeSession{saveErr: errBoom})

	typeText(tm, "tok")
	pump(tm, keyMsg("enter"))

	assert.Equal(t, ModeLogin, m.Mode)
	assert.Contains(t, tm.View(), "Failed to save session")
}

func TestApp_ToastExpires(t *testing.T) {
	m, tm := startApp(&fakeAPI{listErr: errBoom}, &fakeSession{token: "t"})
	require.Equal(t, 1, m.Toasts.Len())

	pump(tm, toastExpiredMsg{ID: m.Toasts.Items[0].ID})
	assert.Zero(t, m.Toasts.Len())
	assert.NotContains(t, tm.View(), users.MsgListFailed)
}

func TestApp_FirstRowSelectedAfterLoad(t *testing.T) {
	m, _ := startApp(&fakeAPI{list: sampleUsers()}, &fakeSession{token: "t"})

	sel, ok := m.Users.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}
