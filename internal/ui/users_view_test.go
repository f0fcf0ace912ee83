package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersadmin/internal/users"
)

func manyUsers(n int) []users.Summary {
	out := make([]users.Summary, n)
	for i := range out {
		out[i] = users.Summary{ID: fmt.Sprint(i + 1), Name: fmt.Sprintf("user%d", i+1)}
	}
	return out
}

func pageIDs(v *UsersView) []string {
	var ids []string
	for _, u := range v.pageRows() {
		ids = append(ids, u.ID)
	}
	return ids
}

func TestUsersView_Pagination(t *testing.T) {
	v := NewUsersView(2)
	v.Sync(users.ListReady, manyUsers(5))

	page, total := v.Page()
	assert.Equal(t, 0, page)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"1", "2"}, pageIDs(v))

	v.Update(keyMsg("right"))
	assert.Equal(t, []string{"3", "4"}, pageIDs(v))
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "3", sel.ID)
	assert.Contains(t, v.View(), "Page 2 of 3")

	v.Update(keyMsg("right"))
	v.Update(keyMsg("right")) // already on last page
	page, _ = v.Page()
	assert.Equal(t, 2, page)
	assert.Equal(t, []string{"5"}, pageIDs(v))

	v.Update(keyMsg("left"))
	page, _ = v.Page()
	assert.Equal(t, 1, page)
}

func TestUsersView_SyncClampsPage(t *testing.T) {
	v := NewUsersView(2)
	v.Sync(users.ListReady, manyUsers(6))
	v.Update(keyMsg("right"))
	v.Update(keyMsg("right"))

	v.Sync(users.ListReady, manyUsers(3))
	page, total := v.Page()
	assert.Equal(t, 1, page)
	assert.Equal(t, 2, total)

	v.ResetPage()
	page, _ = v.Page()
	assert.Zero(t, page)
}

func TestUsersView_Sort(t *testing.T) {
	rows := []users.Summary{
		{ID: "10", Name: "bob"},
		{ID: "9", Name: "Alice"},
		{ID: "100", Name: "carl"},
	}
	v := NewUsersView(10)
	v.Sync(users.ListReady, rows)

	v.Update(keyMsg("s"))
	assert.Equal(t, SortByID, v.SortBy)
	assert.Equal(t, []string{"9", "10", "100"}, pageIDs(v))
	assert.Contains(t, v.View(), "User ID ▲")

	v.Update(keyMsg("S"))
	assert.Equal(t, []string{"100", "10", "9"}, pageIDs(v))
	assert.Contains(t, v.View(), "sorted by User ID desc")

	v.Update(keyMsg("s"))
	assert.Equal(t, SortByName, v.SortBy)
	assert.False(t, v.SortDesc)
	assert.Equal(t, []string{"9", "10", "100"}, pageIDs(v))

	v.Update(keyMsg("s"))
	assert.Equal(t, SortNone, v.SortBy)
	assert.Equal(t, []string{"10", "9", "100"}, pageIDs(v))
	assert.Equal(t, "10", rows[0].ID, "sorting must not reorder the source rows")
}

func TestCompareIDs(t *testing.T) {
	assert.Negative(t, compareIDs("9", "10"))
	assert.Negative(t, compareIDs("007", "10"))
	assert.Positive(t, compareIDs("b", "a"))
	assert.Negative(t, compareIDs("10", "a"))
	assert.Zero(t, compareIDs("42", "42"))
}

func TestUsersView_States(t *testing.T) {
	v := NewUsersView(10)
	assert.Contains(t, v.View(), "Loading users")

	v.Sync(users.ListEmpty, nil)
	assert.Contains(t, v.View(), "No users found")

	v.Sync(users.ListReady, []users.Summary{{ID: "7"}})
	view := v.View()
	assert.Contains(t, view, "7")
	assert.Contains(t, view, "N/A")
}

func TestUsersView_EnterSelects(t *testing.T) {
	v := NewUsersView(10)
	v.Sync(users.ListReady, []users.Summary{{ID: "42", Name: "zed"}, {Name: "no id"}})

	_, cmd := v.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, SelectUserMsg{UserID: "42"}, cmd())

	v.Update(keyMsg("down"))
	_, cmd = v.Update(keyMsg("enter"))
	assert.Nil(t, cmd, "rows without an id are not selectable")
	assert.Contains(t, v.View(), "row has no user id")
}

func TestUsersView_FocusCycle(t *testing.T) {
	v := NewUsersView(10)
	require.Equal(t, FocusTable, v.Focus.Current)

	v.Update(keyMsg("tab"))
	assert.Equal(t, FocusFilterID, v.Focus.Current)
	assert.True(t, v.Filter.ID.Focused())

	v.Update(keyMsg("tab"))
	assert.Equal(t, FocusFilterName, v.Focus.Current)
	assert.True(t, v.Filter.Name.Focused())
	assert.False(t, v.Filter.ID.Focused())

	v.Update(keyMsg("tab"))
	assert.Equal(t, FocusTable, v.Focus.Current)
	assert.False(t, v.Filter.Focused())

	v.Update(keyMsg("shift+tab"))
	assert.Equal(t, FocusFilterName, v.Focus.Current)

	v.Update(keyMsg("esc"))
	assert.Equal(t, FocusTable, v.Focus.Current)

	v.Update(keyMsg("/"))
	assert.Equal(t, FocusFilterID, v.Focus.Current)
}

func TestFilterPanel_EmitsChanges(t *testing.T) {
	p := NewFilterPanel()
	assert.Nil(t, p.Update(keyMsg("4")), "blurred panel ignores keys")

	p.Focus(FocusFilterID)
	var got []FilterChangedMsg
	for _, msg := range collect(p.Update(keyMsg("4"))) {
		if fc, ok := msg.(FilterChangedMsg); ok {
			got = append(got, fc)
		}
	}
	assert.Equal(t, []FilterChangedMsg{{IDSubstring: "4"}}, got)

	p.Focus(FocusFilterName)
	got = nil
	for _, msg := range collect(p.Update(keyMsg("al"))) {
		if fc, ok := msg.(FilterChangedMsg); ok {
			got = append(got, fc)
		}
	}
	assert.Equal(t, []FilterChangedMsg{{IDSubstring: "4", NameSubstring: "al"}}, got)

	view := p.View(80)
	for _, want := range []string{"Filter Users", "Filter by User ID", "Filter by User Name"} {
		assert.Contains(t, view, want)
	}
}

func TestFilterPanel_Placeholders(t *testing.T) {
	view := NewFilterPanel().View(80)
	assert.Contains(t, view, "Enter User ID")
	assert.Contains(t, view, "Enter Username")
}

func TestUsersView_SelectableAfterFirstLoad(t *testing.T) {
	v := NewUsersView(10)
	v.Sync(users.ListLoading, nil)
	v.Sync(users.ListReady, sampleUsers())

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)

	_, cmd := v.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, SelectUserMsg{UserID: "1"}, cmd())
}

func TestUsersView_SelectableAfterEmptyFilter(t *testing.T) {
	v := NewUsersView(10)
	v.Sync(users.ListReady, sampleUsers())
	v.Sync(users.ListReady, nil) // filter matched nothing
	v.Sync(users.ListReady, sampleUsers())

	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)
}
