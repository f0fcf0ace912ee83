package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"usersadmin/internal/ui/textutil"
	"usersadmin/internal/users"
)

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 10

// missingValue is shown for a field the API did not send.
const missingValue = "N/A"

// SortColumn selects the column the table is ordered by. Sorting only
// changes presentation; the controller keeps API order.
type SortColumn int

const (
	SortNone SortColumn = iota
	SortByID
	SortByName
)

func (c SortColumn) String() string {
	switch c {
	case SortByID:
		return "User ID"
	case SortByName:
		return "Username"
	default:
		return "none"
	}
}

// UsersView is the users screen: filter panel above a paginated table.
type UsersView struct {
	Filter    *FilterPanel
	Focus     *FocusManager
	State     users.ListState
	Rows      []users.Summary // filtered rows in controller order
	SortBy    SortColumn
	SortDesc  bool
	table     table.Model
	paginator paginator.Model
	spinner   spinner.Model
	help      help.Model
	width     int
	height    int
}

// Ensure UsersView implements View.
var _ View = (*UsersView)(nil)

// NewUsersView creates the users screen in Loading state.
func NewUsersView(pageSize int) *UsersView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	t := table.New(
		table.WithColumns(userColumns(80, SortNone, false)),
		table.WithFocused(true),
		table.WithHeight(pageSize+2), // header and its border
		table.WithWidth(76),
	)
	t.SetStyles(NewTableStyles(true))

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize
	p.SetTotalPages(0)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	v := &UsersView{
		Filter:    NewFilterPanel(),
		Focus:     NewUsersFocus(),
		State:     users.ListLoading,
		table:     t,
		paginator: p,
		spinner:   s,
		help:      help.New(),
		width:     80,
	}
	v.Focus.OnChange = func(from, to string) {
		v.table.SetStyles(NewTableStyles(to == FocusTable))
		if to == FocusTable {
			v.table.Focus()
		} else {
			v.table.Blur()
		}
	}
	return v
}

// Init implements View.
func (v *UsersView) Init() tea.Cmd {
	return v.spinner.Tick
}

// Sync replaces the displayed rows and list state. The current page is kept
// when it still exists.
func (v *UsersView) Sync(state users.ListState, rows []users.Summary) {
	v.State = state
	v.Rows = rows
	v.paginator.SetTotalPages(len(rows))
	if v.paginator.Page >= v.paginator.TotalPages {
		v.paginator.Page = max(v.paginator.TotalPages-1, 0)
	}
	v.rebuild()
}

// ResetPage moves to the first page. Used when the filter changes.
func (v *UsersView) ResetPage() {
	v.paginator.Page = 0
	v.table.SetCursor(0)
	v.rebuild()
}

// Page returns the current zero-based page and the page count.
func (v *UsersView) Page() (page, total int) {
	return v.paginator.Page, v.paginator.TotalPages
}

// Selected returns the row under the cursor, if any.
func (v *UsersView) Selected() (users.Summary, bool) {
	page := v.pageRows()
	i := v.table.Cursor()
	if i < 0 || i >= len(page) {
		return users.Summary{}, false
	}
	return page[i], true
}

// sorted returns Rows in display order without touching Rows.
func (v *UsersView) sorted() []users.Summary {
	if v.SortBy == SortNone {
		return v.Rows
	}
	out := slices.Clone(v.Rows)
	slices.SortStableFunc(out, func(a, b users.Summary) int {
		var c int
		if v.SortBy == SortByID {
			c = compareIDs(a.ID, b.ID)
		} else {
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
		if v.SortDesc {
			return -c
		}
		return c
	})
	return out
}

// compareIDs orders numeric ids numerically and everything else lexically.
func compareIDs(a, b string) int {
	if isDigits(a) && isDigits(b) {
		a, b = strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
	}
	return cmp.Compare(a, b)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v *UsersView) pageRows() []users.Summary {
	all := v.sorted()
	start, end := v.paginator.GetSliceBounds(len(all))
	return all[start:end]
}

func (v *UsersView) rebuild() {
	page := v.pageRows()
	rows := make([]table.Row, len(page))
	for i, u := range page {
		rows[i] = table.Row{orMissing(u.ID), orMissing(u.Name)}
	}
	v.table.SetColumns(userColumns(v.width, v.SortBy, v.SortDesc))
	v.table.SetRows(rows)
	// An empty row set leaves the table cursor at -1.
	if c := v.table.Cursor(); c < 0 || c >= len(rows) {
		v.table.SetCursor(max(min(c, len(rows)-1), 0))
	}
}

func orMissing(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}

func userColumns(width int, by SortColumn, desc bool) []table.Column {
	idW := 20
	nameW := width - idW - 8
	if nameW < 20 {
		nameW = 20
	}
	title := func(name string, col SortColumn) string {
		if by != col {
			return name
		}
		if desc {
			return name + " ▼"
		}
		return name + " ▲"
	}
	return []table.Column{
		{Title: title("User ID", SortByID), Width: idW},
		{Title: title("Username", SortByName), Width: nameW},
	}
}

// Update implements View.
func (v *UsersView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.table.SetWidth(msg.Width - 4)
		v.rebuild()
		return v, nil
	case spinner.TickMsg:
		if v.State != users.ListLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return v, v.Filter.Focus(v.Focus.Next())
		case "shift+tab":
			return v, v.Filter.Focus(v.Focus.Prev())
		}
		if v.Focus.Current != FocusTable {
			if msg.String() == "esc" || msg.String() == "enter" {
				v.Focus.SetFocus(FocusTable)
				return v, v.Filter.Focus(FocusTable)
			}
			return v, v.Filter.Update(msg)
		}
		return v, v.updateTable(msg)
	}
	return v, v.Filter.Update(msg)
}

func (v *UsersView) updateTable(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		u, ok := v.Selected()
		if !ok || !u.Selectable() {
			return nil
		}
		return msgCmd(SelectUserMsg{UserID: u.ID})
	case "right", "l", "pgdown":
		if !v.paginator.OnLastPage() {
			v.paginator.NextPage()
			v.table.SetCursor(0)
			v.rebuild()
		}
		return nil
	case "left", "h", "pgup":
		if v.paginator.Page > 0 {
			v.paginator.PrevPage()
			v.table.SetCursor(0)
			v.rebuild()
		}
		return nil
	case "s":
		v.SortBy = (v.SortBy + 1) % 3
		v.SortDesc = false
		v.rebuild()
		return nil
	case "S":
		if v.SortBy != SortNone {
			v.SortDesc = !v.SortDesc
			v.rebuild()
		}
		return nil
	case "/":
		v.Focus.SetFocus(FocusFilterID)
		return v.Filter.Focus(FocusFilterID)
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return cmd
}

// usersHelpKeys lists the bindings shown in the footer.
var usersHelpKeys = []key.Binding{
	key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
	key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
	key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
	key.NewBinding(key.WithKeys("s"), key.WithHelp("s/S", "sort")),
	key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	key.NewBinding(key.WithKeys(" "), key.WithHelp("SPC", "commands")),
	key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

// View implements View.
func (v *UsersView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Users List") + "\n\n")
	b.WriteString(v.Filter.View(v.width) + "\n")

	style := Styles.Panel
	if v.Focus.Current == FocusTable {
		style = Styles.PanelFocused
	}
	b.WriteString(style.Render(v.tableBody()) + "\n")
	b.WriteString(v.help.ShortHelpView(usersHelpKeys))
	return b.String()
}

func (v *UsersView) tableBody() string {
	switch {
	case v.State == users.ListLoading:
		return v.spinner.View() + " Loading users…"
	case len(v.Rows) == 0:
		return Styles.Empty.Render("No users found")
	}
	footer := fmt.Sprintf("Page %d of %d  ·  %d users", v.paginator.Page+1, v.paginator.TotalPages, len(v.Rows))
	if v.SortBy != SortNone {
		dir := "asc"
		if v.SortDesc {
			dir = "desc"
		}
		footer += fmt.Sprintf("  ·  sorted by %s %s", v.SortBy, dir)
	}
	if u, ok := v.Selected(); ok && !u.Selectable() {
		footer += "  ·  " + Styles.Error.Render("row has no user id")
	}
	return v.table.View() + "\n" + Styles.Hint.Render(textutil.Truncate(footer, max(v.width-4, 10)))
}
