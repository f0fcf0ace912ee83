package ui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"usersadmin/internal/jsonutil"
	"usersadmin/internal/ui/textutil"
	"usersadmin/internal/users"
)

// Detail modal bounds, in terminal cells.
const (
	detailMinWidth  = 40
	detailMaxWidth  = 90
	detailMaxHeight = 20
)

// UserDetailModal shows one user's record. It opens in a loading state and
// is filled by SetRecord once the profile fetch for UserID resolves.
type UserDetailModal struct {
	UserID   string
	Loading  bool
	Record   users.Detail
	spinner  spinner.Model
	viewport viewport.Model
	width    int
}

// Ensure UserDetailModal implements View.
var _ View = (*UserDetailModal)(nil)

// NewUserDetailModal creates a loading modal for userID.
func NewUserDetailModal(userID string, termWidth, termHeight int) *UserDetailModal {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccent))

	w := min(max(termWidth-10, detailMinWidth), detailMaxWidth)
	h := min(max(termHeight-12, 3), detailMaxHeight)
	return &UserDetailModal{
		UserID:   userID,
		Loading:  true,
		spinner:  s,
		viewport: viewport.New(w, h),
		width:    w,
	}
}

// Init implements View.
func (m *UserDetailModal) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetRecord replaces the loading indicator with rec.
func (m *UserDetailModal) SetRecord(rec users.Detail) {
	m.Loading = false
	m.Record = rec
	m.viewport.SetContent(renderDetail(rec, m.width))
	m.viewport.GotoTop()
}

// Update implements View. Esc is handled by the owning overlay.
func (m *UserDetailModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if m.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements View.
func (m *UserDetailModal) View() string {
	var b strings.Builder
	b.WriteString(ModalStyles.Title.Render("User Details") + "\n\n")
	switch {
	case m.Loading:
		b.WriteString(m.spinner.View() + " Loading user " + textutil.Truncate(m.UserID, m.width-20) + "…")
	case len(m.Record) == 0:
		b.WriteString(Styles.Empty.Render("No details available"))
	default:
		b.WriteString(m.viewport.View())
	}
	help := "esc close"
	if !m.Loading && m.viewport.TotalLineCount() > m.viewport.Height {
		help = fmt.Sprintf("↑/↓ scroll (%3.f%%)  ·  esc close", m.viewport.ScrollPercent()*100)
	}
	b.WriteString("\n\n" + ModalStyles.Help.Render(help))
	return ModalStyles.BoxDefault.Render(b.String())
}

// renderDetail lays out rec as "key: value" lines in sorted key order.
// Objects and arrays are pretty-printed below their key.
func renderDetail(rec users.Detail, width int) string {
	keys := rec.Keys()
	keyW := 0
	for _, k := range keys {
		keyW = max(keyW, textutil.VisualWidth(k))
	}
	valueW := max(width-keyW-2, 10)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("\n")
		}
		label := Styles.Key.Render(textutil.PadRightVisual(k+":", keyW+1))
		switch v := rec[k].(type) {
		case map[string]any, []any:
			raw, err := json.MarshalIndent(v, "  ", "  ")
			if err != nil {
				b.WriteString(label + " " + ModalStyles.Value.Render(fmt.Sprint(v)))
				continue
			}
			b.WriteString(label + "\n  " + ModalStyles.Nested.Render(string(raw)))
		case nil:
			b.WriteString(label + " " + Styles.Muted.Render(missingValue))
		default:
			b.WriteString(label + " " + ModalStyles.Value.Width(valueW).Render(jsonutil.ToString(v)))
		}
	}
	return b.String()
}
