package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginView asks for an API token. It is shown whenever the session is
// missing or invalid, and after logout.
type LoginView struct {
	Token textinput.Model
	Err   string
	width int
}

// Ensure LoginView implements View.
var _ View = (*LoginView)(nil)

// NewLoginView creates a login screen with the token input focused.
func NewLoginView() *LoginView {
	in := textinput.New()
	in.Placeholder = "Paste API token"
	in.Prompt = "› "
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	in.Width = 48
	in.Focus()
	return &LoginView{Token: in, width: 80}
}

// Init implements View.
func (v *LoginView) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the input and any error.
func (v *LoginView) Reset() {
	v.Token.SetValue("")
	v.Err = ""
	v.Token.Focus()
}

// Update implements View.
func (v *LoginView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		return v, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			token := strings.TrimSpace(v.Token.Value())
			if token == "" {
				v.Err = "Token is required"
				return v, nil
			}
			v.Err = ""
			return v, msgCmd(LoginSubmittedMsg{Token: token})
		}
	}
	var cmd tea.Cmd
	v.Token, cmd = v.Token.Update(msg)
	return v, cmd
}

// SetError shows err below the input.
func (v *LoginView) SetError(err string) {
	v.Err = err
}

// View implements View.
func (v *LoginView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Users Admin") + "\n\n")
	b.WriteString(Styles.Label.Render("Sign in with an API token") + "\n")
	b.WriteString(Styles.PanelFocused.Render(v.Token.View()) + "\n")
	if v.Err != "" {
		b.WriteString(Styles.Error.Render(v.Err) + "\n")
	}
	b.WriteString(Styles.Hint.Render("enter sign in  ·  ctrl+c quit"))
	return b.String()
}
