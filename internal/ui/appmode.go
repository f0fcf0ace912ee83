package ui

// AppMode represents the top-level application mode.
type AppMode int

const (
	ModeUsers AppMode = iota
	ModeLogin
)

func (m AppMode) String() string {
	switch m {
	case ModeUsers:
		return "Users"
	case ModeLogin:
		return "Login"
	default:
		return "Unknown"
	}
}
