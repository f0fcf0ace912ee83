package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersadmin/internal/users"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 3 * time.Second

// maxToasts caps the number of toasts on screen; older ones are dropped first.
const maxToasts = 3

// Toast is one transient notification.
type Toast struct {
	ID        int
	Level     users.Level
	Text      string
	scheduled bool
}

// ToastQueue holds visible toasts. It implements users.Notifier so the
// controller can raise notifications directly.
type ToastQueue struct {
	Items    []Toast
	Duration time.Duration
	nextID   int
}

// Ensure ToastQueue implements users.Notifier.
var _ users.Notifier = (*ToastQueue)(nil)

// NewToastQueue creates a queue whose toasts expire after d (DefaultToastDuration if d <= 0).
func NewToastQueue(d time.Duration) *ToastQueue {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &ToastQueue{Duration: d}
}

// Notify implements users.Notifier.
func (q *ToastQueue) Notify(n users.Notification) {
	q.nextID++
	q.Items = append(q.Items, Toast{ID: q.nextID, Level: n.Level, Text: n.Text})
	if len(q.Items) > maxToasts {
		q.Items = q.Items[len(q.Items)-maxToasts:]
	}
}

// Schedule returns expiry commands for toasts added since the last call.
func (q *ToastQueue) Schedule() tea.Cmd {
	var cmds []tea.Cmd
	for i := range q.Items {
		if q.Items[i].scheduled {
			continue
		}
		q.Items[i].scheduled = true
		cmds = append(cmds, toastExpiryCmd(q.Items[i].ID, q.Duration))
	}
	return tea.Batch(cmds...)
}

// Expire removes the toast with the given id. Unknown ids are ignored.
func (q *ToastQueue) Expire(id int) {
	for i, t := range q.Items {
		if t.ID == id {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return
		}
	}
}

// Len returns the number of visible toasts.
func (q *ToastQueue) Len() int {
	return len(q.Items)
}

// View renders the visible toasts, newest last.
func (q *ToastQueue) View() string {
	if len(q.Items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(q.Items))
	for _, t := range q.Items {
		style := Styles.ToastSuccess
		if t.Level == users.LevelError {
			style = Styles.ToastError
		}
		lines = append(lines, style.Render(t.Text))
	}
	return strings.Join(lines, "\n")
}
