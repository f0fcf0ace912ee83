package ui

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"usersadmin/internal/users"
)

// cmdTimeout bounds how long collect waits for a command. Timer-driven
// commands (spinner, cursor blink, toast expiry) never finish inside it and
// are dropped.
const cmdTimeout = 100 * time.Millisecond

// collect runs cmd and returns the messages it produced, expanding batches.
func collect(cmd tea.Cmd) []tea.Msg {
	return collectUntil(cmd, time.Now().Add(cmdTimeout))
}

func collectUntil(cmd tea.Cmd, deadline time.Time) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(time.Until(deadline)):
		return nil
	}
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	}

	results := make([][]tea.Msg, len(batch))
	var wg sync.WaitGroup
	for i, c := range batch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = collectUntil(c, deadline)
		}()
	}
	wg.Wait()
	var out []tea.Msg
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

// isAppMsg reports whether msg is one the app produces for itself, as
// opposed to timer ticks from bubbles components.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case ListLoadedMsg, ProfileLoadedMsg, FilterChangedMsg, SelectUserMsg,
		DismissModalMsg, ReloadMsg, LogoutMsg, LoginSubmittedMsg, tea.QuitMsg:
		return true
	}
	return false
}

// pump feeds msg to m and keeps feeding the app messages its commands
// produce until none are left. It returns every app message seen.
func pump(m tea.Model, msg tea.Msg) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		_, cmd := m.Update(next)
		for _, out := range collect(cmd) {
			if !isAppMsg(out) {
				continue
			}
			seen = append(seen, out)
			if _, quit := out.(tea.QuitMsg); !quit {
				queue = append(queue, out)
			}
		}
	}
	return seen
}

// typeText sends one key per rune.
func typeText(m tea.Model, s string) {
	for _, r := range s {
		pump(m, keyMsg(string(r)))
	}
}

type fakeAPI struct {
	mu         sync.Mutex
	list       []users.Summary
	listErr    error
	profiles   map[string]users.Detail
	profileErr error
	listCalls  int
	profileIDs []string
}

func (f *fakeAPI) FetchList(ctx context.Context) ([]users.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]users.Summary(nil), f.list...), nil
}

func (f *fakeAPI) FetchProfile(ctx context.Context, id string) (users.Detail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileIDs = append(f.profileIDs, id)
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profiles[id], nil
}

func (f *fakeAPI) calls() (list int, profiles []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, append([]string(nil), f.profileIDs...)
}

type fakeSession struct {
	token    string
	cleared  int
	saveErr  error
	clearErr error
}

func (s *fakeSession) IsValid() bool {
	return s.token != "" && s.token != "expired"
}

func (s *fakeSession) Clear() error {
	s.cleared++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token = ""
	return nil
}

func (s *fakeSession) Save(token string, _ json.RawMessage) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.token = token
	return nil
}

var errBoom = errors.New("boom")

func sampleUsers() []users.Summary {
	return []users.Summary{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "bob"},
		{ID: "12", Name: "ALBERT"},
	}
}

func newTestApp(api *fakeAPI, sess *fakeSession) (*AppModel, tea.Model) {
	m := NewAppModel(Options{API: api, Session: sess, PageSize: 10})
	return m, m.AsTeaModel()
}

// startApp runs Init and delivers whatever it fetched.
func startApp(api *fakeAPI, sess *fakeSession) (*AppModel, tea.Model) {
	m, tm := newTestApp(api, sess)
	for _, msg := range collect(tm.Init()) {
		if isAppMsg(msg) {
			pump(tm, msg)
		}
	}
	return m, tm
}
