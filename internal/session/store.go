// Package session persists the admin's credential between runs.
// The Store keeps an auth token and an opaque user-info blob in a single
// JSON file and answers whether a usable session is present. It makes no
// network calls; the API is the authority on whether the token is accepted.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// DirEnv is the env var override for the ~/.usersadmin base (for testing).
	DirEnv = "USERSADMIN_SESSION_DIR"
	// DefaultDir is the default session directory relative to the home dir.
	DefaultDir = ".usersadmin"
	// FileName is the name of the persisted session file.
	FileName = "session.json"
)

// State is the on-disk session payload.
type State struct {
	AuthToken string          `json:"authToken"`
	UserInfo  json.RawMessage `json:"userInfo,omitempty"`
	SavedAt   time.Time       `json:"savedAt"`
}

// Store reads and writes the session file. Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	now  func() time.Time
}

// NewStore creates a store rooted at the user's home + DefaultDir,
// or at the path in USERSADMIN_SESSION_DIR if set.
func NewStore() (*Store, error) {
	base := os.Getenv(DirEnv)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("session: resolve home dir: %w", err)
		}
		base = filepath.Join(home, DefaultDir)
	}
	return NewStoreAt(filepath.Join(base, FileName)), nil
}

// NewStoreAt creates a store backed by the file at path.
func NewStoreAt(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// Path returns the session file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted state. A missing file yields a zero State and no error.
func (s *Store) Load() (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load()
}

func (s *Store) load() (State, error) {
	var st State
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("session: read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return State{}, fmt.Errorf("session: decode %s: %w", s.path, err)
	}
	return st, nil
}

// Token returns the stored auth token, or "" when none is stored or the file is unreadable.
func (s *Store) Token() string {
	st, err := s.Load()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(st.AuthToken)
}

// IsValid reports whether a usable session token is present.
// Opaque tokens are valid when non-empty. Tokens that parse as JWTs are
// additionally rejected once their exp claim has passed; the signature is
// not checked here.
func (s *Store) IsValid() bool {
	token := s.Token()
	if token == "" {
		return false
	}
	exp, ok := jwtExpiry(token)
	if !ok {
		return true
	}
	return s.now().Before(exp)
}

// Save writes token and userInfo to the session file with owner-only permissions.
func (s *Store) Save(token string, userInfo json.RawMessage) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: empty token")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{AuthToken: token, UserInfo: userInfo, SavedAt: s.now().UTC()}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("session: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: replace %s: %w", s.path, err)
	}
	return nil
}

// Clear removes all locally persisted session state. Clearing an absent
// session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", s.path, err)
	}
	return nil
}

// jwtExpiry returns the exp claim of a JWT-shaped token.
// ok is false for opaque tokens and JWTs without an exp claim.
func jwtExpiry(token string) (time.Time, bool) {
	if strings.Count(token, ".") != 2 {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
