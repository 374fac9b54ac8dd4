package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// SessionManager holds the current operator session. It is an explicitly
// constructed state object with a construct/use/persist lifecycle; there
// is no process-wide singleton. When path is non-empty the session
// survives across CLI invocations as a JSON file.
type SessionManager struct {
	path    string
	session *model.Session
}

// NewSessionManager creates a manager persisting to path. An empty path
// keeps the session in memory only. An existing session file is loaded;
// an unreadable one is treated as logged out.
func NewSessionManager(path string) *SessionManager {
	m := &SessionManager{path: path}
	if path != "" {
		m.load()
	}
	return m
}

// CreateSession starts a session for the given user and persists it.
func (m *SessionManager) CreateSession(username, role string) error {
	m.session = &model.Session{
		Username:  username,
		Role:      role,
		LoginTime: time.Now().UTC(),
		IsActive:  true,
	}
	return m.save()
}

// Current returns the active session, or nil when logged out.
func (m *SessionManager) Current() *model.Session {
	if m.session == nil || !m.session.IsActive {
		return nil
	}
	return m.session
}

// IsAuthenticated reports whether a session is active.
func (m *SessionManager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Logout clears the session and removes the persisted file.
func (m *SessionManager) Logout() error {
	m.session = nil
	if m.path == "" {
		return nil
	}
	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return eris.Wrap(err, "auth: remove session file")
	}
	return nil
}

func (m *SessionManager) save() error {
	if m.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return eris.Wrap(err, "auth: create session dir")
	}
	data, err := json.Marshal(m.session)
	if err != nil {
		return eris.Wrap(err, "auth: encode session")
	}
	return eris.Wrap(os.WriteFile(m.path, data, 0o600), "auth: write session file")
}

func (m *SessionManager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}
	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	if s.IsActive {
		m.session = &s
	}
}
