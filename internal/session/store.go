package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const sessionFileName = "session.json"

// Store persists the session as a single JSON document under the config
// directory. Each CLI invocation is a short-lived process, no cross-process
// locking is needed.
type Store struct {
	dir string
}

func NewStore(configDir string) *Store {
	return &Store{dir: configDir}
}

func (st *Store) path() string {
	return filepath.Join(st.dir, sessionFileName)
}

// Save writes the session unconditionally, creating parent directories as
// needed. The file is user-readable only since it holds live cookies.
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(st.dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.path(), data, 0o600)
}

// Status describes what Load found on disk.
type Status int

const (
	StatusAbsent Status = iota
	StatusExpired
	StatusValid
)

// Load reads the stored session. A missing, unreadable or malformed file
// yields (nil, nil); an expired session is purged and also yields (nil, nil).
func (st *Store) Load() (*Session, error) {
	s, _, err := st.LoadWithStatus()
	return s, err
}

// LoadWithStatus behaves like Load but also reports whether an expired
// session was purged during the load.
func (st *Store) LoadWithStatus() (*Session, Status, error) {
	data, err := os.ReadFile(st.path())
	if err != nil {
		return nil, StatusAbsent, nil
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, StatusAbsent, nil
	}
	if s.Cookies == nil || s.CreatedAt.IsZero() {
		return nil, StatusAbsent, nil
	}

	if s.Expired() {
		if err := st.Clear(); err != nil {
			return nil, StatusExpired, err
		}
		return nil, StatusExpired, nil
	}

	return &s, StatusValid, nil
}

// Clear deletes the session file, succeeding when it is already gone.
func (st *Store) Clear() error {
	err := os.Remove(st.path())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
