// Package session persists the terminal client's auth session between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	sessionDir  = ".vetclinic"
	sessionFile = "session.json"
)

// Session is the locally persisted login state.
type Session struct {
	Username string   `json:"username"`
	Token    string   `json:"token"`
	Roles    []string `json:"roles"`
}

// Store reads and writes the session file under the user's home directory.
type Store struct {
	path string
}

// NewStore returns a Store rooted at $HOME/.vetclinic/session.json.
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(home, sessionDir, sessionFile)}, nil
}

// NewStoreAt returns a Store using an explicit file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted session, or nil when there is none. A missing,
// unreadable or corrupt file all mean the same thing to the caller: not
// logged in.
func (s *Store) Load() *Session {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil
	}
	if sess.Token == "" {
		return nil
	}
	return &sess
}

// Save persists the session atomically: write to a temp file in the same
// directory, then rename over the target. A crash mid-write never leaves a
// truncated session behind.
func (s *Store) Save(sess *Session) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, sessionFile+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
