// Package session remembers where each file was last viewed.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"
)

const autosaveInterval = 15 * time.Second

// FileState is the viewport of one file.
type FileState struct {
	Cursor      int    `json:"cursor"`
	TopLine     int    `json:"top_line"`
	HorizOffset int    `json:"horiz_offset"`
	WrapMode    string `json:"wrap_mode,omitempty"`
	WrapMargin  int    `json:"wrap_margin,omitempty"`

	SelectionStart int `json:"selection_start,omitempty"`
	SelectionEnd   int `json:"selection_end,omitempty"`
}

// Selected reports whether a primary selection was saved.
func (s FileState) Selected() bool {
	return s.SelectionEnd > s.SelectionStart
}

type Session struct {
	Files      map[string]FileState `json:"files"`
	ActiveFile string               `json:"active_file,omitempty"`
	LastSaved  time.Time            `json:"last_saved"`
}

// Manager handles session persistence
type Manager struct {
	mu      sync.RWMutex
	session Session
	path    string
	dirty   bool

	stop chan struct{}
	done chan struct{}
}

// NewManager loads the session from the state directory and starts the
// autosave loop. Stop must be called to end it.
func NewManager() (*Manager, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	m, err := Open(path)
	if err != nil {
		return m, err
	}
	m.Autosave(autosaveInterval)
	return m, nil
}

// Open loads the session stored at path. A missing file is an empty
// session; an unreadable one is reported and replaced on the next save.
func Open(path string) (*Manager, error) {
	m := &Manager{
		session: Session{Files: make(map[string]FileState)},
		path:    path,
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return m, err
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	m.session = s
	return m, nil
}

// Path is $XDG_STATE_HOME/qtext/session.json, defaulting the state
// directory to ~/.local/state.
func Path() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "qtext", "session.json"), nil
}

// Save writes the session if it changed since the last save.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFile(m.path, data); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// writeFile replaces path through a temporary file in the same directory.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(f.Name())
		}
	}()
	_, err = f.Write(data)
	err = multierr.Append(err, f.Close())
	if err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// ForceSave saves even if not dirty
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	m.dirty = true
	m.mu.Unlock()
	return m.Save()
}

func (m *Manager) FileState(absPath string) (FileState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.session.Files[absPath]
	return state, ok
}

// SetFileState records the state of a file and makes it the active one.
func (m *Manager) SetFileState(absPath string, state FileState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.session.Files[absPath]; ok && old == state && m.session.ActiveFile == absPath {
		return
	}
	m.session.Files[absPath] = state
	m.session.ActiveFile = absPath
	m.dirty = true
}

// Forget drops a file from the session.
func (m *Manager) Forget(absPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.session.Files[absPath]; !ok {
		return
	}
	delete(m.session.Files, absPath)
	if m.session.ActiveFile == absPath {
		m.session.ActiveFile = ""
	}
	m.dirty = true
}

func (m *Manager) ActiveFile() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.ActiveFile
}

// Autosave saves every interval until Stop.
func (m *Manager) Autosave(interval time.Duration) {
	m.mu.Lock()
	if m.stop != nil {
		m.mu.Unlock()
		return
	}
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	stop, done := m.stop, m.done
	m.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = m.Save()
			case <-stop:
				return
			}
		}
	}()
}

// Stop ends the autosave loop and writes the final state.
func (m *Manager) Stop() error {
	m.mu.Lock()
	stop, done := m.stop, m.done
	m.stop, m.done = nil, nil
	m.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
	return m.Save()
}
