package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// persistedData is the on-disk document. Sessions and per-user event
// collections are kept as raw JSON so a single corrupt record degrades
// to absence instead of poisoning the whole store.
type persistedData struct {
	Users    map[string]persistedUser   `json:"users"`
	Sessions map[string]json.RawMessage `json:"sessions"`
	Events   map[string]json.RawMessage `json:"events"`
}

type persistedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    string `json:"created_at"`
}

// Store is a namespaced key-value store backed by a single JSON file.
// It is the local stand-in for browser storage: every mutation rewrites
// the file, and concurrent writers follow last-writer-wins.
type Store struct {
	mu       sync.RWMutex
	filePath string
	logger   *logrus.Logger
	data     persistedData
}

// NewStore opens (or initializes) the JSON document at filePath.
// A missing file starts empty; an unreadable or undecodable file is
// logged and also starts empty, matching the treat-corruption-as-absence
// recovery policy.
func NewStore(filePath string, logger *logrus.Logger) (*Store, error) {
	s := &Store{filePath: filePath, logger: logger}
	s.reset()
	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

func (s *Store) reset() {
	s.data = persistedData{
		Users:    make(map[string]persistedUser),
		Sessions: make(map[string]json.RawMessage),
		Events:   make(map[string]json.RawMessage),
	}
}

func (s *Store) load() error {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}
	var pd persistedData
	if err := json.Unmarshal(raw, &pd); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("file", s.filePath).Warn("store file undecodable, starting empty")
		}
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if pd.Users == nil {
		pd.Users = make(map[string]persistedUser)
	}
	if pd.Sessions == nil {
		pd.Sessions = make(map[string]json.RawMessage)
	}
	if pd.Events == nil {
		pd.Events = make(map[string]json.RawMessage)
	}
	s.data = pd
	return nil
}

// saveLocked writes the document to disk. Callers must hold mu.
func (s *Store) saveLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0o644)
}
