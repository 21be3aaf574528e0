package session

import (
	"maps"
	"sync"

	"github.com/desertthunder/marquee/internal/models"
)

// Session keys.
const (
	KeyToken     = "authToken"
	KeyUserID    = "userId"
	KeyUserEmail = "userEmail"
	KeyUserName  = "userName"
)

// Keys lists every key the store manages.
var Keys = []string{KeyToken, KeyUserID, KeyUserEmail, KeyUserName}

// Store is a process-scoped key/value store.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Store) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Token returns the stored auth token, or "" when logged out.
func (s *Store) Token() string {
	v, _ := s.Get(KeyToken)
	return v
}

// Persist writes a successful auth response. A response without a user name removes any
// name left over from an earlier session.
func (s *Store) Persist(resp *models.AuthResponse) {
	if resp == nil || resp.User == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[KeyToken] = resp.Token
	s.values[KeyUserID] = resp.User.ID.String()
	s.values[KeyUserEmail] = resp.User.Email
	if resp.User.Name != "" {
		s.values[KeyUserName] = resp.User.Name
	} else {
		delete(s.values, KeyUserName)
	}
}

// Purge removes every session key.
func (s *Store) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range Keys {
		delete(s.values, k)
	}
}

// Snapshot returns a copy of all stored values.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}
