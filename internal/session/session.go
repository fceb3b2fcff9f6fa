// Package session keeps per-user conversation state in memory.
package session

import (
	"sync"

	"github.com/spigell/job-scout/internal/prefs"
	"github.com/spigell/job-scout/internal/search"
	"github.com/spigell/job-scout/internal/vacancy"
)

// Session is the state accumulated while a user walks the search flow:
// uploaded resume text, parsed preferences, the last search result and
// the vacancy currently open.
type Session struct {
	Resume  string
	Prefs   *prefs.Preferences
	Result  *search.Result
	Current *vacancy.Vacancy
	Page    int
}

type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

// Start creates a fresh session for the user, replacing any previous one.
func (s *Store) Start(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &Session{}
	s.sessions[userID] = sess

	return sess
}

// Get returns the user's session, or nil when none exists. A nil result
// means the flow has to restart from the beginning.
func (s *Store) Get(userID int64) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[userID]
}

// Delete drops the user's session.
func (s *Store) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
}
