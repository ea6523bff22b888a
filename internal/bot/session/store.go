// Package session holds the volatile per-sender conversation state.
//
// The store is keyed working memory only: nothing here survives a process
// restart. Durable lead state lives behind the leads repository.
package session

import (
	"sync"

	"leadbot_backend/internal/bot/domain"
)

// Outcome tells the store what to do with the session after a mutation.
type Outcome int

const (
	// Keep stores the mutated session for the next inbound event.
	Keep Outcome = iota
	// Destroy removes the session; the next event starts fresh.
	Destroy
)

type entry struct {
	mu   sync.Mutex
	sess *domain.Session
	gone bool
}

// Store is a keyed session map with strict per-identity serialization.
// Two events for the same identity run their read-modify-write one after the
// other; events for different identities do not contend.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Do runs fn with the identity's session under that identity's lock,
// creating a fresh session at the menu on first contact. When fn returns
// Destroy the session is removed.
func (s *Store) Do(identity string, fn func(sess *domain.Session) Outcome) {
	for {
		s.mu.Lock()
		e, ok := s.entries[identity]
		if !ok {
			e = &entry{sess: domain.NewSession(identity)}
			s.entries[identity] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if e.gone {
			// Lost a race with a destroy; retry against a fresh entry.
			e.mu.Unlock()
			continue
		}

		outcome := fn(e.sess)
		if outcome == Destroy {
			e.gone = true
			s.mu.Lock()
			if s.entries[identity] == e {
				delete(s.entries, identity)
			}
			s.mu.Unlock()
		}
		e.mu.Unlock()
		return
	}
}

// Len reports how many sessions are live.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
