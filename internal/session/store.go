package session

import (
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/collection"

	cachekeys "clinicode-api/internal/cache"
	"clinicode-api/pkg/suggest"
)

// Store holds per-session review state in memory with a TTL. State is
// session-scoped and never persisted; an idle session simply expires. Each
// new submission overwrites the previous snapshot wholesale
// (last-write-wins, no merge).
type Store struct {
	cache *collection.Cache

	// RMW guard for validate: expired-or-replaced snapshots must not be
	// written back.
	mu sync.Mutex
}

// NewStore builds a Store whose entries expire after ttl of inactivity.
func NewStore(ttl time.Duration) (*Store, error) {
	c, err := collection.NewCache(ttl, collection.WithName("review-sessions"))
	if err != nil {
		return nil, err
	}
	return &Store{cache: c}, nil
}

// PutSubmission installs the batch of a fresh submission, replacing any
// previous state for the session, and returns the new snapshot.
func (s *Store) PutSubmission(sessionID, submissionID string, batch suggest.Batch) *ReviewState {
	state := NewReviewState(sessionID, submissionID, batch)
	s.mu.Lock()
	s.cache.Set(cachekeys.SessionKey(sessionID), state)
	s.mu.Unlock()
	return state
}

// Get returns the current snapshot for a session.
func (s *Store) Get(sessionID string) (*ReviewState, error) {
	v, ok := s.cache.Get(cachekeys.SessionKey(sessionID))
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*ReviewState), nil
}

// Validate sets the review flag of one row and installs the derived
// snapshot.
func (s *Store) Validate(sessionID string, index int, validated bool) (*ReviewState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := cachekeys.SessionKey(sessionID)
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrNotFound
	}
	next, err := v.(*ReviewState).WithValidation(index, validated)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, next)
	return next, nil
}

// Drop removes a session's state.
func (s *Store) Drop(sessionID string) {
	s.cache.Del(cachekeys.SessionKey(sessionID))
}
