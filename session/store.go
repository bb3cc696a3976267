package session

import (
	"context"
	"errors"
	"sync"
)

// Store is the process-wide holder of the current Session. It is safe for
// concurrent use: any in-flight request's retry handler, the orchestrator's
// explicit refresh, and the startup check may all mutate it.
//
// Mutations are state-first: the in-memory session is updated under the lock
// before the persistence write, so a storage failure can never leave callers
// reading stale credentials. Persistence errors are returned to the caller
// for reporting but do not roll back the mutation.
type Store struct {
	mu      sync.RWMutex
	current Session
	storage Storage
}

// NewStore returns an empty store persisting through storage. A nil storage
// falls back to [MemoryStorage].
func NewStore(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// Get returns a snapshot of the current session. The User pointer is shared
// between snapshots and must be treated as read-only.
func (s *Store) Get() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetTokens atomically installs a new token pair and user record and marks
// the session authenticated.
func (s *Store) SetTokens(ctx context.Context, accessToken, refreshToken string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.AccessToken = accessToken
	s.current.RefreshToken = refreshToken
	s.current.User = user
	s.current.IsAuthenticated = true

	return s.persistLocked(ctx)
}

// SetUser replaces only the user record, leaving tokens and the
// authenticated flag untouched.
func (s *Store) SetUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.User = user

	return s.persistLocked(ctx)
}

// Logout atomically clears tokens, user, and the authenticated flag.
// IsInitialized survives: logging out is not the same as restarting.
// Calling Logout on an already cleared store is a no-op that re-persists
// the cleared state.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.AccessToken = ""
	s.current.RefreshToken = ""
	s.current.User = nil
	s.current.IsAuthenticated = false

	return s.persistLocked(ctx)
}

// Initialize marks the one-time startup check as complete. It is idempotent
// and never persisted.
func (s *Store) Initialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.IsInitialized = true
}

// Hydrate loads the persisted record into the store, overwriting the
// in-memory state. A missing, corrupt, or schema-incompatible record leaves
// the store empty without error: a client that cannot read its old session
// simply starts logged out. Storage I/O failures are returned.
func (s *Store) Hydrate(ctx context.Context) error {
	data, err := s.storage.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoState) {
			return nil
		}
		return err
	}

	restored, err := Decode(data)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored.IsInitialized = s.current.IsInitialized
	s.current = restored
	return nil
}

// persistLocked writes the durable subset through the storage adapter.
// Callers must hold s.mu so writes reach storage in mutation order.
func (s *Store) persistLocked(ctx context.Context) error {
	data, err := Encode(s.current)
	if err != nil {
		return err
	}
	return s.storage.Save(ctx, data)
}
