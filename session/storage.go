package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoState is returned by [Storage.Load] when no persisted record exists.
var ErrNoState = errors.New("no persisted session state")

// Storage persists the encoded session record across process restarts. It is
// the process-side analog of the browser's keyed local storage: one opaque
// blob under one fixed namespace.
//
// Implementations must be safe for concurrent use; the [Store] serializes
// its own writes but multiple stores may share one adapter.
type Storage interface {
	// Load returns the persisted record, or ErrNoState when none exists.
	Load(ctx context.Context) ([]byte, error)

	// Save replaces the persisted record.
	Save(ctx context.Context, data []byte) error
}

// MemoryStorage keeps the record in process memory. It is the default
// adapter and the natural choice for tests and short-lived programs that do
// not need sessions to survive a restart.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStorage returns an empty in-memory adapter.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load implements [Storage].
func (m *MemoryStorage) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrNoState
	}

	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Save implements [Storage].
func (m *MemoryStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}
