package draft

import (
	"context"
	"sync"
)

// Store keeps at most one draft per chat id. Implementations must make
// mutations visible to subsequent calls for the same id and must not leak
// drafts across ids.
type Store interface {
	// Get returns the draft for a chat and whether one exists.
	Get(ctx context.Context, chatID int64) (Draft, bool, error)
	// Put replaces the draft for a chat.
	Put(ctx context.Context, chatID int64, d Draft) error
	// Update applies fn to the existing draft, or to a fresh one if none
	// exists, and stores the result. The read-modify-write is atomic with
	// respect to other Update calls for the same chat.
	Update(ctx context.Context, chatID int64, fn func(*Draft)) (Draft, error)
	// Remove deletes the draft for a chat; removing an absent id is a no-op.
	Remove(ctx context.Context, chatID int64) error
}

// MemoryStore is the default in-process Store implementation.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[int64]Draft
}

// NewMemoryStore constructs an empty in-memory draft store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{drafts: make(map[int64]Draft)}
}

// Get returns the draft for a chat if it exists.
func (s *MemoryStore) Get(_ context.Context, chatID int64) (Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[chatID]
	return d, ok, nil
}

// Put replaces the draft for a chat.
func (s *MemoryStore) Put(_ context.Context, chatID int64, d Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[chatID] = d
	return nil
}

// Update mutates the chat's draft under the store lock, so concurrent
// deliveries for the same chat cannot lose field writes.
func (s *MemoryStore) Update(_ context.Context, chatID int64, fn func(*Draft)) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[chatID]
	if !ok {
		d = New()
	}
	fn(&d)
	s.drafts[chatID] = d
	return d, nil
}

// Remove deletes the draft for a chat.
func (s *MemoryStore) Remove(_ context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
	return nil
}
