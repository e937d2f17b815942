package render

import (
	"sync"

	"github.com/google/uuid"
)

// Store holds rendered artifacts in memory, keyed by handle. Handles behave
// like object URLs: whoever stops referencing one must Release it or the
// bytes stay resident for the session lifetime.
type Store struct {
	mu    sync.Mutex
	blobs map[uuid.UUID][]byte
}

func NewStore() *Store {
	return &Store{blobs: make(map[uuid.UUID][]byte)}
}

func (s *Store) Put(data []byte) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.blobs[id] = data
	s.mu.Unlock()
	return id
}

func (s *Store) Get(id uuid.UUID) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[id]
	return data, ok
}

func (s *Store) Release(id uuid.UUID) {
	s.mu.Lock()
	delete(s.blobs, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}

// Slot is a mutually exclusive artifact reference: setting a new handle
// releases the previous one, bounding memory on the live-preview path.
type Slot struct {
	store *Store

	mu      sync.Mutex
	current uuid.UUID
}

func NewSlot(store *Store) *Slot {
	return &Slot{store: store}
}

func (sl *Slot) Set(id uuid.UUID) {
	sl.mu.Lock()
	old := sl.current
	sl.current = id
	sl.mu.Unlock()
	if old != uuid.Nil && old != id {
		sl.store.Release(old)
	}
}

func (sl *Slot) Current() uuid.UUID {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.current
}

// Take hands ownership of the current artifact to the caller and empties the
// slot without releasing the bytes.
func (sl *Slot) Take() uuid.UUID {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	id := sl.current
	sl.current = uuid.Nil
	return id
}

func (sl *Slot) Clear() {
	sl.Set(uuid.Nil)
}
