package session

import "sync"

// MemoryStorage is an in-process stand-in for browser storage: one token
// shared by any number of contexts. A write through one context is
// reported to the watchers of every other context, never its own.
type MemoryStorage struct {
	mu       sync.Mutex
	token    string
	nextID   int
	watchers map[int]memoryWatch
}

type memoryWatch struct {
	ctx *MemorySlot
	fn  func(string)
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{watchers: make(map[int]memoryWatch)}
}

// Context returns a new execution context onto the storage.
func (m *MemoryStorage) Context() *MemorySlot {
	return &MemorySlot{storage: m}
}

func (m *MemoryStorage) write(from *MemorySlot, token string) {
	m.mu.Lock()
	if m.token == token {
		m.mu.Unlock()
		return
	}
	m.token = token

	var targets []func(string)
	for _, w := range m.watchers {
		if w.ctx != from {
			targets = append(targets, w.fn)
		}
	}
	m.mu.Unlock()

	// Delivered outside the lock so watchers may write back.
	for _, fn := range targets {
		fn(token)
	}
}

// MemorySlot is one context's view of a MemoryStorage.
type MemorySlot struct {
	storage *MemoryStorage
}

func (s *MemorySlot) Load() (string, error) {
	s.storage.mu.Lock()
	defer s.storage.mu.Unlock()
	return s.storage.token, nil
}

func (s *MemorySlot) Save(token string) error {
	s.storage.write(s, token)
	return nil
}

func (s *MemorySlot) Clear() error {
	s.storage.write(s, "")
	return nil
}

func (s *MemorySlot) Watch(fn func(string)) (func(), error) {
	m := s.storage
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.watchers[id] = memoryWatch{ctx: s, fn: fn}
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.watchers, id)
			m.mu.Unlock()
		})
	}, nil
}
