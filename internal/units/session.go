package units

import "sync"

// Session serializes access to a Manager for hosts that share it across
// goroutines. The manager must not be used directly while a session wraps it.
type Session struct {
	mu      sync.Mutex
	manager *Manager
}

// NewSession wraps m.
func NewSession(m *Manager) *Session {
	return &Session{manager: m}
}

// Do runs fn while holding the session lock.
func (s *Session) Do(fn func(m *Manager)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.manager)
}

// Query runs fn under the session lock and returns its result.
func Query[T any](s *Session, fn func(m *Manager) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.manager)
}
