package paint

import (
	"sync"

	"github.com/gogpu/isoview/sprite"
)

// SessionPool recycles sessions between paint passes.
//
// Usage:
//
//	s := pool.Get(target, flags, rotation, store)
//	defer pool.Put(s)
type SessionPool struct {
	pool sync.Pool
}

// NewSessionPool creates an empty pool.
func NewSessionPool() *SessionPool {
	return &SessionPool{
		pool: sync.Pool{
			New: func() any { return new(Session) },
		},
	}
}

// Get returns a reset session bound to the given target and view state.
func (p *SessionPool) Get(t Target, flags ViewFlags, rotation uint8, store sprite.Store) *Session {
	s := p.pool.Get().(*Session)
	s.Reset()
	s.Target = t
	s.ViewFlags = flags
	s.Rotation = rotation
	s.Store = store
	return s
}

// Put returns a session to the pool.
func (p *SessionPool) Put(s *Session) {
	if s == nil {
		return
	}
	p.pool.Put(s)
}
