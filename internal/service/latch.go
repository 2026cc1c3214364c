package service

import "sync"

// Latch allows one in-flight request per (visitor, action). Different
// actions of the same visitor do not block each other.
type Latch struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func NewLatch() *Latch {
	return &Latch{held: make(map[string]struct{})}
}

// Acquire reports false when the pair is already held. The returned release
// func must be called exactly once.
func (l *Latch) Acquire(visitor, action string) (release func(), ok bool) {
	key := visitor + "\x00" + action

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, true
}
