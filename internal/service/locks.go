package service

import "sync"

// DrawingLocks serialises work on a single drawing. Different drawings do
// not contend. Services that read-modify-write the same drawing must share
// one DrawingLocks.
type DrawingLocks struct {
	mu    sync.Mutex
	locks map[string]*drawingLock
}

type drawingLock struct {
	sync.Mutex
	refs int
}

func NewDrawingLocks() *DrawingLocks {
	return &DrawingLocks{locks: make(map[string]*drawingLock)}
}

// Lock blocks until the drawing is free and returns its unlock function.
func (l *DrawingLocks) Lock(id string) func() {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &drawingLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()
	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *DrawingLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
