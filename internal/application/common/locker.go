package common

import (
	"sync"
)

// GameLocker serialises load-mutate-save cycles per game ID. Different
// games proceed in parallel.
type GameLocker struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	mu   sync.Mutex
	refs int
}

// NewGameLocker creates an empty locker
func NewGameLocker() *GameLocker {
	return &GameLocker{locks: make(map[string]*gameLock)}
}

// Lock blocks until gameID is free and returns the matching unlock function
func (l *GameLocker) Lock(gameID string) (unlock func()) {
	l.mu.Lock()
	gl, ok := l.locks[gameID]
	if !ok {
		gl = &gameLock{}
		l.locks[gameID] = gl
	}
	gl.refs++
	l.mu.Unlock()

	gl.mu.Lock()
	return func() {
		gl.mu.Unlock()

		l.mu.Lock()
		gl.refs--
		if gl.refs == 0 {
			delete(l.locks, gameID)
		}
		l.mu.Unlock()
	}
}
