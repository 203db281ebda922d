package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. The session coordinator uses one
// lock per player ID so operations on the same record serialize while
// different players proceed in parallel.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it on first use.
// Locks are never reaped; the key space is bounded by the player population.
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the named lock
func (lm *LockManager) WithLock(key string, fn func()) {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	fn()
}
