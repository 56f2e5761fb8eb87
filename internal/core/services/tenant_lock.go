package services

import "sync"

// tenantLocks serializes acquisition cycles per tenant so overlapping manual
// and scheduled triggers cannot double-increment quota or duplicate history
// entries. Locks are created lazily and kept for the process lifetime; the
// tenant cardinality is small enough that entries are never evicted.
type tenantLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newTenantLocks() *tenantLocks {
	return &tenantLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire blocks until the tenant's lock is held and returns the release func.
func (l *tenantLocks) acquire(tenantID string) func() {
	l.mu.Lock()
	lock, ok := l.locks[tenantID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[tenantID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
