package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantLocksSerializePerTenant(t *testing.T) {
	locks := newTenantLocks()

	var mu sync.Mutex
	counters := map[string]int{}
	var wg sync.WaitGroup

	// Hammer two tenants concurrently; per-tenant critical sections must not
	// interleave, which the plain map write below would surface under -race.
	for i := 0; i < 50; i++ {
		for _, tenant := range []string{"tenant-a", "tenant-b"} {
			wg.Add(1)
			go func(tenant string) {
				defer wg.Done()
				release := locks.acquire(tenant)
				defer release()
				mu.Lock()
				counters[tenant]++
				mu.Unlock()
			}(tenant)
		}
	}
	wg.Wait()

	assert.Equal(t, 50, counters["tenant-a"])
	assert.Equal(t, 50, counters["tenant-b"])
}

func TestTenantLocksReuseSameMutex(t *testing.T) {
	locks := newTenantLocks()

	release := locks.acquire("tenant-a")
	release()
	release = locks.acquire("tenant-a")
	release()

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Len(t, locks.locks, 1)
}
