package store

import "sync"

// keyLocker serializes read-modify-write cycles per record key.
// Records are independent, so there is no cross-key locking. Lock entries
// are never evicted; the key space is bounded by learners × subjects.
type keyLocker struct {
	mu    sync.Mutex
	locks map[recordKey]*sync.Mutex
}

func newKeyLocker() *keyLocker {
	return &keyLocker{locks: make(map[recordKey]*sync.Mutex)}
}

// Lock acquires the lock for key and returns its release function.
func (k *keyLocker) Lock(key recordKey) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
