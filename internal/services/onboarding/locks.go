package onboarding

import "sync"

// keyedMutex serializes transitions per merchant so two admin actions
// on the same record cannot interleave between the status read and the
// versioned write.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for one merchant id and returns the release
// function.
func (k *keyedMutex) lock(id uint) func() {
	k.mu.Lock()
	m, ok := k.locks[id]
	if !ok {
		m = &sync.Mutex{}
		k.locks[id] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
