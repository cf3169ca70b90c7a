package booking

import "sync"

// roomLocks serializes booking writes per room inside this process. Entries
// are kept for the process lifetime; there is one per room ever booked.
type roomLocks struct {
	m sync.Map
}

func (l *roomLocks) lock(roomID int64) func() {
	v, _ := l.m.LoadOrStore(roomID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
