package platform

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	busLocksMu sync.Mutex
	busLocks   = map[string]*Lock{}
)

// Lock is an exclusive scope around transmits on one bus.
type Lock struct {
	name string
	mu   sync.Mutex
}

// Acquire blocks until the bus is free and returns the function handing it
// back.
func (b *Lock) Acquire() func() {
	b.mu.Lock()
	log.Tracef("bus %q acquired", b.name)
	return func() {
		log.Tracef("bus %q released", b.name)
		b.mu.Unlock()
	}
}

// BusLock returns the process wide lock for the named SPI port. Every caller
// asking for the same name shares one lock.
func BusLock(port string) *Lock {
	busLocksMu.Lock()
	defer busLocksMu.Unlock()

	l, ok := busLocks[port]
	if !ok {
		l = &Lock{name: port}
		busLocks[port] = l
	}
	return l
}
