package neopixel

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Queue hands the strip to one user at a time. Effects hold on to the strip
// for as long as they run, so every user that queues up for a turn marks the
// queue as interrupted, and a running effect polls IsInterrupted to know when
// to give the strip up.
type Queue struct {
	turn sync.Mutex

	mu     sync.Mutex
	queued int
}

// Unlocker ends a turn. Calling it more than once ends the turn only once, so
// an effect can both defer it and call it early when it stops by itself.
type Unlocker func()

// Acquire queues up and blocks until it is the caller's turn.
func (q *Queue) Acquire() Unlocker {
	q.add(1)
	q.turn.Lock()
	q.add(-1)

	var once sync.Once
	return func() {
		once.Do(q.release)
	}
}

// IsInterrupted reports whether anyone is queued up behind the current turn.
func (q *Queue) IsInterrupted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.queued != 0
}

func (q *Queue) add(n int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.queued += n
	log.Tracef("LED queue: %d waiting", q.queued)
}

func (q *Queue) release() {
	defer q.turn.Unlock()

	if q.IsInterrupted() {
		log.Trace("LED turn handed to the next in line")
	}
}
