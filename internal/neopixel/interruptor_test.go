package neopixel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQueue(t *testing.T) {
	q := &Queue{}

	done := q.Acquire()
	assert.False(t, q.IsInterrupted())

	acquired := make(chan Unlocker)
	go func() {
		acquired <- q.Acquire()
	}()

	assert.Eventually(t, q.IsInterrupted, time.Second, time.Millisecond)
	select {
	case <-acquired:
		t.Fatal("second user got a turn while the first was running")
	case <-time.After(20 * time.Millisecond):
	}

	done()
	// Releasing twice is harmless.
	done()

	second := <-acquired
	assert.False(t, q.IsInterrupted())
	second()
}
