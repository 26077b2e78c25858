// Package modewatch provides a single-value broadcast cell: the
// Reactor publishes the current mode index to it so the gamepad
// thread's cycle button always starts from the correct state, even
// when the mode last changed over the network rather than the pad.
package modewatch

import "sync"

// Broadcast holds the most recently published value of T behind a
// read/write mutex: any number of readers can fetch it concurrently,
// and Set waits only for reads already in progress. Readers are not
// notified of a new value; they see it on their next Get.
type Broadcast[T any] struct {
	mu    sync.RWMutex
	value T
}

// NewBroadcast returns a Broadcast initialised to initial.
func NewBroadcast[T any](initial T) *Broadcast[T] {
	return &Broadcast[T]{value: initial}
}

// Set publishes a new value, overwriting whatever was there before.
func (b *Broadcast[T]) Set(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.value = v
}

// Get returns the most recently published value.
func (b *Broadcast[T]) Get() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}
