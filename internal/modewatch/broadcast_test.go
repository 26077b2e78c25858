package modewatch

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBroadcastGetReturnsInitialValue(t *testing.T) {
	var b = NewBroadcast(3)
	assert.Equal(t, 3, b.Get())
}

func TestBroadcastSetOverwrites(t *testing.T) {
	var b = NewBroadcast(0)
	b.Set(7)
	assert.Equal(t, 7, b.Get())
}

func TestBroadcastConcurrentWritersLeaveAWrittenValue(t *testing.T) {
	var b = NewBroadcast(0)

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			b.Set(v)
		}(i)
	}
	wg.Wait()

	assert.GreaterOrEqual(t, b.Get(), 1)
}
