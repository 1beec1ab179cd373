package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager()

	a, cancelA := sm.Subscribe("s1")
	b, cancelB := sm.Subscribe("s1")
	assert.Equal(t, 2, sm.Subscribers("s1"))

	sm.Broadcast("s1", "hello")
	sm.Broadcast("other", "ignored")
	assert.Equal(t, "hello", <-a)
	assert.Equal(t, "hello", <-b)

	cancelA()
	_, open := <-a
	assert.False(t, open)
	assert.Equal(t, 1, sm.Subscribers("s1"))

	sm.Close("s1")
	_, open = <-b
	assert.False(t, open)
	assert.Equal(t, 0, sm.Subscribers("s1"))

	// Cancelling after Close must not panic on a double close.
	assert.NotPanics(t, cancelB)
}

func TestStreamManager_DropsForSlowClients(t *testing.T) {
	sm := NewStreamManager()
	ch, cancel := sm.Subscribe("s1")
	defer cancel()

	for i := 0; i < 20; i++ {
		sm.Broadcast("s1", "msg")
	}
	assert.Len(t, ch, 10)
}
