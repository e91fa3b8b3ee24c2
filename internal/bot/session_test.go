package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionsLazyCreateAndDrop(t *testing.T) {
	s := newSessions()

	first := s.get(42)
	assert.Same(t, first, s.get(42))

	s.drop(42)
	assert.NotSame(t, first, s.get(42))
}

func TestSessionsAreIndependentPerUser(t *testing.T) {
	s := newSessions()

	a := s.get(1)
	b := s.get(2)
	a.category = "Искусство"
	b.awaitingCity = true

	assert.Equal(t, "Искусство", s.get(1).category)
	assert.False(t, s.get(1).awaitingCity)
	assert.True(t, s.get(2).awaitingCity)
}

// Concurrent events for one user serialize on the session mutex, so toggles
// cannot be lost to interleaving.
func TestSessionSerializesConcurrentEvents(t *testing.T) {
	s := newSessions()
	sess := s.get(7)

	const events = 100
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < events; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.mu.Lock()
			defer sess.mu.Unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, events, counter)
}
