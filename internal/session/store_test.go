package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_DefaultApplies(t *testing.T) {
	assert.False(t, NewStore(false).IsMassRemove(1))
	assert.True(t, NewStore(true).IsMassRemove(1))
}

func TestStore_ToggleReturnsNewState(t *testing.T) {
	s := NewStore(false)

	assert.True(t, s.Toggle(1))
	assert.True(t, s.IsMassRemove(1))
	assert.False(t, s.IsMassRemove(2), "other participants are unaffected")
	assert.Equal(t, 1, s.Len())
}

func TestStore_DoubleToggleRestoresOriginal(t *testing.T) {
	for _, def := range []bool{false, true} {
		s := NewStore(def)
		before := s.IsMassRemove(42)
		s.Toggle(42)
		s.Toggle(42)
		assert.Equal(t, before, s.IsMassRemove(42), "default %v", def)
	}
}

func TestStore_ToggleFromTrueDefault(t *testing.T) {
	s := NewStore(true)
	assert.False(t, s.Toggle(7))
	assert.Equal(t, 0, s.ActiveCount())
}

func TestStore_Forget(t *testing.T) {
	s := NewStore(false)
	s.Toggle(1)
	s.Toggle(2)
	s.Toggle(2)

	assert.True(t, s.Forget(1))
	assert.False(t, s.Forget(2))
	assert.False(t, s.Forget(3))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsMassRemove(1))
}

func TestStore_ActiveCount(t *testing.T) {
	s := NewStore(false)
	s.Toggle(1)
	s.Toggle(2)
	s.Toggle(3)
	s.Toggle(3)

	assert.Equal(t, 2, s.ActiveCount())
	assert.Equal(t, 3, s.Len())
}

func TestStore_ConcurrentToggles(t *testing.T) {
	s := NewStore(false)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Toggle(9)
		}()
	}
	wg.Wait()

	assert.False(t, s.IsMassRemove(9), "an even number of toggles")
}
