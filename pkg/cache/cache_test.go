package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := New[string](0)
	defer c.Stop()

	c.Set("a", "1", time.Minute)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	c.Delete("a")
	_, ok = c.Get("a")
	assert.False(t, ok)
}

func TestCache_Expiry(t *testing.T) {
	c := New[int](0)
	defer c.Stop()

	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Set("k", 7, time.Second)
	_, ok := c.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestCache_StopIsIdempotent(t *testing.T) {
	c := New[int](time.Millisecond)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
