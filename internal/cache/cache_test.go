package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetSet(t *testing.T) {
	c := New[string](time.Minute)
	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
}

func TestExpiry(t *testing.T) {
	c := New[int](120 * time.Second)
	clock := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	c.Set("pages", 42)

	clock = clock.Add(119 * time.Second)
	got, ok := c.Get("pages")
	assert.True(t, ok)
	assert.Equal(t, 42, got)

	clock = clock.Add(2 * time.Second)
	_, ok = c.Get("pages")
	assert.False(t, ok, "entry should expire past the TTL window")

	// expired entry was dropped; a fresh Set starts a new window
	c.Set("pages", 7)
	got, ok = c.Get("pages")
	assert.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestDelete(t *testing.T) {
	c := New[int](time.Minute)
	c.Set("k", 1)
	c.Delete("k")
	_, ok := c.Get("k")
	assert.False(t, ok)
}
