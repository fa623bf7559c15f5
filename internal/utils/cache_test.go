package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSearchCacheSetGet(t *testing.T) {
	c := NewSearchCache[string](10, time.Minute)

	c.Set("key", "value")
	got, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestSearchCacheExpiry(t *testing.T) {
	c := NewSearchCache[int](10, 10*time.Millisecond)

	c.Set("key", 42)
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("key")
	assert.False(t, ok)
	// 过期条目在读取时被清除
	assert.Equal(t, 0, c.Len())
}

func TestSearchCacheEviction(t *testing.T) {
	c := NewSearchCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// 容量为 2，最旧的条目被挤出
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestSearchCacheDeleteClear(t *testing.T) {
	c := NewSearchCache[string](10, time.Minute)

	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	assert.Equal(t, 0, c.Len())
}

func TestRatingCacheNoExpiration(t *testing.T) {
	c := NewRatingCache()

	c.SetDefault("tt0133093", 8.7)
	got, ok := c.Get("tt0133093")
	assert.True(t, ok)
	assert.Equal(t, 8.7, got)
}

func TestHashIP(t *testing.T) {
	h1 := HashIP("192.168.1.1")
	h2 := HashIP("192.168.1.1")
	h3 := HashIP("192.168.1.2")

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 16)
}
