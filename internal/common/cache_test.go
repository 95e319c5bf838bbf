package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := NewCache(1*time.Minute, 5*time.Minute)

	c.Set(CacheKeyTags, []string{"go", "testing"})

	got, ok := c.Get(CacheKeyTags)
	assert.True(t, ok)
	assert.Equal(t, []string{"go", "testing"}, got)
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10*time.Millisecond, time.Minute)

	c.Set(CacheKeyArticle("how-to-train-your-dragon-abc123"), "cached")
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get(CacheKeyArticle("how-to-train-your-dragon-abc123"))
	assert.False(t, ok)
}

func TestCacheDelete(t *testing.T) {
	c := NewCache(time.Minute, time.Minute)

	c.Set(CacheKeyTags, []string{"go"})
	c.Delete(CacheKeyTags)

	_, ok := c.Get(CacheKeyTags)
	assert.False(t, ok)
}
