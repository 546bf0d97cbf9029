package utils_test

import (
	"testing"
	"time"

	"fundnav/src/utils"

	"github.com/stretchr/testify/assert"
)

func TestKeyedCache(t *testing.T) {
	t.Run("SetAndGet", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()
		cache.Set(1, "1|2024-01-15", 1.05, time.Minute)

		value, ok := cache.Get("1|2024-01-15")
		assert.True(t, ok)
		assert.Equal(t, 1.05, value)
	})

	t.Run("MissingKey", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()

		_, ok := cache.Get("absent")
		assert.False(t, ok)
	})

	t.Run("NonPositiveDurationDisablesCaching", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()
		cache.Set(1, "key", 1.0, 0)

		_, ok := cache.Get("key")
		assert.False(t, ok)
	})

	t.Run("ExpiredEntryIsAMiss", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()
		cache.Set(1, "key", 1.0, time.Nanosecond)
		time.Sleep(time.Millisecond)

		_, ok := cache.Get("key")
		assert.False(t, ok)
	})

	t.Run("InvalidateGroupDropsOnlyThatGroup", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()
		cache.Set(1, "1|2024-01-15", 1.05, time.Minute)
		cache.Set(1, "1|2024-01-16", 1.06, time.Minute)
		cache.Set(2, "2|2024-01-15", 1.10, time.Minute)

		cache.InvalidateGroup(1)

		_, ok := cache.Get("1|2024-01-15")
		assert.False(t, ok)
		_, ok = cache.Get("1|2024-01-16")
		assert.False(t, ok)

		value, ok := cache.Get("2|2024-01-15")
		assert.True(t, ok)
		assert.Equal(t, 1.10, value)
	})

	t.Run("Clear", func(t *testing.T) {
		cache := utils.NewKeyedCache[float64]()
		cache.Set(1, "a", 1.0, time.Minute)
		cache.Set(2, "b", 2.0, time.Minute)

		cache.Clear()

		_, ok := cache.Get("a")
		assert.False(t, ok)
		_, ok = cache.Get("b")
		assert.False(t, ok)
	})
}
