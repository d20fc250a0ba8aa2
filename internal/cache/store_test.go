package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreSetGet(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set("sale:1", 42)
	value, ok := store.Get("sale:1")
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = store.Get("sale:2")
	assert.False(t, ok)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)

	store.Set("sale:1", "cached")
	time.Sleep(20 * time.Millisecond)

	_, ok := store.Get("sale:1")
	assert.False(t, ok, "expired entry must not be returned")

	assert.Equal(t, 1, store.Len())
	store.Purge()
	assert.Equal(t, 0, store.Len())
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute)

	store.Set("sale:1", "cached")
	store.Delete("sale:1")
	_, ok := store.Get("sale:1")
	assert.False(t, ok)

	// Deleting an absent key must not panic.
	store.Delete("sale:missing")
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			store.Set("key", n)
		}(i)
		go func() {
			defer wg.Done()
			store.Get("key")
		}()
	}
	wg.Wait()

	_, ok := store.Get("key")
	assert.True(t, ok)
}
