package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCodeStoreSetGetDelete(t *testing.T) {
	cs := NewCodeStore(time.Minute)

	cs.Set("a@x.io", "123456", 0)
	code, ok := cs.Get("a@x.io")
	assert.True(t, ok)
	assert.Equal(t, "123456", code)

	// replacing keeps only the latest code
	cs.Set("a@x.io", "654321", 0)
	code, _ = cs.Get("a@x.io")
	assert.Equal(t, "654321", code)

	cs.Delete("a@x.io")
	_, ok = cs.Get("a@x.io")
	assert.False(t, ok)
}

func TestCodeStoreExpiry(t *testing.T) {
	cs := NewCodeStore(time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	cs.now = func() time.Time { return now }

	cs.Set("a@x.io", "123456", 10*time.Minute)

	now = now.Add(9 * time.Minute)
	_, ok := cs.Get("a@x.io")
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = cs.Get("a@x.io")
	assert.False(t, ok)

	// expired entry is dropped on access
	cs.mu.Lock()
	_, present := cs.entries["a@x.io"]
	cs.mu.Unlock()
	assert.False(t, present)
}

func TestCodeStoreMissingKey(t *testing.T) {
	cs := NewCodeStore(0)
	_, ok := cs.Get("nobody")
	assert.False(t, ok)
}
