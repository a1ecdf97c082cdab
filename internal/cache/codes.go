// Package cache holds small in-process stores shared across requests.
package cache

import (
	"sync"
	"time"
)

type codeEntry struct {
	code    string
	expires time.Time
}

// CodeStore is an expiring in-memory key-value store for one-time codes
// (signup verification, password reset). It is handed to collaborators as an
// explicit dependency; nothing keeps module-level code maps.
type CodeStore struct {
	mu         sync.Mutex
	entries    map[string]codeEntry
	defaultTTL time.Duration
	now        func() time.Time
}

func NewCodeStore(defaultTTL time.Duration) *CodeStore {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &CodeStore{
		entries:    make(map[string]codeEntry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Set stores a code under the key, replacing any previous one. A
// non-positive ttl falls back to the store default.
func (cs *CodeStore) Set(key, code string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = cs.defaultTTL
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.entries[key] = codeEntry{code: code, expires: cs.now().Add(ttl)}
}

// Get returns the live code for the key. Expired entries are dropped on
// access.
func (cs *CodeStore) Get(key string) (string, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	e, ok := cs.entries[key]
	if !ok {
		return "", false
	}
	if cs.now().After(e.expires) {
		delete(cs.entries, key)
		return "", false
	}
	return e.code, true
}

func (cs *CodeStore) Delete(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.entries, key)
}
