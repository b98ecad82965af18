package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// fakeCountCache is an in-memory stand-in for the redis-backed cart count
// cache. It records invalidations so tests can assert mutations bust it.
type fakeCountCache struct {
	mu          sync.Mutex
	counts      map[string]int
	invalidated []string
}

func newFakeCountCache() *fakeCountCache {
	return &fakeCountCache{counts: map[string]int{}}
}

func (f *fakeCountCache) Get(ctx context.Context, ownerKey string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.counts[ownerKey]
	return n, ok, nil
}

func (f *fakeCountCache) Set(ctx context.Context, ownerKey string, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts[ownerKey] = count
	return nil
}

func (f *fakeCountCache) Invalidate(ctx context.Context, ownerKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.counts, ownerKey)
	f.invalidated = append(f.invalidated, ownerKey)
	return nil
}

// fakeSessionStore keeps issued keys in a map and can be forced to fail.
type fakeSessionStore struct {
	mu     sync.Mutex
	keys   map[string]bool
	failed bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{keys: map[string]bool{}}
}

func (f *fakeSessionStore) Issue(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return "", fmt.Errorf("session store down")
	}
	key := uuid.New().String()
	f.keys[key] = true
	return key, nil
}

func (f *fakeSessionStore) Valid(ctx context.Context, sessionKey string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failed {
		return false, fmt.Errorf("session store down")
	}
	return f.keys[sessionKey], nil
}

func (f *fakeSessionStore) Close() error { return nil }
