package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryStore struct {
	entries map[string]memoryEntry
	lock    sync.Mutex
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (ms *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	entry, ok := ms.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !ms.now().Before(entry.expiresAt) {
		delete(ms.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	now := ms.now()
	for k, entry := range ms.entries {
		if !now.Before(entry.expiresAt) {
			delete(ms.entries, k)
		}
	}
	ms.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}
