package storage

import (
	"context"
	"sync/atomic"
)

// MemoryCache 进程级缓存，读写都是一次指针原子替换，不需要加锁
type MemoryCache struct {
	entry atomic.Pointer[Entry]
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (m *MemoryCache) Get(_ context.Context) (Entry, bool, error) {
	e := m.entry.Load()
	if e == nil {
		return Entry{}, false, nil
	}
	return *e, true, nil
}

func (m *MemoryCache) Set(_ context.Context, entry Entry) error {
	m.entry.Store(&entry)
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.entry.Store(nil)
	return nil
}
