package store

import (
	"context"
	"sync"
)

// MemoryKV - бэкенд в памяти процесса. Несколько "контекстов" внутри
// одного процесса могут делить один экземпляр; уведомления об изменении
// ключа доставляются асинхронно, как у хостового хранилища.
type MemoryKV struct {
	mu       sync.RWMutex
	data     map[string][]byte
	watchers map[string]map[int64]func()
	nextID   int64
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:     make(map[string][]byte),
		watchers: make(map[string]map[int64]func()),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	m.mu.Lock()
	m.data[key] = cp
	fns := make([]func(), 0, len(m.watchers[key]))
	for _, fn := range m.watchers[key] {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	// Уведомления вне блокировки и не в горутине вызывающего
	for _, fn := range fns {
		go fn()
	}
	return nil
}

// Watch регистрирует наблюдателя за ключом
func (m *MemoryKV) Watch(_ context.Context, key string, fn func()) (func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watchers[key] == nil {
		m.watchers[key] = make(map[int64]func())
	}
	id := m.nextID
	m.nextID++
	m.watchers[key][id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.watchers[key], id)
	}, nil
}

func (m *MemoryKV) Close() error {
	return nil
}
