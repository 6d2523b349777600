package storage

import (
	"context"
	"maps"
	"sync"
)

// DefaultPrefix namespaces keys written by the client.
const DefaultPrefix = "mds-core-"

// Storage is a string keyed, string valued store used to carry state such as
// the authorization nonce between a redirect and its callback.
type Storage interface {
	// Get returns ErrNotFound when key is not set.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove is a no-op for missing keys.
	Remove(ctx context.Context, key string) error
}

// Memory is an in-process Storage safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

// Get returns the value of key or ErrNotFound.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Snapshot returns a copy of the stored entries.
func (m *Memory) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.data)
}

type prefixed struct {
	next   Storage
	prefix string
}

// WithPrefix returns a Storage that prepends prefix to every key before
// delegating to next. An empty prefix uses DefaultPrefix.
func WithPrefix(next Storage, prefix string) Storage {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &prefixed{next: next, prefix: prefix}
}

// Prefix builds a key prefix for an application served from host, so that
// co-hosted applications sharing a backend do not collide.
func Prefix(base, host string) string {
	if base == "" {
		base = DefaultPrefix
	}
	if host == "" {
		return base
	}
	return base + host + "-"
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.next.Remove(ctx, p.prefix+key)
}
