package events

import (
	"sync"
	"time"
)

// Registry держит по одному store на сессию (bearer-токен + роль).
// Состояние живет только в памяти процесса - персистентности за пределами
// сессии браузера нет.
type Registry struct {
	factory func(role Role) *Store
	clock   TimeProvider

	mu      sync.Mutex
	entries map[registryKey]*registryEntry
}

type registryKey struct {
	token string
	role  Role
}

type registryEntry struct {
	store      *Store
	lastAccess time.Time
}

// NewRegistry создает реестр store-ов с фабрикой для новых сессий
func NewRegistry(factory func(role Role) *Store) *Registry {
	return &Registry{
		factory: factory,
		clock:   &RealTimeProvider{},
		entries: make(map[registryKey]*registryEntry),
	}
}

// Get возвращает store сессии, создавая его при первом обращении
func (r *Registry) Get(token string, role Role) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{token: token, role: role}
	entry, ok := r.entries[key]
	if !ok {
		entry = &registryEntry{store: r.factory(role)}
		r.entries[key] = entry
	}
	entry.lastAccess = r.clock.Now()
	return entry.store
}

// Invalidate удаляет все store-ы сессии (например, после 401 от бэкенда)
func (r *Registry) Invalidate(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.entries {
		if key.token == token {
			delete(r.entries, key)
		}
	}
}

// Purge удаляет store-ы, к которым не обращались дольше maxIdle
// Вызывается периодически из main
func (r *Registry) Purge(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.clock.Now().Add(-maxIdle)
	var removed int
	for key, entry := range r.entries {
		if entry.lastAccess.Before(cutoff) {
			delete(r.entries, key)
			removed++
		}
	}
	return removed
}

// Len возвращает число активных сессий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
