// Package store is the per-session cache of API reads. Entries are keyed by
// entity kind and a scope (room id, user id, query) and are dropped
// explicitly after a mutation of that kind.
package store

import (
	"context"
	"sync"
	"time"
)

// Kind names an entity collection.
type Kind string

const (
	KindBuildings Kind = "buildings"
	KindRooms     Kind = "rooms"
	KindCourses   Kind = "courses"
	KindUsers     Kind = "users"
	KindSchedules Kind = "schedules"
	KindTimetable Kind = "timetable"
	KindDashboard Kind = "dashboard"
	KindSubmits   Kind = "submits"
)

// Key addresses one cached read. Scope is empty for a full collection.
type Key struct {
	Kind  Kind
	Scope string
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[Key]entry
}

// New returns an empty store. A ttl of zero keeps entries until invalidated.
func New(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, entries: make(map[Key]entry)}
}

// Put stores v under key.
func Put[T any](s *Store, key Key, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: v, storedAt: s.now()}
}

// Get returns the fresh value under key.
func Get[T any](s *Store, key Key) (T, bool) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return zero, false
	}
	if s.ttl > 0 && s.now().Sub(e.storedAt) > s.ttl {
		delete(s.entries, key)
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// Fetch returns the cached value or calls load and caches its result.
// Failed loads are not cached.
func Fetch[T any](ctx context.Context, s *Store, key Key, load func(context.Context) (T, error)) (T, error) {
	if v, ok := Get[T](s, key); ok {
		return v, nil
	}
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	Put(s, key, v)
	return v, nil
}

// Invalidate drops every scope of the given kinds.
func (s *Store) Invalidate(kinds ...Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		for _, kind := range kinds {
			if key.Kind == kind {
				delete(s.entries, key)
				break
			}
		}
	}
}

// Drop removes a single key.
func (s *Store) Drop(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[Key]entry)
}

// Len reports the number of entries, expired ones included.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
