// Package history keeps the bounded recent searches list and persists it
// under a single key of a local key-value store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"entitysearch/cmd/internal/domain/entity"

	"github.com/labstack/gommon/log"
)

const (
	// StorageKey is the key holding the JSON array of entries.
	StorageKey = "recentSearches"

	// MaxEntries bounds the list; older entries fall off the tail.
	MaxEntries = 10
)

// ErrNotFound is returned by a KeyValue backend when the key is absent.
var ErrNotFound = errors.New("key not found")

// KeyValue is the persistence the store writes through.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// AddParams describes one search or details-view action. A zero Timestamp
// means "now" according to the store clock.
type AddParams struct {
	Type      entity.SearchType
	Value     string
	Timestamp time.Time
	Entity    *entity.Entity
}

// Store is the single owner of the persisted recent searches. Every write
// goes through Add or Clear, which are serialised.
type Store struct {
	kv    KeyValue
	newID func() string
	now   func() time.Time

	mu      sync.RWMutex
	entries []entity.RecentSearch
}

type Option func(*Store)

// WithClock overrides the time source used when AddParams has no timestamp.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store. Call Load to read what is persisted.
func NewStore(kv KeyValue, newID func() string, opts ...Option) *Store {
	s := &Store{
		kv:      kv,
		newID:   newID,
		now:     func() time.Time { return time.Now().UTC() },
		entries: []entity.RecentSearch{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory list with the persisted one. Unreadable or
// malformed data is logged and leaves the store empty; it never fails.
func (s *Store) Load(ctx context.Context) {
	entries := s.read(ctx)

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
}

func (s *Store) read(ctx context.Context) []entity.RecentSearch {
	data, err := s.kv.Get(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return []entity.RecentSearch{}
	}
	if err != nil {
		log.Warnf("failed to read recent searches, starting empty: %v", err)
		return []entity.RecentSearch{}
	}

	var entries []entity.RecentSearch
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Warnf("failed to parse recent searches, starting empty: %v", err)
		return []entity.RecentSearch{}
	}
	if entries == nil {
		// A persisted "null" is as good as nothing.
		return []entity.RecentSearch{}
	}

	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

// Add records a search. A repeated (type, value) pair gets the new timestamp
// and moves to the front instead of being duplicated. The list is then cut
// to MaxEntries and persisted. On a persistence error the in-memory list is
// left as it was.
func (s *Store) Add(ctx context.Context, p AddParams) (entity.RecentSearch, error) {
	now := p.Timestamp
	if now.IsZero() {
		now = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]entity.RecentSearch, 0, len(s.entries)+1)

	var added entity.RecentSearch
	idx := slices.IndexFunc(s.entries, func(r entity.RecentSearch) bool {
		return r.SameQuery(p.Type, p.Value)
	})
	if idx >= 0 {
		added = s.entries[idx]
		added.Timestamp = now
		if p.Entity != nil {
			added.Entity = p.Entity
		}
	} else {
		added = entity.RecentSearch{
			ID:        s.newID(),
			Type:      p.Type,
			Value:     p.Value,
			Timestamp: now,
			Entity:    p.Entity,
		}
	}

	next = append(next, added)
	for i, r := range s.entries {
		if i != idx {
			next = append(next, r)
		}
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}

	if err := s.persist(ctx, next); err != nil {
		return entity.RecentSearch{}, err
	}
	s.entries = next
	return added, nil
}

// List returns a copy of the entries, most recently touched first.
func (s *Store) List() []entity.RecentSearch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Clear removes every entry, both persisted and in memory.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, StorageKey); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to clear recent searches: %w", err)
	}
	s.entries = []entity.RecentSearch{}
	return nil
}

// Snapshot returns the persisted representation of the current list.
func (s *Store) Snapshot() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *Store) persist(ctx context.Context, entries []entity.RecentSearch) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal recent searches: %w", err)
	}
	if err := s.kv.Put(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save recent searches: %w", err)
	}
	return nil
}

// SortByRecency orders entries by timestamp, newest first. Display code must
// use this rather than rely on the store order.
func SortByRecency(entries []entity.RecentSearch) []entity.RecentSearch {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b entity.RecentSearch) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return sorted
}
