package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"entitysearch/cmd/internal/domain/dataset"
	"entitysearch/cmd/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	getErr  error
	putErr  error
	putHits int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: map[string][]byte{}}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *memoryKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putHits++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = value
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return strconv.Itoa(n)
	}
}

var baseTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return baseTime.Add(time.Duration(minutes) * time.Minute)
}

func newTestStore(kv KeyValue) *Store {
	s := NewStore(kv, sequentialIDs())
	s.Load(context.Background())
	return s
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newTestStore(newMemoryKV())
	assert.NotNil(t, s.List())
	assert.Empty(t, s.List())
}

func TestStore_AddNew(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	s := newTestStore(kv)

	added, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "João", Timestamp: at(0)})
	require.NoError(t, err)

	assert.Equal(t, "1", added.ID)
	assert.Equal(t, entity.SearchName, added.Type)
	assert.Equal(t, "João", added.Value)
	assert.Equal(t, at(0), added.Timestamp)
	assert.Nil(t, added.Entity)
	assert.Equal(t, []entity.RecentSearch{added}, s.List())

	var persisted []entity.RecentSearch
	require.NoError(t, json.Unmarshal(kv.data[StorageKey], &persisted))
	assert.Equal(t, s.List(), persisted)
}

func TestStore_AddUsesClockWhenNoTimestamp(t *testing.T) {
	s := NewStore(newMemoryKV(), sequentialIDs(), WithClock(func() time.Time { return at(42) }))

	added, err := s.Add(context.Background(), AddParams{Type: entity.SearchEmail, Value: "gmail"})
	require.NoError(t, err)
	assert.Equal(t, at(42), added.Timestamp)
}

func TestStore_AddSamePairTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	first, err := s.Add(ctx, AddParams{Type: entity.SearchPhone, Value: "11987654321", Timestamp: at(0)})
	require.NoError(t, err)
	second, err := s.Add(ctx, AddParams{Type: entity.SearchPhone, Value: "11987654321", Timestamp: at(5)})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, at(5), list[0].Timestamp)
}

func TestStore_SameValueDifferentTypeIsDistinct(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "centro", Timestamp: at(0)})
	require.NoError(t, err)
	_, err = s.Add(ctx, AddParams{Type: entity.SearchAddress, Value: "centro", Timestamp: at(1)})
	require.NoError(t, err)

	assert.Len(t, s.List(), 2)
}

func TestStore_RepeatMovesToFront(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	for i, v := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		_, err := s.Add(ctx, AddParams{Type: entity.SearchEmail, Value: v, Timestamp: at(i)})
		require.NoError(t, err)
	}
	_, err := s.Add(ctx, AddParams{Type: entity.SearchEmail, Value: "a@x.com", Timestamp: at(10)})
	require.NoError(t, err)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a@x.com", "c@x.com", "b@x.com"}, values(list))
	assert.Equal(t, at(10), list[0].Timestamp)
}

func TestStore_BoundedToTenMostRecent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	for i := 0; i < 15; i++ {
		_, err := s.Add(ctx, AddParams{
			Type:      entity.SearchName,
			Value:     fmt.Sprintf("name %02d", i),
			Timestamp: at(i),
		})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(s.List()), MaxEntries)
	}

	list := s.List()
	require.Len(t, list, MaxEntries)
	for i, r := range list {
		assert.Equal(t, fmt.Sprintf("name %02d", 14-i), r.Value)
	}
}

func TestStore_UpdateKeepsEntryFromEviction(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	for i := 0; i < MaxEntries; i++ {
		_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: fmt.Sprintf("n%d", i), Timestamp: at(i)})
		require.NoError(t, err)
	}
	// refresh the oldest, then push one new entry
	_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "n0", Timestamp: at(20)})
	require.NoError(t, err)
	_, err = s.Add(ctx, AddParams{Type: entity.SearchName, Value: "new", Timestamp: at(21)})
	require.NoError(t, err)

	got := values(s.List())
	assert.Len(t, got, MaxEntries)
	assert.Contains(t, got, "n0")
	assert.NotContains(t, got, "n1")
	assert.Equal(t, "new", got[0])
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	s := newTestStore(kv)

	entities := dataset.New()
	_, err := s.Add(ctx, AddParams{Type: entity.SearchDocument, Value: "123.456.789-01", Timestamp: at(0)})
	require.NoError(t, err)
	_, err = s.Add(ctx, AddParams{
		Type:      entity.SearchDetailsView,
		Value:     entities[3].Document,
		Timestamp: at(1),
		Entity:    &entities[3],
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, AddParams{
		Type:      entity.SearchDetailsView,
		Value:     entities[0].Document,
		Timestamp: at(2),
		Entity:    &entities[0],
	})
	require.NoError(t, err)

	reloaded := newTestStore(kv)
	assert.Equal(t, s.List(), reloaded.List())

	company := reloaded.List()[1].Entity
	require.NotNil(t, company)
	require.NotNil(t, company.CompanyInfo)
	assert.Nil(t, company.IndividualInfo)
	assert.Len(t, company.Shareholders, 2)
}

func TestStore_CorruptStorageStartsEmpty(t *testing.T) {
	for name, payload := range map[string]string{
		"not json":     "definitely not json",
		"wrong shape":  `{"id":"1"}`,
		"wrong fields": `[{"id":1,"timestamp":"yesterday"}]`,
		"null":         `null`,
	} {
		t.Run(name, func(t *testing.T) {
			kv := newMemoryKV()
			kv.data[StorageKey] = []byte(payload)

			var s *Store
			require.NotPanics(t, func() { s = newTestStore(kv) })
			assert.Equal(t, []entity.RecentSearch{}, s.List())

			// the store stays usable and overwrites the bad payload
			_, err := s.Add(context.Background(), AddParams{Type: entity.SearchName, Value: "abc", Timestamp: at(0)})
			require.NoError(t, err)
			assert.Len(t, s.List(), 1)
		})
	}
}

func TestStore_ToleratesMissingOptionalFields(t *testing.T) {
	kv := newMemoryKV()
	kv.data[StorageKey] = []byte(`[{"id":"7","type":"email","value":"gmail","timestamp":"2026-10-19T12:00:00Z"}]`)

	s := newTestStore(kv)
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "7", list[0].ID)
	assert.Nil(t, list[0].Entity)
	assert.Equal(t, baseTime, list[0].Timestamp)
}

func TestStore_LoadTruncatesOversizedPayload(t *testing.T) {
	entries := make([]entity.RecentSearch, 12)
	for i := range entries {
		entries[i] = entity.RecentSearch{ID: strconv.Itoa(i), Type: entity.SearchName, Value: strconv.Itoa(i), Timestamp: at(i)}
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)

	kv := newMemoryKV()
	kv.data[StorageKey] = data

	assert.Len(t, newTestStore(kv).List(), MaxEntries)
}

func TestStore_ReadErrorStartsEmpty(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("disk on fire")

	assert.Empty(t, newTestStore(kv).List())
}

func TestStore_FailedPersistLeavesListUntouched(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	s := newTestStore(kv)

	_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "abc", Timestamp: at(0)})
	require.NoError(t, err)
	before := s.List()

	kv.putErr = errors.New("read-only filesystem")
	_, err = s.Add(ctx, AddParams{Type: entity.SearchName, Value: "def", Timestamp: at(1)})
	assert.ErrorIs(t, err, kv.putErr)
	assert.Equal(t, before, s.List())
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	kv := newMemoryKV()
	s := newTestStore(kv)

	_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "abc", Timestamp: at(0)})
	require.NoError(t, err)

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.List())
	assert.NotContains(t, kv.data, StorageKey)
	assert.Empty(t, newTestStore(kv).List())
}

func TestStore_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())
	_, err := s.Add(ctx, AddParams{Type: entity.SearchName, Value: "abc", Timestamp: at(0)})
	require.NoError(t, err)

	list := s.List()
	list[0].Value = "mutated"
	assert.Equal(t, "abc", s.List()[0].Value)
}

func TestStore_ConcurrentAddsKeepInvariants(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(newMemoryKV())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Add(ctx, AddParams{Type: entity.SearchName, Value: fmt.Sprintf("v%d", i%12)})
		}(i)
	}
	wg.Wait()

	list := s.List()
	assert.Len(t, list, MaxEntries)
	seen := map[string]bool{}
	for _, r := range list {
		assert.False(t, seen[r.Value], "duplicate %s", r.Value)
		seen[r.Value] = true
	}
}

func TestSortByRecency(t *testing.T) {
	entries := []entity.RecentSearch{
		{ID: "1", Timestamp: at(1)},
		{ID: "2", Timestamp: at(3)},
		{ID: "3", Timestamp: at(2)},
	}

	sorted := SortByRecency(entries)
	assert.Equal(t, []string{"2", "3", "1"}, ids(sorted))
	assert.Equal(t, "1", entries[0].ID, "input must not be reordered")
}

func values(list []entity.RecentSearch) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Value
	}
	return out
}

func ids(list []entity.RecentSearch) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.ID
	}
	return out
}
