package service

import (
	"context"
	"encoding/json"
	"errors"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type memoryCache struct {
	data     map[string][]byte
	getErr   error
	deleted  []string
	setCalls int
}

func newMemoryCache() *memoryCache { return &memoryCache{data: map[string][]byte{}} }

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.setCalls++
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.data, k)
		}
	}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, NewMetricsService("t"), time.Minute, nil, true)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, svc.Get(ctx, "k", &out))

	svc.Set(ctx, "k", map[string]int{"a": 1}, 0)
	assert.True(t, svc.Get(ctx, "k", &out))
	assert.Equal(t, 1, out["a"])
}

func TestCacheServiceErrorIsMiss(t *testing.T) {
	repo := newMemoryCache()
	repo.getErr = errors.New("redis down")
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	var out int
	assert.False(t, svc.Get(context.Background(), "k", &out))
}

func TestCacheServiceInvalidateTimetables(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)
	ctx := context.Background()
	svc.Set(ctx, TimetableCacheKey(7), "x", 0)
	svc.Set(ctx, CacheKeyDashboard, "y", 0)

	svc.InvalidateTimetables(ctx)
	assert.Empty(t, repo.data)
	assert.Equal(t, []string{"timetable:user:*", "dash:counts"}, repo.deleted)
}

func TestNilCacheServiceIsDisabled(t *testing.T) {
	var svc *CacheService
	var out int
	assert.False(t, svc.Enabled())
	assert.False(t, svc.Get(context.Background(), "k", &out))
	svc.Set(context.Background(), "k", 1, 0)
	svc.InvalidateCounts(context.Background())
}
