package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchLoadsOnceUntilInvalidated(t *testing.T) {
	s := New(0)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"A101"}, nil
	}
	key := Key{Kind: KindRooms}

	for i := 0; i < 3; i++ {
		v, err := Fetch(ctx, s, key, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"A101"}, v)
	}
	assert.Equal(t, 1, calls)

	s.Invalidate(KindRooms)
	_, err := Fetch(ctx, s, key, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheFailures(t *testing.T) {
	s := New(0)
	_, err := Fetch(context.Background(), s, Key{Kind: KindUsers}, func(context.Context) (int, error) {
		return 0, errors.New("boom")
	})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestInvalidateDropsEveryScopeOfKind(t *testing.T) {
	s := New(0)
	Put(s, Key{Kind: KindSchedules, Scope: "1"}, 1)
	Put(s, Key{Kind: KindSchedules, Scope: "2"}, 2)
	Put(s, Key{Kind: KindCourses}, 3)

	s.Invalidate(KindSchedules)
	_, ok := Get[int](s, Key{Kind: KindSchedules, Scope: "1"})
	assert.False(t, ok)
	v, ok := Get[int](s, Key{Kind: KindCourses})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	s.Drop(Key{Kind: KindCourses})
	assert.Equal(t, 0, s.Len())
}

func TestEntriesExpireAfterTTL(t *testing.T) {
	s := New(time.Minute)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	Put(s, Key{Kind: KindDashboard}, "counts")
	_, ok := Get[string](s, Key{Kind: KindDashboard})
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = Get[string](s, Key{Kind: KindDashboard})
	assert.False(t, ok)
}

func TestGetWrongTypeIsMiss(t *testing.T) {
	s := New(0)
	Put(s, Key{Kind: KindUsers}, "x")
	_, ok := Get[int](s, Key{Kind: KindUsers})
	assert.False(t, ok)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
