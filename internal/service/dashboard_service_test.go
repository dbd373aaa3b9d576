package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

type stubDashboardRepo struct {
	counts *models.DashboardCounts
	err    error
	calls  int
}

func (s *stubDashboardRepo) Counts(context.Context) (*models.DashboardCounts, error) {
	s.calls++
	return s.counts, s.err
}

func TestDashboardCountsCached(t *testing.T) {
	repo := &stubDashboardRepo{counts: &models.DashboardCounts{UsersCount: 4, RoomsCount: 2}}
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewDashboardService(repo, cache, time.Minute, nil)

	counts, hit, err := svc.Counts(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 4, counts.UsersCount)

	counts, hit, err = svc.Counts(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, counts.RoomsCount)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboardCountsWithoutCache(t *testing.T) {
	repo := &stubDashboardRepo{counts: &models.DashboardCounts{}}
	svc := NewDashboardService(repo, nil, 0, nil)

	for i := 0; i < 2; i++ {
		_, hit, err := svc.Counts(context.Background())
		require.NoError(t, err)
		assert.False(t, hit)
	}
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardCountsError(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{err: errors.New("boom")}, nil, 0, nil)
	_, _, err := svc.Counts(context.Background())
	assert.True(t, errors.Is(err, appErrors.ErrInternal))
}
