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

type stubSubmitRepo struct {
	total  int
	filter models.SubmitFilter
}

func (s *stubSubmitRepo) List(_ context.Context, filter models.SubmitFilter) ([]models.Submit, int, error) {
	s.filter = filter
	return nil, s.total, nil
}

func TestSubmitListDefaultsAndLastPage(t *testing.T) {
	repo := &stubSubmitRepo{total: 21}
	svc := NewSubmitService(repo, nil)

	page, err := svc.List(context.Background(), models.SubmitFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 10, page.PerPage)
	assert.Equal(t, 3, page.LastPage)
	assert.NotNil(t, page.Data)
	assert.Equal(t, 10, repo.filter.PageSize)
}

func TestSubmitListEmptyHasOnePage(t *testing.T) {
	page, err := NewSubmitService(&stubSubmitRepo{}, nil).List(context.Background(), models.SubmitFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.LastPage)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestSubmitListRejectsInvertedRange(t *testing.T) {
	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)
	_, err := NewSubmitService(&stubSubmitRepo{}, nil).List(context.Background(), models.SubmitFilter{StartDate: &start, EndDate: &end})
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}
