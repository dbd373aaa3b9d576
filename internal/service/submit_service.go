package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

const defaultSubmitPageSize = 10

type submitRepository interface {
	List(ctx context.Context, filter models.SubmitFilter) ([]models.Submit, int, error)
}

// SubmitService lists room usage records.
type SubmitService struct {
	repo   submitRepository
	logger *zap.Logger
}

func NewSubmitService(repo submitRepository, logger *zap.Logger) *SubmitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitService{repo: repo, logger: logger}
}

// List returns one page of submits, newest first.
func (s *SubmitService) List(ctx context.Context, filter models.SubmitFilter) (*models.SubmitPage, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid date range"),
			map[string]string{"end_date": "end_date must not be before start_date"})
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultSubmitPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, repoError(err, "submit", "list")
	}
	if items == nil {
		items = []models.Submit{}
	}

	lastPage := (total + filter.PageSize - 1) / filter.PageSize
	if lastPage < 1 {
		lastPage = 1
	}
	return &models.SubmitPage{
		Data:        items,
		CurrentPage: filter.Page,
		PerPage:     filter.PageSize,
		Total:       total,
		LastPage:    lastPage,
	}, nil
}
