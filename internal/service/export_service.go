package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
	"github.com/noah-isme/sma-room-console/pkg/export"
)

const unassignedCell = "Unassigned"

type timetableSource interface {
	ForUser(ctx context.Context, userID int64) (models.Timetable, bool, error)
}

// ExportResult is a rendered timetable file.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders a user's timetable as CSV, PDF or XLSX.
type ExportService struct {
	timetables timetableSource
	renderers  map[export.Format]export.Renderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService. A nil renderer map selects the built-in renderers.
func NewExportService(timetables timetableSource, renderers map[export.Format]export.Renderer, logger *zap.Logger) *ExportService {
	if renderers == nil {
		renderers = export.Renderers()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{timetables: timetables, renderers: renderers, logger: logger}
}

// Timetable renders userID's timetable in the requested format.
func (s *ExportService) Timetable(ctx context.Context, userID int64, rawFormat string) (*ExportResult, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnsupportedFormat.Code, appErrors.ErrUnsupportedFormat.Status, err.Error())
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	timetable, _, err := s.timetables.ForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	dataset := TimetableDataset(fmt.Sprintf("Timetable for user %d", userID), timetable)
	payload, err := renderer.Render(dataset)
	if err != nil {
		s.logger.Error("render timetable export", zap.Int64("user_id", userID), zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Filename:    fmt.Sprintf("timetable-user-%d.%s", userID, format),
		ContentType: format.ContentType(),
		Payload:     payload,
	}, nil
}

// TimetableDataset lays the pivot out as one row per time label and one column per day.
func TimetableDataset(title string, timetable models.Timetable) export.Dataset {
	days := timetable.Days()
	headers := append([]string{"Time"}, days...)
	rows := make([]map[string]string, 0, len(models.Slots))
	for _, label := range models.TimetableLabels() {
		row := map[string]string{"Time": label}
		for _, day := range days {
			row[day] = formatCell(timetable.Cell(day, label))
		}
		rows = append(rows, row)
	}
	return export.Dataset{Title: title, Headers: headers, Rows: rows}
}

func formatCell(entries []models.TimetableEntry) string {
	if len(entries) == 0 {
		return unassignedCell
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, deref(e.Room, unassignedCell)+" / "+deref(e.Course, unassignedCell))
	}
	return strings.Join(parts, "; ")
}

func deref(ptr *string, fallback string) string {
	if ptr == nil || *ptr == "" {
		return fallback
	}
	return *ptr
}
