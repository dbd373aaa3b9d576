package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-room-console/internal/models"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
	"github.com/noah-isme/sma-room-console/pkg/export"
)

type stubTimetableSource struct {
	timetable models.Timetable
	err       error
}

func (s stubTimetableSource) ForUser(context.Context, int64) (models.Timetable, bool, error) {
	return s.timetable, false, s.err
}

type recordingRenderer struct{ got export.Dataset }

func (r *recordingRenderer) Render(data export.Dataset) ([]byte, error) {
	r.got = data
	return []byte("ok"), nil
}

func strptr(s string) *string { return &s }

func TestTimetableDatasetLayout(t *testing.T) {
	timetable := models.Timetable{
		"Wednesday": {"1:00 - 3:00": {{Room: strptr("A101"), Course: strptr("Math")}}},
		"Monday":    {},
	}
	data := TimetableDataset("t", timetable)

	assert.Equal(t, []string{"Time", "Monday", "Wednesday"}, data.Headers)
	require.Len(t, data.Rows, 4)
	assert.Equal(t, "7:00 - 9:00", data.Rows[0]["Time"])
	assert.Equal(t, "Unassigned", data.Rows[0]["Monday"])
	assert.Equal(t, "A101 / Math", data.Rows[2]["Wednesday"])
}

func TestExportTimetableUsesRenderer(t *testing.T) {
	rec := &recordingRenderer{}
	svc := NewExportService(stubTimetableSource{timetable: models.Timetable{}}, map[export.Format]export.Renderer{export.FormatPDF: rec}, nil)

	res, err := svc.Timetable(context.Background(), 7, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "timetable-user-7.pdf", res.Filename)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, []string{"Time"}, rec.got.Headers)
	assert.Len(t, rec.got.Rows, 4)
}

func TestExportTimetableUnsupportedFormat(t *testing.T) {
	svc := NewExportService(stubTimetableSource{}, nil, nil)
	_, err := svc.Timetable(context.Background(), 7, "docx")
	assert.True(t, errors.Is(err, appErrors.ErrUnsupportedFormat))
}

func TestExportTimetableCSVDefault(t *testing.T) {
	svc := NewExportService(stubTimetableSource{timetable: models.Timetable{}}, nil, nil)
	res, err := svc.Timetable(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Contains(t, string(res.Payload), "Time")
}
