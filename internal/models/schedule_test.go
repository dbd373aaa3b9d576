package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSlotFieldNames(t *testing.T) {
	assert.Equal(t, "time_7_9_am", Slot7To9AM.TeacherField())
	assert.Equal(t, "time_7_9_am_course", Slot7To9AM.CourseField())
	assert.Equal(t, "time7_9_am_teacher", Slot7To9AM.TeacherEmbed())
	assert.Equal(t, "time7_9_am_course", Slot7To9AM.CourseEmbed())
	assert.Equal(t, "3-5 PM", Slot3To5PM.Header())
	assert.Equal(t, []string{"7:00 - 9:00", "9:00 - 11:00", "1:00 - 3:00", "3:00 - 5:00"}, TimetableLabels())
}

func TestDayIndex(t *testing.T) {
	assert.Equal(t, 0, Monday.Index())
	assert.Equal(t, 6, Sunday.Index())
	assert.False(t, Day("Funday").Valid())
}

func TestScheduleDecodeReadShape(t *testing.T) {
	body := `{
		"id": "12", "room_id": 3, "day": "Tuesday",
		"room": {"id": 3, "name": "A101"},
		"time_7_9_am": 5, "time_7_9_am_course": null,
		"time7_9_am_teacher": {"id": 5, "name": "Ann"}, "time7_9_am_course": null,
		"time_1_3_pm": "", "time_1_3_pm_course": "9",
		"time1_3_pm_course": {"id": 9, "name": "Physics"}
	}`

	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, int64(12), s.ID)
	assert.Equal(t, int64(3), s.RoomID)
	assert.Equal(t, Tuesday, s.Day)
	assert.Equal(t, "A101", s.Room.Name)

	first := s.Slot(Slot7To9AM)
	assert.Equal(t, int64(5), *first.TeacherID)
	assert.Nil(t, first.CourseID)
	assert.Equal(t, "Ann", first.Teacher.Name)
	assert.Nil(t, first.Course)

	afternoon := s.Slot(Slot1To3PM)
	assert.Nil(t, afternoon.TeacherID)
	assert.Equal(t, int64(9), *afternoon.CourseID)
	assert.Equal(t, "Physics", afternoon.Course.Name)

	assert.True(t, s.Slot(Slot3To5PM).Empty())
}

func TestScheduleEncodeWritesEveryKey(t *testing.T) {
	s := Schedule{ID: 1, RoomID: 2, Day: Friday}
	s.SetSlot(Slot9To11AM, SlotAssignment{CourseID: ptr(int64(4)), Course: &Ref{ID: 4, Name: "Math"}})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, slot := range Slots {
		assert.Contains(t, raw, slot.TeacherField())
		assert.Contains(t, raw, slot.CourseField())
		assert.Contains(t, raw, slot.TeacherEmbed())
		assert.Contains(t, raw, slot.CourseEmbed())
	}
	assert.Equal(t, float64(4), raw["time_9_11_am_course"])
	assert.Nil(t, raw["time_9_11_am"])
}

func TestScheduleWriteTracksPresence(t *testing.T) {
	var w ScheduleWrite
	require.NoError(t, json.Unmarshal([]byte(`{"time_7_9_am": null, "time_3_5_pm_course": 8}`), &w))

	assert.Nil(t, w.RoomID)
	assert.Nil(t, w.Day)
	require.Contains(t, w.Slots, Slot7To9AM)
	assert.True(t, w.Slots[Slot7To9AM].TeacherSet)
	assert.False(t, w.Slots[Slot7To9AM].CourseSet)
	assert.NotContains(t, w.Slots, Slot9To11AM)

	s := Schedule{RoomID: 1, Day: Monday}
	s.SetSlot(Slot7To9AM, SlotAssignment{TeacherID: ptr(int64(2)), CourseID: ptr(int64(3))})
	w.Apply(&s)

	assert.Nil(t, s.Slot(Slot7To9AM).TeacherID)
	assert.Equal(t, int64(3), *s.Slot(Slot7To9AM).CourseID)
	assert.Equal(t, int64(8), *s.Slot(Slot3To5PM).CourseID)
	assert.Equal(t, Monday, s.Day)
}

func TestFullScheduleWriteSendsNulls(t *testing.T) {
	w := FullScheduleWrite(3, Monday, map[Slot]SlotAssignment{
		Slot7To9AM: {TeacherID: ptr(int64(5))},
	})
	data, err := json.Marshal(w)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 2+2*len(Slots))
	assert.Equal(t, float64(3), raw["room_id"])
	assert.Equal(t, float64(5), raw["time_7_9_am"])
	assert.Contains(t, raw, "time_3_5_pm_course")
	assert.Nil(t, raw["time_3_5_pm_course"])
}
