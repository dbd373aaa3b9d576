package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Day is a weekday name as stored and transmitted ("Monday".."Sunday").
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the week starting Monday.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Index returns the position of d in Days, or -1 for unknown names.
func (d Day) Index() int {
	for i, day := range Days {
		if day == d {
			return i
		}
	}
	return -1
}

func (d Day) Valid() bool { return d.Index() >= 0 }

// Slot identifies one of the four fixed teaching periods. The value is the wire
// name of the slot's teacher id field.
type Slot string

const (
	Slot7To9AM  Slot = "time_7_9_am"
	Slot9To11AM Slot = "time_9_11_am"
	Slot1To3PM  Slot = "time_1_3_pm"
	Slot3To5PM  Slot = "time_3_5_pm"
)

// Slots is the canonical day order. Everything that walks slots iterates this.
var Slots = []Slot{Slot7To9AM, Slot9To11AM, Slot1To3PM, Slot3To5PM}

var slotMeta = map[Slot]struct{ header, label string }{
	Slot7To9AM:  {"7-9 AM", "7:00 - 9:00"},
	Slot9To11AM: {"9-11 AM", "9:00 - 11:00"},
	Slot1To3PM:  {"1-3 PM", "1:00 - 3:00"},
	Slot3To5PM:  {"3-5 PM", "3:00 - 5:00"},
}

func (s Slot) Valid() bool {
	_, ok := slotMeta[s]
	return ok
}

// TeacherField is the write-side teacher id key, e.g. time_7_9_am.
func (s Slot) TeacherField() string { return string(s) }

// CourseField is the write-side course id key, e.g. time_7_9_am_course.
func (s Slot) CourseField() string { return string(s) + "_course" }

// TeacherEmbed is the read-side teacher summary key, e.g. time7_9_am_teacher.
func (s Slot) TeacherEmbed() string { return s.embedStem() + "_teacher" }

// CourseEmbed is the read-side course summary key, e.g. time7_9_am_course.
func (s Slot) CourseEmbed() string { return s.embedStem() + "_course" }

func (s Slot) embedStem() string { return "time" + strings.TrimPrefix(string(s), "time_") }

// Header is the column title in the assignment grid.
func (s Slot) Header() string { return slotMeta[s].header }

// TimetableLabel is the row label in the timetable pivot.
func (s Slot) TimetableLabel() string { return slotMeta[s].label }

// TimetableLabels returns the four row labels in slot order.
func TimetableLabels() []string {
	labels := make([]string, len(Slots))
	for i, s := range Slots {
		labels[i] = s.TimetableLabel()
	}
	return labels
}

// SlotAssignment pairs an optional teacher with an optional course.
type SlotAssignment struct {
	TeacherID *int64
	CourseID  *int64
	Teacher   *Ref
	Course    *Ref
}

// Empty reports whether neither half of the slot is set.
func (a SlotAssignment) Empty() bool { return a.TeacherID == nil && a.CourseID == nil }

// Schedule assigns teachers and courses to the slots of one room on one day.
type Schedule struct {
	ID        int64
	RoomID    int64
	Day       Day
	Slots     map[Slot]SlotAssignment
	Room      *Ref
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Slot returns the assignment for s; missing slots are empty.
func (s Schedule) Slot(slot Slot) SlotAssignment {
	if s.Slots == nil {
		return SlotAssignment{}
	}
	return s.Slots[slot]
}

// SetSlot stores an assignment, allocating the map on first use.
func (s *Schedule) SetSlot(slot Slot, a SlotAssignment) {
	if s.Slots == nil {
		s.Slots = make(map[Slot]SlotAssignment, len(Slots))
	}
	s.Slots[slot] = a
}

// MarshalJSON writes the flat wire shape with id fields and embedded summaries.
func (s Schedule) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"id":      s.ID,
		"room_id": s.RoomID,
		"day":     s.Day,
	}
	if s.Room != nil {
		out["room"] = s.Room
	}
	if !s.CreatedAt.IsZero() {
		out["created_at"] = s.CreatedAt
		out["updated_at"] = s.UpdatedAt
	}
	for _, slot := range Slots {
		a := s.Slot(slot)
		out[slot.TeacherField()] = a.TeacherID
		out[slot.CourseField()] = a.CourseID
		out[slot.TeacherEmbed()] = a.Teacher
		out[slot.CourseEmbed()] = a.Course
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts ids as numbers, numeric strings or null.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var decoded Schedule
	if id, err := decodeOptionalID(raw["id"]); err != nil {
		return fmt.Errorf("schedule id: %w", err)
	} else if id != nil {
		decoded.ID = *id
	}
	if id, err := decodeOptionalID(raw["room_id"]); err != nil {
		return fmt.Errorf("schedule room_id: %w", err)
	} else if id != nil {
		decoded.RoomID = *id
	}
	if v, ok := raw["day"]; ok {
		if err := json.Unmarshal(v, &decoded.Day); err != nil {
			return fmt.Errorf("schedule day: %w", err)
		}
	}
	if v, ok := raw["room"]; ok {
		if err := json.Unmarshal(v, &decoded.Room); err != nil {
			return fmt.Errorf("schedule room: %w", err)
		}
	}
	for _, key := range []string{"created_at", "updated_at"} {
		v, ok := raw[key]
		if !ok || string(v) == "null" {
			continue
		}
		target := &decoded.CreatedAt
		if key == "updated_at" {
			target = &decoded.UpdatedAt
		}
		if err := json.Unmarshal(v, target); err != nil {
			return fmt.Errorf("schedule %s: %w", key, err)
		}
	}

	for _, slot := range Slots {
		var a SlotAssignment
		var err error
		if a.TeacherID, err = decodeOptionalID(raw[slot.TeacherField()]); err != nil {
			return fmt.Errorf("schedule %s: %w", slot.TeacherField(), err)
		}
		if a.CourseID, err = decodeOptionalID(raw[slot.CourseField()]); err != nil {
			return fmt.Errorf("schedule %s: %w", slot.CourseField(), err)
		}
		if v, ok := raw[slot.TeacherEmbed()]; ok {
			if err := json.Unmarshal(v, &a.Teacher); err != nil {
				return fmt.Errorf("schedule %s: %w", slot.TeacherEmbed(), err)
			}
		}
		if v, ok := raw[slot.CourseEmbed()]; ok {
			if err := json.Unmarshal(v, &a.Course); err != nil {
				return fmt.Errorf("schedule %s: %w", slot.CourseEmbed(), err)
			}
		}
		decoded.SetSlot(slot, a)
	}

	*s = decoded
	return nil
}

// SlotPatch carries one slot of a write payload. The *Set flags record whether
// the key was present so PATCH can tell "clear" from "leave unchanged".
type SlotPatch struct {
	TeacherSet bool
	TeacherID  *int64
	CourseSet  bool
	CourseID   *int64
}

// ScheduleWrite is the POST/PATCH body for schedules.
type ScheduleWrite struct {
	RoomID *int64
	Day    *Day
	Slots  map[Slot]SlotPatch
}

// FullScheduleWrite builds a write that sets every slot, nulls included.
func FullScheduleWrite(roomID int64, day Day, slots map[Slot]SlotAssignment) ScheduleWrite {
	w := ScheduleWrite{RoomID: &roomID, Day: &day, Slots: make(map[Slot]SlotPatch, len(Slots))}
	for _, slot := range Slots {
		a := slots[slot]
		w.Slots[slot] = SlotPatch{TeacherSet: true, TeacherID: a.TeacherID, CourseSet: true, CourseID: a.CourseID}
	}
	return w
}

func (w ScheduleWrite) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if w.RoomID != nil {
		out["room_id"] = *w.RoomID
	}
	if w.Day != nil {
		out["day"] = *w.Day
	}
	for _, slot := range Slots {
		p, ok := w.Slots[slot]
		if !ok {
			continue
		}
		if p.TeacherSet {
			out[slot.TeacherField()] = p.TeacherID
		}
		if p.CourseSet {
			out[slot.CourseField()] = p.CourseID
		}
	}
	return json.Marshal(out)
}

func (w *ScheduleWrite) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	decoded := ScheduleWrite{Slots: map[Slot]SlotPatch{}}
	if v, ok := raw["room_id"]; ok {
		id, err := decodeOptionalID(v)
		if err != nil {
			return fmt.Errorf("room_id: %w", err)
		}
		decoded.RoomID = id
	}
	if v, ok := raw["day"]; ok && string(v) != "null" {
		var day Day
		if err := json.Unmarshal(v, &day); err != nil {
			return fmt.Errorf("day: %w", err)
		}
		decoded.Day = &day
	}
	for _, slot := range Slots {
		var p SlotPatch
		var err error
		if v, ok := raw[slot.TeacherField()]; ok {
			p.TeacherSet = true
			if p.TeacherID, err = decodeOptionalID(v); err != nil {
				return fmt.Errorf("%s: %w", slot.TeacherField(), err)
			}
		}
		if v, ok := raw[slot.CourseField()]; ok {
			p.CourseSet = true
			if p.CourseID, err = decodeOptionalID(v); err != nil {
				return fmt.Errorf("%s: %w", slot.CourseField(), err)
			}
		}
		if p.TeacherSet || p.CourseSet {
			decoded.Slots[slot] = p
		}
	}

	*w = decoded
	return nil
}

// Apply merges the present fields of w into s.
func (w ScheduleWrite) Apply(s *Schedule) {
	if w.RoomID != nil {
		s.RoomID = *w.RoomID
	}
	if w.Day != nil {
		s.Day = *w.Day
	}
	for slot, p := range w.Slots {
		a := s.Slot(slot)
		if p.TeacherSet {
			a.TeacherID, a.Teacher = p.TeacherID, nil
		}
		if p.CourseSet {
			a.CourseID, a.Course = p.CourseID, nil
		}
		s.SetSlot(slot, a)
	}
}
