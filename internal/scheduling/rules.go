// Package scheduling holds the optional validation rules applied to schedule rows.
// No rule is enforced unless enabled; the zero Rules accepts every row.
package scheduling

import (
	"fmt"
	"strings"

	"github.com/noah-isme/sma-room-console/internal/models"
	"github.com/noah-isme/sma-room-console/pkg/config"
	appErrors "github.com/noah-isme/sma-room-console/pkg/errors"
)

// Dimension names what a violation collides on.
type Dimension string

const (
	DimensionRoomDay   Dimension = "ROOM_DAY"
	DimensionTeacher   Dimension = "TEACHER"
	DimensionEmpty     Dimension = "EMPTY"
	DimensionReference Dimension = "REFERENCE"
	DimensionDay       Dimension = "DAY"
)

// Rules toggles each check independently.
type Rules struct {
	UniqueRoomDay          bool
	NoTeacherDoubleBooking bool
	RequireAssignment      bool
	VerifyReferences       bool
}

// FromConfig maps the SCHEDULE_* settings.
func FromConfig(cfg config.ScheduleConfig) Rules {
	return Rules{
		UniqueRoomDay:          cfg.UniqueRoomDay,
		NoTeacherDoubleBooking: cfg.NoTeacherDoubleBooking,
		RequireAssignment:      cfg.RequireAssignment,
		VerifyReferences:       cfg.VerifyReferences,
	}
}

// Enabled reports whether any rule is on.
func (r Rules) Enabled() bool {
	return r.UniqueRoomDay || r.NoTeacherDoubleBooking || r.RequireAssignment || r.VerifyReferences
}

// NeedsExisting reports whether Check must see the other rows of the same day.
func (r Rules) NeedsExisting() bool {
	return r.UniqueRoomDay || r.NoTeacherDoubleBooking
}

// Violation describes one failed rule.
type Violation struct {
	Dimension  Dimension   `json:"dimension"`
	Message    string      `json:"message"`
	ScheduleID int64       `json:"schedule_id,omitempty"`
	Slot       models.Slot `json:"slot,omitempty"`
}

func (v Violation) Error() string { return v.Message }

// References is the set of teacher and course ids known to exist.
type References struct {
	Teachers map[int64]struct{}
	Courses  map[int64]struct{}
}

// NewReferences builds a References from id lists.
func NewReferences(teacherIDs, courseIDs []int64) *References {
	refs := &References{
		Teachers: make(map[int64]struct{}, len(teacherIDs)),
		Courses:  make(map[int64]struct{}, len(courseIDs)),
	}
	for _, id := range teacherIDs {
		refs.Teachers[id] = struct{}{}
	}
	for _, id := range courseIDs {
		refs.Courses[id] = struct{}{}
	}
	return refs
}

// Check validates candidate against existing rows. Rows sharing the candidate's
// id are ignored so an update never collides with itself. A nil known skips
// reference checks.
func (r Rules) Check(candidate models.Schedule, existing []models.Schedule, known *References) []Violation {
	var out []Violation

	if r.Enabled() && !candidate.Day.Valid() {
		out = append(out, Violation{Dimension: DimensionDay, Message: fmt.Sprintf("unknown day %q", candidate.Day)})
	}

	if r.RequireAssignment {
		empty := true
		for _, slot := range models.Slots {
			if !candidate.Slot(slot).Empty() {
				empty = false
				break
			}
		}
		if empty {
			out = append(out, Violation{Dimension: DimensionEmpty, Message: "at least one slot must be assigned"})
		}
	}

	if r.VerifyReferences && known != nil {
		for _, slot := range models.Slots {
			a := candidate.Slot(slot)
			if a.TeacherID != nil {
				if _, ok := known.Teachers[*a.TeacherID]; !ok {
					out = append(out, Violation{Dimension: DimensionReference, Slot: slot,
						Message: fmt.Sprintf("teacher %d in %s does not exist", *a.TeacherID, slot.Header())})
				}
			}
			if a.CourseID != nil {
				if _, ok := known.Courses[*a.CourseID]; !ok {
					out = append(out, Violation{Dimension: DimensionReference, Slot: slot,
						Message: fmt.Sprintf("course %d in %s does not exist", *a.CourseID, slot.Header())})
				}
			}
		}
	}

	for _, other := range existing {
		if candidate.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if other.Day != candidate.Day {
			continue
		}
		if r.UniqueRoomDay && other.RoomID == candidate.RoomID {
			out = append(out, Violation{Dimension: DimensionRoomDay, ScheduleID: other.ID,
				Message: fmt.Sprintf("room already has a schedule on %s", candidate.Day)})
		}
		if r.NoTeacherDoubleBooking {
			for _, slot := range models.Slots {
				mine, theirs := candidate.Slot(slot).TeacherID, other.Slot(slot).TeacherID
				if mine != nil && theirs != nil && *mine == *theirs {
					out = append(out, Violation{Dimension: DimensionTeacher, ScheduleID: other.ID, Slot: slot,
						Message: fmt.Sprintf("teacher %d already booked on %s %s", *mine, candidate.Day, slot.Header())})
				}
			}
		}
	}

	return out
}

// AsError folds violations into a CONFLICT error, or nil when there are none.
func AsError(violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	messages := make([]string, len(violations))
	fields := make(map[string]string, len(violations))
	for i, v := range violations {
		messages[i] = v.Message
		key := string(v.Dimension)
		if v.Slot != "" {
			key = string(v.Slot)
		}
		if _, seen := fields[key]; !seen {
			fields[key] = v.Message
		}
	}
	err := appErrors.Clone(appErrors.ErrScheduleRule, "schedule conflict: "+strings.Join(messages, "; "))
	return appErrors.WithFields(err, fields)
}
