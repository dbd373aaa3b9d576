package models

import "sort"

// TimetableEntry is one assignment cell. Any part may be null.
type TimetableEntry struct {
	Room    *string `json:"room"`
	Course  *string `json:"course"`
	Teacher *string `json:"teacher"`
}

// Timetable maps day name to time label to entries.
type Timetable map[string]map[string][]TimetableEntry

// TimetableResponse is served as {"timetable": {...}}.
type TimetableResponse struct {
	Timetable Timetable `json:"timetable"`
}

// Days returns the day keys present in t, weekdays first in calendar order and
// any other keys after them alphabetically.
func (t Timetable) Days() []string {
	days := make([]string, 0, len(t))
	for day := range t {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		a, b := Day(days[i]).Index(), Day(days[j]).Index()
		switch {
		case a >= 0 && b >= 0:
			return a < b
		case a >= 0:
			return true
		case b >= 0:
			return false
		}
		return days[i] < days[j]
	})
	return days
}

// Cell returns the entries of one day and time label.
func (t Timetable) Cell(day, label string) []TimetableEntry {
	return t[day][label]
}
