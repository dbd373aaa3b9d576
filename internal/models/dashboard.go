package models

// DashboardCounts is served as a bare object.
type DashboardCounts struct {
	UsersCount     int `db:"users_count" json:"users_count"`
	CoursesCount   int `db:"courses_count" json:"courses_count"`
	BuildingsCount int `db:"buildings_count" json:"buildings_count"`
	RoomsCount     int `db:"rooms_count" json:"rooms_count"`
	SubmitsCount   int `db:"submits_count" json:"submits_count"`
	SchedulesCount int `db:"schedules_count" json:"schedules_count"`
}
