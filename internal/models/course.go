package models

import "time"

type Course struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Code        string    `db:"code" json:"code"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CourseRequest struct {
	Name        string  `json:"name" validate:"required"`
	Code        string  `json:"code"`
	Description *string `json:"description"`
}
