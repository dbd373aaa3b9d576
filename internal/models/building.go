package models

import "time"

// Building groups rooms.
type Building struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Floor     int       `db:"floor" json:"floor"`
	Status    *string   `db:"status" json:"status,omitempty"`
	CreatedBy *int64    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BuildingRequest is the create/update payload.
type BuildingRequest struct {
	Name   string  `json:"name" validate:"required"`
	Code   string  `json:"code" validate:"required"`
	Floor  int     `json:"floor" validate:"gte=0"`
	Status *string `json:"status"`
}

// BuildingEnvelope wraps single-building responses as {"building": {...}}.
type BuildingEnvelope struct {
	Building Building `json:"building"`
}
