package models

import "time"

// Room belongs to exactly one building.
type Room struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Floor      int       `db:"floor" json:"floor"`
	Status     bool      `db:"status" json:"status"`
	BuildingID int64     `db:"building_id" json:"building_id"`
	Building   *Ref      `db:"-" json:"building,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// RoomRequest is the create payload. Status defaults to false when omitted.
type RoomRequest struct {
	Name       string `json:"name" validate:"required"`
	Floor      int    `json:"floor" validate:"gte=0"`
	BuildingID int64  `json:"building_id" validate:"required,gt=0"`
	Status     *bool  `json:"status"`
}

// RoomUpdateRequest is a partial update; nil fields are left unchanged.
type RoomUpdateRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1"`
	Floor      *int    `json:"floor" validate:"omitempty,gte=0"`
	BuildingID *int64  `json:"building_id" validate:"omitempty,gt=0"`
	Status     *bool   `json:"status"`
}

// RoomSummary is the room embedded in submit rows.
type RoomSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Building *Ref   `json:"building,omitempty"`
}
