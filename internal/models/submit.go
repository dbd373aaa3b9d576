package models

import "time"

// Submit is a read-only room usage record.
type Submit struct {
	ID            int64        `json:"id"`
	Room          *RoomSummary `json:"room,omitempty"`
	User          *Ref         `json:"user,omitempty"`
	SubmittedDate time.Time    `json:"submitted_date"`
	Type          string       `json:"type"`
	Note          *string      `json:"note,omitempty"`
}

// SubmitFilter narrows the submits listing. Dates are inclusive.
type SubmitFilter struct {
	UserID    *int64
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// SubmitPage is the paginated submits response.
type SubmitPage struct {
	Data        []Submit `json:"data"`
	CurrentPage int      `json:"current_page"`
	PerPage     int      `json:"per_page"`
	Total       int      `json:"total"`
	LastPage    int      `json:"last_page"`
}
