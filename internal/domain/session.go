package domain

import "time"

const (
	SessionTitleMinLen       = 2
	SessionTitleMaxLen       = 200
	SessionDescriptionMaxLen = 1000
	SessionLocationMaxLen    = 200
)

type SessionFilter string

const (
	SessionFilterAll      SessionFilter = ""
	SessionFilterUpcoming SessionFilter = "upcoming"
	SessionFilterPast     SessionFilter = "past"
)

type StudySession struct {
	ID          int32        `json:"id"`
	GroupID     int32        `json:"group_id"`
	CreatedBy   int32        `json:"created_by"`
	Title       string       `json:"title"`
	Description *string      `json:"description,omitempty"`
	Date        time.Time    `json:"date"`
	Link        *string      `json:"link,omitempty"`
	Location    *string      `json:"location,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Creator     *UserSummary `json:"creator,omitempty"`
}

type SessionInput struct {
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Link        *string   `json:"link,omitempty"`
	Location    *string   `json:"location,omitempty"`
}

type SessionPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	Link        *string    `json:"link,omitempty"`
	Location    *string    `json:"location,omitempty"`
}

type DashboardStats struct {
	Groups          int32 `json:"groups"`
	Files           int32 `json:"files"`
	Sessions        int32 `json:"sessions"`
	PendingRequests int32 `json:"pending_requests"`
}
