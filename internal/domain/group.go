package domain

import "time"

const (
	GroupNameMinLen        = 2
	GroupNameMaxLen        = 100
	GroupDescriptionMaxLen = 500
)

type StudyGroup struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	InviteCode  string    `json:"invite_code,omitempty"`
	OwnerID     int32     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupPatch is a partial update; nil fields are left untouched.
type GroupPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GroupSummary is the public projection returned by search.
type GroupSummary struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	OwnerName   string  `json:"owner_name"`
	MemberCount int32   `json:"member_count"`
}

// MyGroup is a group seen from one of its members.
type MyGroup struct {
	StudyGroup
	OwnerName   string    `json:"owner_name"`
	MemberCount int32     `json:"member_count"`
	IsOwner     bool      `json:"is_owner"`
	JoinedAt    time.Time `json:"joined_at"`
}

type GroupCounts struct {
	Members         int32 `json:"members"`
	PendingRequests int32 `json:"pending_requests"`
	Files           int32 `json:"files"`
	Sessions        int32 `json:"sessions"`
}

// GroupDetail is the member-only view of a group.
type GroupDetail struct {
	Group   StudyGroup  `json:"group"`
	Owner   UserSummary `json:"owner"`
	Members []Member    `json:"members"`
	Counts  GroupCounts `json:"counts"`
}
