package domain

import "time"

// Membership is the edge asserting that a user belongs to a group.
type Membership struct {
	GroupID  int32     `json:"group_id"`
	UserID   int32     `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

// Member is a membership edge joined with the member's profile.
type Member struct {
	Membership
	User UserSummary `json:"user"`
}
