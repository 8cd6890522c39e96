package domain

import "time"

type JoinRequestStatus string

const (
	JoinRequestStatusPending  JoinRequestStatus = "PENDING"
	JoinRequestStatusAccepted JoinRequestStatus = "ACCEPTED"
	JoinRequestStatusRejected JoinRequestStatus = "REJECTED"
)

// IsTerminal reports whether the status can no longer transition.
func (s JoinRequestStatus) IsTerminal() bool {
	return s == JoinRequestStatusAccepted || s == JoinRequestStatusRejected
}

type JoinRequest struct {
	ID        int32             `json:"id"`
	GroupID   int32             `json:"group_id"`
	UserID    int32             `json:"user_id"`
	Status    JoinRequestStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	User      *UserSummary      `json:"user,omitempty"`
}

// PendingDigest is one owner's pending request count for one group.
type PendingDigest struct {
	OwnerID    int32  `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	OwnerEmail string `json:"owner_email"`
	GroupID    int32  `json:"group_id"`
	GroupName  string `json:"group_name"`
	Pending    int32  `json:"pending"`
}
