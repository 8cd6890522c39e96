package repository

import (
	"context"
	"errors"
	"time"

	"studybuddy-backend/internal/domain"
)

// ErrInviteCodeTaken is returned by GroupRepository.CreateWithOwner when the
// generated invite code lost a race with another group.
var ErrInviteCodeTaken = errors.New("invite code already in use")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type GroupRepository interface {
	// CreateWithOwner inserts the group and the owner's membership edge in
	// one transaction.
	CreateWithOwner(ctx context.Context, group *domain.StudyGroup) error
	GetByID(ctx context.Context, id int32) (*domain.StudyGroup, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.StudyGroup, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, group *domain.StudyGroup) error
	// Delete removes the group with its memberships, join requests, files
	// and sessions in one transaction and returns the storage keys of the
	// deleted files.
	Delete(ctx context.Context, id int32) ([]string, error)
	Search(ctx context.Context, query string, limit int) ([]domain.GroupSummary, error)
	ListByMember(ctx context.Context, userID int32) ([]domain.MyGroup, error)
	GetCounts(ctx context.Context, groupID int32) (*domain.GroupCounts, error)
}

type MembershipRepository interface {
	Exists(ctx context.Context, groupID, userID int32) (bool, error)
	Add(ctx context.Context, m *domain.Membership) error
	// Remove deletes the edge and the pair's ACCEPTED join request in one
	// transaction. Returns domain.ErrNotFound when no edge exists.
	Remove(ctx context.Context, groupID, userID int32) error
	ListByGroup(ctx context.Context, groupID int32) ([]domain.Member, error)
}

type JoinRequestRepository interface {
	Create(ctx context.Context, req *domain.JoinRequest) error
	GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error)
	// GetLive returns the pair's PENDING or ACCEPTED request, if any.
	GetLive(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error)
	// GetLatest returns the pair's most recent request of any status.
	GetLatest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error)
	// Accept marks a PENDING request ACCEPTED and inserts the membership edge
	// in one transaction.
	Accept(ctx context.Context, req *domain.JoinRequest) error
	// Reject moves a PENDING request to REJECTED.
	Reject(ctx context.Context, req *domain.JoinRequest) error
	// DeletePending deletes a request only while it is still PENDING.
	DeletePending(ctx context.Context, id int32) error
	ListPending(ctx context.Context, groupID int32) ([]domain.JoinRequest, error)
	CountPending(ctx context.Context, groupID int32) (int32, error)
	CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error)
	ListPendingDigests(ctx context.Context) ([]domain.PendingDigest, error)
}

type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	GetByID(ctx context.Context, id int32) (*domain.File, error)
	ListByGroup(ctx context.Context, groupID int32) ([]domain.File, error)
	Delete(ctx context.Context, id int32) error
	StorageKeyExists(ctx context.Context, key string) (bool, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.StudySession) error
	GetByID(ctx context.Context, id int32) (*domain.StudySession, error)
	ListByGroup(ctx context.Context, groupID int32, filter domain.SessionFilter, now time.Time) ([]domain.StudySession, error)
	Update(ctx context.Context, session *domain.StudySession) error
	Delete(ctx context.Context, id int32) error
}

type DashboardRepository interface {
	GetStats(ctx context.Context, userID int32) (*domain.DashboardStats, error)
}
