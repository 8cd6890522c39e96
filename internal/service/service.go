package service

import (
	"context"
	"io"

	"studybuddy-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error) // user, session token
	GetUser(ctx context.Context, userID int32) (*domain.User, error)
}

// GroupService is the group registry plus the read surface built on it.
type GroupService interface {
	CreateGroup(ctx context.Context, ownerID int32, name string, description *string) (*domain.StudyGroup, error)
	UpdateGroup(ctx context.Context, groupID, requesterID int32, patch domain.GroupPatch) (*domain.StudyGroup, error)
	DeleteGroup(ctx context.Context, groupID, requesterID int32) error
	GetGroup(ctx context.Context, groupID, userID int32) (*domain.GroupDetail, error)
	SearchGroups(ctx context.Context, query string) ([]domain.GroupSummary, error)
	ListMyGroups(ctx context.Context, userID int32) ([]domain.MyGroup, error)
}

// MembershipService is the membership ledger. Every membership-gated
// operation in the system authorizes through RequireMember or IsMember.
type MembershipService interface {
	IsMember(ctx context.Context, groupID, userID int32) (bool, error)
	// RequireMember returns the group when userID belongs to it, NotFound
	// when the group does not exist and Forbidden otherwise.
	RequireMember(ctx context.Context, groupID, userID int32) (*domain.StudyGroup, error)
	AddMember(ctx context.Context, groupID, userID int32) error
	RemoveMember(ctx context.Context, groupID, userID, requesterID int32) error
	ListMembers(ctx context.Context, groupID, requesterID int32) ([]domain.Member, error)
}

type JoinRequestService interface {
	CreateRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error)
	AcceptRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error)
	RejectRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error)
	CancelRequest(ctx context.Context, requestID, userID int32) error
	GetPendingRequests(ctx context.Context, groupID, requesterID int32) ([]domain.JoinRequest, error)
	GetMyRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error)
	CountPending(ctx context.Context, groupID, requesterID int32) (int32, error)
	CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error)
}

type InviteService interface {
	GenerateCode(ctx context.Context) (string, error)
	ResolveByCode(ctx context.Context, code string) (*domain.StudyGroup, error) // nil when unknown
	AdmitByCode(ctx context.Context, code string, userID int32) (int32, error)
}

type FileService interface {
	Upload(ctx context.Context, groupID, userID int32, filename, mimeType string, size int64, content io.Reader) (*domain.File, error)
	List(ctx context.Context, groupID, userID int32) ([]domain.File, error)
	Download(ctx context.Context, fileID, userID int32) (*domain.File, io.ReadCloser, error)
	Delete(ctx context.Context, fileID, userID int32) error
}

type SessionService interface {
	Create(ctx context.Context, groupID, userID int32, in domain.SessionInput) (*domain.StudySession, error)
	List(ctx context.Context, groupID, userID int32, filter domain.SessionFilter) ([]domain.StudySession, error)
	Get(ctx context.Context, sessionID, userID int32) (*domain.StudySession, error)
	Update(ctx context.Context, sessionID, userID int32, patch domain.SessionPatch) (*domain.StudySession, error)
	Delete(ctx context.Context, sessionID, userID int32) error
}

type DashboardService interface {
	GetStats(ctx context.Context, userID int32) (*domain.DashboardStats, error)
}

type EmailService interface {
	SendJoinRequestNotification(ctx context.Context, ownerEmail, ownerName, requesterName, groupName string) error
	SendJoinRequestDecision(ctx context.Context, email, name, groupName string, accepted bool) error
	SendPendingDigest(ctx context.Context, email, name string, groups []domain.PendingDigest) error
}
