package http

import (
	"context"
	"io"

	"studybuddy-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) GetUser(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) CreateGroup(ctx context.Context, ownerID int32, name string, description *string) (*domain.StudyGroup, error) {
	args := m.Called(ctx, ownerID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockGroupService) UpdateGroup(ctx context.Context, groupID, requesterID int32, patch domain.GroupPatch) (*domain.StudyGroup, error) {
	args := m.Called(ctx, groupID, requesterID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockGroupService) DeleteGroup(ctx context.Context, groupID, requesterID int32) error {
	args := m.Called(ctx, groupID, requesterID)
	return args.Error(0)
}
func (m *MockGroupService) GetGroup(ctx context.Context, groupID, userID int32) (*domain.GroupDetail, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupDetail), args.Error(1)
}
func (m *MockGroupService) SearchGroups(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]domain.GroupSummary), args.Error(1)
}
func (m *MockGroupService) ListMyGroups(ctx context.Context, userID int32) ([]domain.MyGroup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MyGroup), args.Error(1)
}

type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) IsMember(ctx context.Context, groupID, userID int32) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMembershipService) RequireMember(ctx context.Context, groupID, userID int32) (*domain.StudyGroup, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockMembershipService) AddMember(ctx context.Context, groupID, userID int32) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}
func (m *MockMembershipService) RemoveMember(ctx context.Context, groupID, userID, requesterID int32) error {
	args := m.Called(ctx, groupID, userID, requesterID)
	return args.Error(0)
}
func (m *MockMembershipService) ListMembers(ctx context.Context, groupID, requesterID int32) ([]domain.Member, error) {
	args := m.Called(ctx, groupID, requesterID)
	return args.Get(0).([]domain.Member), args.Error(1)
}

type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) GenerateCode(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
func (m *MockInviteService) ResolveByCode(ctx context.Context, code string) (*domain.StudyGroup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockInviteService) AdmitByCode(ctx context.Context, code string, userID int32) (int32, error) {
	args := m.Called(ctx, code, userID)
	return args.Get(0).(int32), args.Error(1)
}

type MockJoinRequestService struct {
	mock.Mock
}

func (m *MockJoinRequestService) CreateRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestService) AcceptRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestService) RejectRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, requestID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestService) CancelRequest(ctx context.Context, requestID, userID int32) error {
	args := m.Called(ctx, requestID, userID)
	return args.Error(0)
}
func (m *MockJoinRequestService) GetPendingRequests(ctx context.Context, groupID, requesterID int32) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, requesterID)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestService) GetMyRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestService) CountPending(ctx context.Context, groupID, requesterID int32) (int32, error) {
	args := m.Called(ctx, groupID, requesterID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockJoinRequestService) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int32), args.Error(1)
}

type MockFileService struct {
	mock.Mock
}

func (m *MockFileService) Upload(ctx context.Context, groupID, userID int32, filename, mimeType string, size int64, content io.Reader) (*domain.File, error) {
	// Drain the part so the handler sees a fully consumed body.
	data, _ := io.ReadAll(content)
	args := m.Called(ctx, groupID, userID, filename, mimeType, string(data))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}
func (m *MockFileService) List(ctx context.Context, groupID, userID int32) ([]domain.File, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Get(0).([]domain.File), args.Error(1)
}
func (m *MockFileService) Download(ctx context.Context, fileID, userID int32) (*domain.File, io.ReadCloser, error) {
	args := m.Called(ctx, fileID, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.File), args.Get(1).(io.ReadCloser), args.Error(2)
}
func (m *MockFileService) Delete(ctx context.Context, fileID, userID int32) error {
	args := m.Called(ctx, fileID, userID)
	return args.Error(0)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, groupID, userID int32, in domain.SessionInput) (*domain.StudySession, error) {
	args := m.Called(ctx, groupID, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}
func (m *MockSessionService) List(ctx context.Context, groupID, userID int32, filter domain.SessionFilter) ([]domain.StudySession, error) {
	args := m.Called(ctx, groupID, userID, filter)
	return args.Get(0).([]domain.StudySession), args.Error(1)
}
func (m *MockSessionService) Get(ctx context.Context, sessionID, userID int32) (*domain.StudySession, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}
func (m *MockSessionService) Update(ctx context.Context, sessionID, userID int32, patch domain.SessionPatch) (*domain.StudySession, error) {
	args := m.Called(ctx, sessionID, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}
func (m *MockSessionService) Delete(ctx context.Context, sessionID, userID int32) error {
	args := m.Called(ctx, sessionID, userID)
	return args.Error(0)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context, userID int32) (*domain.DashboardStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(ctx context.Context) error { return p.err }
