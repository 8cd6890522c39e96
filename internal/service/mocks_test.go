package service_test

import (
	"context"
	"io"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockGroupRepo
type MockGroupRepo struct {
	mock.Mock
}

func (m *MockGroupRepo) CreateWithOwner(ctx context.Context, group *domain.StudyGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) GetByID(ctx context.Context, id int32) (*domain.StudyGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockGroupRepo) GetByInviteCode(ctx context.Context, code string) (*domain.StudyGroup, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudyGroup), args.Error(1)
}
func (m *MockGroupRepo) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *MockGroupRepo) Update(ctx context.Context, group *domain.StudyGroup) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}
func (m *MockGroupRepo) Delete(ctx context.Context, id int32) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockGroupRepo) Search(ctx context.Context, query string, limit int) ([]domain.GroupSummary, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.GroupSummary), args.Error(1)
}
func (m *MockGroupRepo) ListByMember(ctx context.Context, userID int32) ([]domain.MyGroup, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MyGroup), args.Error(1)
}
func (m *MockGroupRepo) GetCounts(ctx context.Context, groupID int32) (*domain.GroupCounts, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GroupCounts), args.Error(1)
}

// MockMembershipRepo
type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) Exists(ctx context.Context, groupID, userID int32) (bool, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockMembershipRepo) Add(ctx context.Context, membership *domain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}
func (m *MockMembershipRepo) Remove(ctx context.Context, groupID, userID int32) error {
	args := m.Called(ctx, groupID, userID)
	return args.Error(0)
}
func (m *MockMembershipRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.Member, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.Member), args.Error(1)
}

// MockJoinRequestRepo
type MockJoinRequestRepo struct {
	mock.Mock
}

func (m *MockJoinRequestRepo) Create(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetLive(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) GetLatest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) Accept(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) Reject(ctx context.Context, req *domain.JoinRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) DeletePending(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJoinRequestRepo) ListPending(ctx context.Context, groupID int32) ([]domain.JoinRequest, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.JoinRequest), args.Error(1)
}
func (m *MockJoinRequestRepo) CountPending(ctx context.Context, groupID int32) (int32, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockJoinRequestRepo) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockJoinRequestRepo) ListPendingDigests(ctx context.Context) ([]domain.PendingDigest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PendingDigest), args.Error(1)
}

// MockFileRepo
type MockFileRepo struct {
	mock.Mock
}

func (m *MockFileRepo) Create(ctx context.Context, file *domain.File) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}
func (m *MockFileRepo) GetByID(ctx context.Context, id int32) (*domain.File, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.File), args.Error(1)
}
func (m *MockFileRepo) ListByGroup(ctx context.Context, groupID int32) ([]domain.File, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]domain.File), args.Error(1)
}
func (m *MockFileRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockFileRepo) StorageKeyExists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepo) GetByID(ctx context.Context, id int32) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}
func (m *MockSessionRepo) ListByGroup(ctx context.Context, groupID int32, filter domain.SessionFilter, now time.Time) ([]domain.StudySession, error) {
	args := m.Called(ctx, groupID, filter, now)
	return args.Get(0).([]domain.StudySession), args.Error(1)
}
func (m *MockSessionRepo) Update(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendJoinRequestNotification(ctx context.Context, ownerEmail, ownerName, requesterName, groupName string) error {
	args := m.Called(ctx, ownerEmail, ownerName, requesterName, groupName)
	return args.Error(0)
}
func (m *MockEmailService) SendJoinRequestDecision(ctx context.Context, email, name, groupName string, accepted bool) error {
	args := m.Called(ctx, email, name, groupName, accepted)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingDigest(ctx context.Context, email, name string, groups []domain.PendingDigest) error {
	args := m.Called(ctx, email, name, groups)
	return args.Error(0)
}

// MockStorage
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, key string, reader io.Reader, limit int64) (int64, error) {
	args := m.Called(ctx, key, reader, limit)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockStorage) List(ctx context.Context) ([]storage.Object, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Object), args.Error(1)
}
