package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

// memDB is an in-memory stand-in for the postgres store that keeps the same
// uniqueness rules, so multi-step workflows can be exercised end to end.
type memDB struct {
	mu      sync.Mutex
	nextID  int32
	users   map[int32]*domain.User
	groups  map[int32]*domain.StudyGroup
	members map[[2]int32]time.Time
	reqs    map[int32]*domain.JoinRequest
}

func newMemDB() *memDB {
	return &memDB{
		users:   map[int32]*domain.User{},
		groups:  map[int32]*domain.StudyGroup{},
		members: map[[2]int32]time.Time{},
		reqs:    map[int32]*domain.JoinRequest{},
	}
}

func (db *memDB) id() int32 {
	db.nextID++
	return db.nextID
}

func (db *memDB) addUser(name, email string) *domain.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &domain.User{ID: db.id(), Name: name, Email: email, Role: domain.UserRoleStudent}
	db.users[u.ID] = u
	return u
}

type memUsers struct{ *memDB }

func (r memUsers) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.NewConflictError("user already exists with this email")
		}
	}
	u.ID = r.id()
	r.users[u.ID] = u
	return nil
}

func (r memUsers) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user not found")
	}
	return u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("user not found")
}

type memGroups struct{ *memDB }

func (r memGroups) CreateWithOwner(ctx context.Context, g *domain.StudyGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.groups {
		if existing.InviteCode == g.InviteCode {
			return repository.ErrInviteCodeTaken
		}
	}
	g.ID = r.id()
	cp := *g
	r.groups[g.ID] = &cp
	r.members[[2]int32{g.ID, g.OwnerID}] = time.Now()
	return nil
}

func (r memGroups) GetByID(ctx context.Context, id int32) (*domain.StudyGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.NewNotFoundError("group not found")
	}
	cp := *g
	return &cp, nil
}

func (r memGroups) GetByInviteCode(ctx context.Context, code string) (*domain.StudyGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.groups {
		if g.InviteCode == code {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("group not found")
}

func (r memGroups) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByInviteCode(ctx, code)
	return err == nil, nil
}

func (r memGroups) Update(ctx context.Context, g *domain.StudyGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[g.ID]; !ok {
		return domain.NewNotFoundError("group not found")
	}
	cp := *g
	r.groups[g.ID] = &cp
	return nil
}

func (r memGroups) Delete(ctx context.Context, id int32) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[id]; !ok {
		return nil, domain.NewNotFoundError("group not found")
	}
	delete(r.groups, id)
	for k := range r.members {
		if k[0] == id {
			delete(r.members, k)
		}
	}
	for k, req := range r.reqs {
		if req.GroupID == id {
			delete(r.reqs, k)
		}
	}
	return nil, nil
}

func (r memGroups) Search(ctx context.Context, q string, limit int) ([]domain.GroupSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.GroupSummary{}
	for _, g := range r.groups {
		if strings.Contains(strings.ToLower(g.Name), strings.ToLower(q)) {
			out = append(out, domain.GroupSummary{ID: g.ID, Name: g.Name, Description: g.Description})
		}
	}
	return out, nil
}

func (r memGroups) ListByMember(ctx context.Context, userID int32) ([]domain.MyGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.MyGroup{}
	for k, joined := range r.members {
		if k[1] == userID {
			g := r.groups[k[0]]
			out = append(out, domain.MyGroup{StudyGroup: *g, IsOwner: g.OwnerID == userID, JoinedAt: joined})
		}
	}
	return out, nil
}

func (r memGroups) GetCounts(ctx context.Context, groupID int32) (*domain.GroupCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := &domain.GroupCounts{}
	for k := range r.members {
		if k[0] == groupID {
			counts.Members++
		}
	}
	for _, req := range r.reqs {
		if req.GroupID == groupID && req.Status == domain.JoinRequestStatusPending {
			counts.PendingRequests++
		}
	}
	return counts, nil
}

type memMembers struct{ *memDB }

func (r memMembers) Exists(ctx context.Context, groupID, userID int32) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[[2]int32{groupID, userID}]
	return ok, nil
}

func (r memMembers) Add(ctx context.Context, m *domain.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int32{m.GroupID, m.UserID}
	if _, ok := r.members[key]; ok {
		return domain.NewConflictError("user is already a member of this group")
	}
	m.JoinedAt = time.Now()
	r.members[key] = m.JoinedAt
	return nil
}

func (r memMembers) Remove(ctx context.Context, groupID, userID int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int32{groupID, userID}
	if _, ok := r.members[key]; !ok {
		return domain.NewNotFoundError("user is not a member of this group")
	}
	delete(r.members, key)
	for id, req := range r.reqs {
		if req.GroupID == groupID && req.UserID == userID && req.Status == domain.JoinRequestStatusAccepted {
			delete(r.reqs, id)
		}
	}
	return nil
}

func (r memMembers) ListByGroup(ctx context.Context, groupID int32) ([]domain.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Member{}
	for k, joined := range r.members {
		if k[0] == groupID {
			u := r.users[k[1]]
			out = append(out, domain.Member{
				Membership: domain.Membership{GroupID: k[0], UserID: k[1], JoinedAt: joined},
				User:       domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email},
			})
		}
	}
	return out, nil
}

type memRequests struct{ *memDB }

func (r memRequests) live(groupID, userID int32) *domain.JoinRequest {
	for _, req := range r.reqs {
		if req.GroupID == groupID && req.UserID == userID && req.Status != domain.JoinRequestStatusRejected {
			return req
		}
	}
	return nil
}

func (r memRequests) Create(ctx context.Context, req *domain.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.live(req.GroupID, req.UserID) != nil {
		return domain.NewConflictError("you already have a pending request for this group")
	}
	req.ID = r.id()
	req.Status = domain.JoinRequestStatusPending
	req.CreatedAt = time.Now()
	cp := *req
	r.reqs[req.ID] = &cp
	return nil
}

func (r memRequests) GetByID(ctx context.Context, id int32) (*domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, domain.NewNotFoundError("request not found")
	}
	cp := *req
	return &cp, nil
}

func (r memRequests) GetLive(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req := r.live(groupID, userID); req != nil {
		cp := *req
		return &cp, nil
	}
	return nil, domain.NewNotFoundError("request not found")
}

func (r memRequests) GetLatest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.JoinRequest
	for _, req := range r.reqs {
		if req.GroupID == groupID && req.UserID == userID && (latest == nil || req.ID > latest.ID) {
			latest = req
		}
	}
	if latest == nil {
		return nil, domain.NewNotFoundError("request not found")
	}
	cp := *latest
	return &cp, nil
}

func (r memRequests) transition(req *domain.JoinRequest, to domain.JoinRequestStatus) error {
	stored, ok := r.reqs[req.ID]
	if !ok || stored.Status != domain.JoinRequestStatusPending {
		return domain.NewConflictError("request has already been processed")
	}
	stored.Status = to
	req.Status = to
	return nil
}

func (r memRequests) Accept(ctx context.Context, req *domain.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := [2]int32{req.GroupID, req.UserID}
	if _, ok := r.members[key]; ok {
		return domain.NewConflictError("user is already a member of this group")
	}
	if err := r.transition(req, domain.JoinRequestStatusAccepted); err != nil {
		return err
	}
	r.members[key] = time.Now()
	return nil
}

func (r memRequests) Reject(ctx context.Context, req *domain.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transition(req, domain.JoinRequestStatusRejected)
}

func (r memRequests) DeletePending(ctx context.Context, id int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok || req.Status != domain.JoinRequestStatusPending {
		return domain.NewConflictError("cannot cancel a processed request")
	}
	delete(r.reqs, id)
	return nil
}

func (r memRequests) ListPending(ctx context.Context, groupID int32) ([]domain.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.JoinRequest{}
	for _, req := range r.reqs {
		if req.GroupID == groupID && req.Status == domain.JoinRequestStatusPending {
			out = append(out, *req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memRequests) CountPending(ctx context.Context, groupID int32) (int32, error) {
	pending, _ := r.ListPending(ctx, groupID)
	return int32(len(pending)), nil
}

func (r memRequests) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	return 0, nil
}

func (r memRequests) ListPendingDigests(ctx context.Context) ([]domain.PendingDigest, error) {
	return nil, nil
}
