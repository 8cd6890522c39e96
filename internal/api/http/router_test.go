package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCookie = "studybuddy_session"

type harness struct {
	router    *mux.Router
	tokens    security.TokenManager
	auth      *MockAuthService
	groups    *MockGroupService
	members   *MockMembershipService
	invites   *MockInviteService
	requests  *MockJoinRequestService
	files     *MockFileService
	sessions  *MockSessionService
	dashboard *MockDashboardService
}

func newHarness(pingErr error) *harness {
	h := &harness{
		tokens:    security.NewTokenManager("test-secret", time.Hour),
		auth:      new(MockAuthService),
		groups:    new(MockGroupService),
		members:   new(MockMembershipService),
		invites:   new(MockInviteService),
		requests:  new(MockJoinRequestService),
		files:     new(MockFileService),
		sessions:  new(MockSessionService),
		dashboard: new(MockDashboardService),
	}
	h.router = NewRouter(Handlers{
		Auth:      NewAuthHandler(h.auth, CookieConfig{Name: testCookie, MaxAge: time.Hour}),
		Groups:    NewGroupHandler(h.groups, h.members, h.invites),
		Requests:  NewJoinRequestHandler(h.requests),
		Files:     NewFileHandler(h.files, 0),
		Sessions:  NewSessionHandler(h.sessions),
		Dashboard: NewDashboardHandler(h.dashboard),
		Health:    NewHealthHandler(fakePinger{err: pingErr}),
	}, NewAuthMiddleware(h.tokens, testCookie))
	return h
}

// do serves one request, authenticated as userID when it is non-zero.
func (h *harness) do(t *testing.T, method, path string, body io.Reader, contentType string, userID int32) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if userID != 0 {
		token, err := h.tokens.GenerateToken(userID, "user@test.com")
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

func (h *harness) doJSON(t *testing.T, method, path, body string, userID int32) *httptest.ResponseRecorder {
	t.Helper()
	return h.do(t, method, path, strings.NewReader(body), "application/json", userID)
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestAuthMiddleware(t *testing.T) {
	h := newHarness(nil)
	h.groups.On("ListMyGroups", mock.Anything, int32(7)).Return([]domain.MyGroup{}, nil)
	h.groups.On("SearchGroups", mock.Anything, "cs").Return([]domain.GroupSummary{{ID: 1, Name: "CS101"}}, nil)

	rec := h.do(t, http.MethodGet, "/api/groups", nil, "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/groups", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "garbage"})
	rec = httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/groups", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Search needs no session.
	rec = h.do(t, http.MethodGet, "/api/groups/search?q=cs", nil, "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CS101")
	assert.NotContains(t, rec.Body.String(), "invite_code")
}

func TestAuthHandler_LoginAndLogout(t *testing.T) {
	h := newHarness(nil)
	h.auth.On("Login", mock.Anything, "ada@test.com", "password123").Return(&domain.User{ID: 7, Email: "ada@test.com"}, "signed-token", nil)
	h.auth.On("Login", mock.Anything, "ada@test.com", "nope").Return(nil, "", domain.NewUnauthenticatedError("invalid email or password"))

	rec := h.doJSON(t, http.MethodPost, "/api/auth/login", `{"email":"ada@test.com","password":"password123"}`, 0)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, testCookie, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = h.doJSON(t, http.MethodPost, "/api/auth/login", `{"email":"ada@test.com","password":"nope"}`, 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = h.do(t, http.MethodPost, "/api/auth/logout", nil, "", 0)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestAuthHandler_Me(t *testing.T) {
	h := newHarness(nil)
	h.auth.On("GetUser", mock.Anything, int32(7)).Return(&domain.User{ID: 7, Name: "Ada", PasswordHash: "secret-hash"}, nil)

	rec := h.do(t, http.MethodGet, "/api/auth/me", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ada")
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("bad"), http.StatusBadRequest},
		{domain.NewUnauthenticatedError("who"), http.StatusUnauthorized},
		{domain.NewForbiddenError("no"), http.StatusForbidden},
		{domain.NewNotFoundError("gone"), http.StatusNotFound},
		{domain.NewConflictError("again"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}

func TestGroupHandler_Create(t *testing.T) {
	h := newHarness(nil)
	desc := "Intro"
	h.groups.On("CreateGroup", mock.Anything, int32(7), "CS101", &desc).Return(&domain.StudyGroup{ID: 1, Name: "CS101", InviteCode: "ABC234", OwnerID: 7}, nil)
	h.groups.On("CreateGroup", mock.Anything, int32(7), "A", (*string)(nil)).Return(nil, domain.NewValidationError("group name must be between 2 and 100 characters"))

	rec := h.doJSON(t, http.MethodPost, "/api/groups", `{"name":"CS101","description":"Intro"}`, 7)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "ABC234")

	rec = h.doJSON(t, http.MethodPost, "/api/groups", `{"name":"A"}`, 7)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "between 2 and 100")

	rec = h.doJSON(t, http.MethodPost, "/api/groups", `{not json`, 7)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGroupHandler_InternalErrorsAreHidden(t *testing.T) {
	h := newHarness(nil)
	h.groups.On("GetGroup", mock.Anything, int32(1), int32(7)).Return(nil, errors.New("pq: connection refused"))

	rec := h.do(t, http.MethodGet, "/api/groups/1", nil, "", 7)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorBody(t, rec))
}

func TestGroupHandler_JoinByCode(t *testing.T) {
	h := newHarness(nil)
	h.invites.On("AdmitByCode", mock.Anything, "ABC234", int32(7)).Return(int32(1), nil)
	h.invites.On("AdmitByCode", mock.Anything, "ZZZZZZ", int32(7)).Return(int32(0), domain.NewNotFoundError("invalid invite code"))
	h.invites.On("AdmitByCode", mock.Anything, "MEMBER", int32(7)).Return(int32(0), domain.NewConflictError("you are already a member of this group"))

	rec := h.doJSON(t, http.MethodPost, "/api/groups/join-by-code", `{"invite_code":"ABC234"}`, 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"group_id":1}`, rec.Body.String())

	rec = h.doJSON(t, http.MethodPost, "/api/groups/join-by-code", `{"invite_code":"ZZZZZZ"}`, 7)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = h.doJSON(t, http.MethodPost, "/api/groups/join-by-code", `{"invite_code":"MEMBER"}`, 7)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGroupHandler_LeaveAndKick(t *testing.T) {
	h := newHarness(nil)
	h.members.On("RemoveMember", mock.Anything, int32(1), int32(7), int32(7)).Return(domain.NewForbiddenError("the group owner cannot be removed; delete the group instead"))
	h.members.On("RemoveMember", mock.Anything, int32(1), int32(9), int32(7)).Return(nil)

	rec := h.do(t, http.MethodDelete, "/api/groups/1/members/me", nil, "", 7)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodDelete, "/api/groups/1/members/9", nil, "", 7)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	h.members.AssertExpectations(t)
}

func TestJoinRequestHandler(t *testing.T) {
	h := newHarness(nil)
	h.requests.On("CreateRequest", mock.Anything, int32(1), int32(8)).Return(&domain.JoinRequest{ID: 5, GroupID: 1, UserID: 8, Status: domain.JoinRequestStatusPending}, nil)
	h.requests.On("AcceptRequest", mock.Anything, int32(5), int32(7)).Return(&domain.JoinRequest{ID: 5, Status: domain.JoinRequestStatusAccepted}, nil).Once()
	h.requests.On("AcceptRequest", mock.Anything, int32(5), int32(7)).Return(nil, domain.NewConflictError("request has already been processed"))
	h.requests.On("GetPendingRequests", mock.Anything, int32(1), int32(7)).Return([]domain.JoinRequest{}, nil)
	h.requests.On("CancelRequest", mock.Anything, int32(5), int32(8)).Return(nil)

	rec := h.do(t, http.MethodPost, "/api/groups/1/requests", nil, "", 8)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"PENDING"`)

	rec = h.do(t, http.MethodPost, "/api/requests/5/accept", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ACCEPTED"`)

	rec = h.do(t, http.MethodPost, "/api/requests/5/accept", nil, "", 7)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "request has already been processed", errorBody(t, rec))

	rec = h.do(t, http.MethodGet, "/api/groups/1/requests", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"requests":[]}`, rec.Body.String())

	rec = h.do(t, http.MethodDelete, "/api/requests/5", nil, "", 8)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestJoinRequestHandler_Counts(t *testing.T) {
	h := newHarness(nil)
	h.requests.On("CountPending", mock.Anything, int32(1), int32(7)).Return(int32(2), nil)
	h.requests.On("CountPending", mock.Anything, int32(1), int32(8)).Return(int32(0), domain.NewForbiddenError("only the group owner can view join requests"))
	h.requests.On("CountPendingForOwner", mock.Anything, int32(7)).Return(int32(4), nil)

	rec := h.do(t, http.MethodGet, "/api/groups/1/requests/count", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending":2}`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/groups/1/requests/count", nil, "", 8)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/requests/pending-count", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending":4}`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/api/requests/pending-count", nil, "", 0)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFileHandler_UploadAndDownload(t *testing.T) {
	h := newHarness(nil)
	h.files.On("Upload", mock.Anything, int32(1), int32(7), "notes.txt", "text/plain", "hello notes").
		Return(&domain.File{ID: 3, GroupID: 1, Filename: "notes.txt", MimeType: "text/plain", Size: 11}, nil)
	h.files.On("Download", mock.Anything, int32(3), int32(7)).
		Return(&domain.File{ID: 3, Filename: "notes.txt", MimeType: "text/plain", Size: 11}, io.NopCloser(strings.NewReader("hello notes")), nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("comment", "ignored"))
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="notes.txt"`)
	header.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("hello notes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec := h.do(t, http.MethodPost, "/api/groups/1/files", &body, mw.FormDataContentType(), 7)
	assert.Equal(t, http.StatusCreated, rec.Code)
	h.files.AssertExpectations(t)

	rec = h.do(t, http.MethodGet, "/api/files/3/download", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello notes", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notes.txt")

	rec = h.doJSON(t, http.MethodPost, "/api/groups/1/files", `{}`, 7)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionHandler_Create(t *testing.T) {
	h := newHarness(nil)
	date := time.Date(2026, 11, 2, 18, 0, 0, 0, time.UTC)
	h.sessions.On("Create", mock.Anything, int32(1), int32(7), mock.MatchedBy(func(in domain.SessionInput) bool {
		return in.Title == "Review" && in.Date.Equal(date)
	})).Return(&domain.StudySession{ID: 4, Title: "Review", Date: date}, nil)

	rec := h.doJSON(t, http.MethodPost, "/api/groups/1/sessions", `{"title":"Review","date":"2026-11-02T18:00:00Z"}`, 7)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = h.doJSON(t, http.MethodPost, "/api/groups/1/sessions", `{"title":"Review","date":"next tuesday"}`, 7)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorBody(t, rec), "RFC 3339")
}

func TestSessionHandler_ListPassesFilter(t *testing.T) {
	h := newHarness(nil)
	h.sessions.On("List", mock.Anything, int32(1), int32(7), domain.SessionFilterPast).Return([]domain.StudySession{{ID: 2}}, nil)

	rec := h.do(t, http.MethodGet, "/api/groups/1/sessions?filter=past", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	h.sessions.AssertExpectations(t)
}

func TestDashboardHandler(t *testing.T) {
	h := newHarness(nil)
	h.dashboard.On("GetStats", mock.Anything, int32(7)).Return(&domain.DashboardStats{Groups: 2, PendingRequests: 1}, nil)

	rec := h.do(t, http.MethodGet, "/api/dashboard/stats", nil, "", 7)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"groups":2,"files":0,"sessions":0,"pending_requests":1}`, rec.Body.String())
}

func TestHealthHandler(t *testing.T) {
	rec := newHarness(nil).do(t, http.MethodGet, "/healthz", nil, "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = newHarness(errors.New("db down")).do(t, http.MethodGet, "/healthz", nil, "", 0)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
