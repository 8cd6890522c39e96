package http

import (
	"net/http"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/service"
)

type SessionHandler struct {
	sessionSvc service.SessionService
}

func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// sessionRequest carries the date as a string so a malformed value can be
// reported as a validation error instead of a decode failure.
type sessionRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Link        *string `json:"link"`
	Location    *string `json:"location"`
}

func (req sessionRequest) date() (*time.Time, error) {
	if req.Date == nil {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *req.Date)
	if err != nil {
		return nil, domain.NewValidationError("date must be an RFC 3339 timestamp")
	}
	return &t, nil
}

func decodeSession(r *http.Request) (sessionRequest, error) {
	var req sessionRequest
	err := decodeJSON(r, &req)
	return req, err
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := decodeSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, err := req.date()
	if err != nil {
		writeError(w, r, err)
		return
	}

	in := domain.SessionInput{
		Description: req.Description,
		Link:        req.Link,
		Location:    req.Location,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if date != nil {
		in.Date = *date
	}

	session, err := h.sessionSvc.Create(r.Context(), groupID, userID, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session": session})
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := domain.SessionFilter(r.URL.Query().Get("filter"))
	sessions, err := h.sessionSvc.List(r.Context(), groupID, userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	session, err := h.sessionSvc.Get(r.Context(), sessionID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := decodeSession(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	date, err := req.date()
	if err != nil {
		writeError(w, r, err)
		return
	}

	patch := domain.SessionPatch{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Link:        req.Link,
		Location:    req.Location,
	}
	session, err := h.sessionSvc.Update(r.Context(), sessionID, userID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"session": session})
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	sessionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.sessionSvc.Delete(r.Context(), sessionID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

