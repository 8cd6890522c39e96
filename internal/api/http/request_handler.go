package http

import (
	"net/http"

	"studybuddy-backend/internal/service"
)

type JoinRequestHandler struct {
	reqSvc service.JoinRequestService
}

func NewJoinRequestHandler(reqSvc service.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{reqSvc: reqSvc}
}

func (h *JoinRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	req, err := h.reqSvc.CreateRequest(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"request": req})
}

func (h *JoinRequestHandler) ListPending(w http.ResponseWriter, r *http.Request) {
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
	reqs, err := h.reqSvc.GetPendingRequests(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": reqs})
}

func (h *JoinRequestHandler) Mine(w http.ResponseWriter, r *http.Request) {
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
	req, err := h.reqSvc.GetMyRequest(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request": req})
}

func (h *JoinRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.reqSvc.AcceptRequest(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request": req})
}

func (h *JoinRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	req, err := h.reqSvc.RejectRequest(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request": req})
}

func (h *JoinRequestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	requestID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.reqSvc.CancelRequest(r.Context(), requestID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *JoinRequestHandler) CountPending(w http.ResponseWriter, r *http.Request) {
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
	count, err := h.reqSvc.CountPending(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": count})
}

// CountOwned reports pending requests across all groups the caller owns.
func (h *JoinRequestHandler) CountOwned(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	count, err := h.reqSvc.CountPendingForOwner(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pending": count})
}
