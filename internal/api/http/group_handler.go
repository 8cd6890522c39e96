package http

import (
	"net/http"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/service"
)

type GroupHandler struct {
	groupSvc  service.GroupService
	memberSvc service.MembershipService
	inviteSvc service.InviteService
}

func NewGroupHandler(groupSvc service.GroupService, memberSvc service.MembershipService, inviteSvc service.InviteService) *GroupHandler {
	return &GroupHandler{
		groupSvc:  groupSvc,
		memberSvc: memberSvc,
		inviteSvc: inviteSvc,
	}
}

type createGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type joinByCodeRequest struct {
	InviteCode string `json:"invite_code"`
}

func (h *GroupHandler) Search(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groupSvc.SearchGroups(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *GroupHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	groups, err := h.groupSvc.ListMyGroups(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	group, err := h.groupSvc.CreateGroup(r.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"group": group})
}

func (h *GroupHandler) JoinByCode(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req joinByCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	groupID, err := h.inviteSvc.AdmitByCode(r.Context(), req.InviteCode, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group_id": groupID})
}

func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
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
	detail, err := h.groupSvc.GetGroup(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	var patch domain.GroupPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	group, err := h.groupSvc.UpdateGroup(r.Context(), groupID, userID, patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"group": group})
}

func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.groupSvc.DeleteGroup(r.Context(), groupID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
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
	members, err := h.memberSvc.ListMembers(r.Context(), groupID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": members})
}

func (h *GroupHandler) Leave(w http.ResponseWriter, r *http.Request) {
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
	if err := h.memberSvc.RemoveMember(r.Context(), groupID, userID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroupHandler) Kick(w http.ResponseWriter, r *http.Request) {
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
	memberID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.memberSvc.RemoveMember(r.Context(), groupID, memberID, userID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
