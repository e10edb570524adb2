package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/choretrack/internal/auth"
	"github.com/dukerupert/choretrack/internal/chore"
	"github.com/dukerupert/choretrack/internal/model"
	"github.com/dukerupert/choretrack/internal/store"
	"github.com/dukerupert/choretrack/internal/websocket"
)

type ChoreHandler struct {
	choreStore  *store.ChoreStore
	memberStore *store.FamilyMemberStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewChoreHandler(cs *store.ChoreStore, ms *store.FamilyMemberStore, hub *websocket.Hub, logger *slog.Logger) *ChoreHandler {
	return &ChoreHandler{choreStore: cs, memberStore: ms, hub: hub, logger: logger}
}

func (h *ChoreHandler) broadcast(ownerID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(ownerID, msg)
	}
}

type choreRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  *int64     `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	Points      int        `json:"points"`
	Status      string     `json:"status"`
}

// checkAssignee verifies that the requested assignee belongs to the
// caller. Nonexistent and cross-owner members get the same NotFound.
func (h *ChoreHandler) checkAssignee(w http.ResponseWriter, ownerID int64, memberID *int64) bool {
	if memberID == nil {
		return true
	}
	member, err := h.memberStore.GetForOwner(*memberID, ownerID)
	if err != nil {
		h.logger.Error("check assignee", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check family member"})
		return false
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "family member not found"})
		return false
	}
	return true
}

func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	chores, err := h.choreStore.ListForOwner(ownerID)
	if err != nil {
		h.logger.Error("list chores", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}
	if chores == nil {
		chores = []model.ChoreWithAssignee{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) ListByMember(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	memberID, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	member, err := h.memberStore.GetForOwner(memberID, ownerID)
	if err != nil {
		h.logger.Error("get family member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get family member"})
		return
	}
	if member == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "family member not found"})
		return
	}

	chores, err := h.choreStore.ListForMember(memberID)
	if err != nil {
		h.logger.Error("list chores by member", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list chores"})
		return
	}
	if chores == nil {
		chores = []model.Chore{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}

	if !h.checkAssignee(w, ownerID, req.AssignedTo) {
		return
	}

	created, err := h.choreStore.Create(ownerID, req.Title, req.Description, req.AssignedTo, req.DueDate, req.Points)
	if err != nil {
		h.logger.Error("create chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create chore"})
		return
	}

	h.broadcast(ownerID, websocket.NewMessage("chore", "created", created.ID, nil))

	writeJSON(w, http.StatusCreated, created)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title is required"})
		return
	}
	if !chore.Status(req.Status).Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status must be pending or completed"})
		return
	}

	if !h.checkAssignee(w, ownerID, req.AssignedTo) {
		return
	}

	updated, err := h.choreStore.UpdateForOwner(id, ownerID, req.Title, req.Description, req.AssignedTo, req.DueDate, req.Points, req.Status)
	if err != nil {
		h.logger.Error("update chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update chore"})
		return
	}
	if updated == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	h.broadcast(ownerID, websocket.NewMessage("chore", "updated", id, nil))

	writeJSON(w, http.StatusOK, updated)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	deleted, err := h.choreStore.DeleteForOwner(id, ownerID)
	if err != nil {
		h.logger.Error("delete chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete chore"})
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	h.broadcast(ownerID, websocket.NewMessage("chore", "deleted", id, nil))

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type completeRequest struct {
	CompletedBy *int64 `json:"completed_by"`
	Notes       string `json:"notes"`
}

func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	callerID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.CompletedBy == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "completed_by is required"})
		return
	}

	// The chore lookup is deliberately not scoped to the caller: any
	// authenticated user may complete any existing chore, as long as
	// completed_by names one of their own family members.
	existing, err := h.choreStore.GetByID(id)
	if err != nil {
		h.logger.Error("get chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get chore"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "chore not found"})
		return
	}

	if !h.checkAssignee(w, callerID, req.CompletedBy) {
		return
	}

	completion, err := h.choreStore.CreateCompletion(id, *req.CompletedBy, callerID, req.Notes)
	if err != nil {
		h.logger.Error("complete chore", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete chore"})
		return
	}

	h.broadcast(existing.CreatedBy, websocket.NewMessage("chore", "completed", id, nil))

	writeJSON(w, http.StatusCreated, completion)
}
