package service

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/models"
	"github.com/spliteasy/spliteasy/internal/storage"
)

// GroupService handles group creation, lookup, and deletion.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

type createGroupRequest struct {
	Name    string   `json:"name" validate:"required,max=50"`
	Members []string `json:"members,omitempty" validate:"dive,required"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

func toGroupResponse(group *models.Group) groupResponse {
	members := group.Members
	if members == nil {
		members = []string{}
	}
	return groupResponse{
		ID:        group.ID,
		Name:      group.Name,
		Code:      group.Code,
		Members:   members,
		CreatedAt: group.CreatedAt,
	}
}

// Create makes a new group. The creator is always a member, and a random
// join code is assigned on insert.
func (s *GroupService) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req createGroupRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "group name is required (max 50 characters)")
		return
	}

	group := &models.Group{
		Name:    req.Name,
		Members: normalizeParticipants(req.Members, userID),
	}
	if err := s.store.CreateGroup(r.Context(), group); err != nil {
		slog.Error("Create group failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	slog.Info("Group created", "group_id", group.ID, "code", group.Code, "members", len(group.Members))
	respondJSON(w, http.StatusCreated, toGroupResponse(group))
}

// List returns all groups, or the single group matching the code query
// parameter when one is given.
func (s *GroupService) List(w http.ResponseWriter, r *http.Request) {
	if code := r.URL.Query().Get("code"); code != "" {
		group, err := s.store.GetGroupByCode(r.Context(), code)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, []groupResponse{toGroupResponse(group)})
		return
	}

	groups, err := s.store.ListGroups(r.Context())
	if err != nil {
		slog.Error("List groups failed", "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]groupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, toGroupResponse(group))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get returns a single group by ID.
func (s *GroupService) Get(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]

	group, err := s.store.GetGroup(r.Context(), groupID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGroupResponse(group))
}

// Delete removes a group and all of its expenses and settlements.
func (s *GroupService) Delete(w http.ResponseWriter, r *http.Request) {
	groupID := mux.Vars(r)["id"]

	if err := s.store.DeleteGroup(r.Context(), groupID); err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("Group deleted", "group_id", groupID)
	respondJSON(w, http.StatusOK, map[string]string{"msg": "group deleted"})
}
