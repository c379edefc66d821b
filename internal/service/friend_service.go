package service

import (
	"log/slog"
	"net/http"

	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/storage"
)

// FriendService handles the friend list endpoints.
type FriendService struct {
	store storage.Store
}

// NewFriendService creates a new FriendService with the given storage backend.
func NewFriendService(store storage.Store) *FriendService {
	return &FriendService{store: store}
}

type addFriendRequest struct {
	FriendEmail string `json:"friend_email" validate:"required,email"`
}

// Add creates a bidirectional friendship between the authenticated user
// and the user with the given email.
func (s *FriendService) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req addFriendRequest
	if err := decodeRequest(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "friend email is required")
		return
	}

	friend, err := s.store.GetUserByEmail(r.Context(), req.FriendEmail)
	if err != nil {
		slog.Error("Add friend lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if friend == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if friend.ID == userID {
		respondError(w, http.StatusBadRequest, "cannot add yourself as friend")
		return
	}

	already, err := s.store.AreFriends(r.Context(), userID, friend.ID)
	if err != nil {
		slog.Error("Friendship check failed", "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	if already {
		respondError(w, http.StatusBadRequest, "already friends")
		return
	}

	if err := s.store.AddFriend(r.Context(), userID, friend.ID); err != nil {
		slog.Error("Add friend failed", "user_id", userID, "friend_id", friend.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	slog.Info("Friend added", "user_id", userID, "friend_id", friend.ID)
	respondJSON(w, http.StatusOK, map[string]string{"msg": "friend added"})
}

// List returns the authenticated user's friends.
func (s *FriendService) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	friends, err := s.store.ListFriends(r.Context(), userID)
	if err != nil {
		slog.Error("List friends failed", "user_id", userID, "error", err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}

	out := make([]userResponse, 0, len(friends))
	for _, friend := range friends {
		out = append(out, toUserResponse(friend))
	}
	respondJSON(w, http.StatusOK, out)
}
