package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/service"
)

type userHandler struct {
	userService *service.UserService
	feedService *service.FeedService
}

func NewUserHandler(userService *service.UserService, feedService *service.FeedService) *userHandler {
	return &userHandler{
		userService: userService,
		feedService: feedService,
	}
}

// Show returns a public profile with its follower count and, for
// authenticated viewers, whether they follow this user.
func (h *userHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	user, err := h.userService.ByID(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	user.PasswordHash = nil

	profile, err := h.userService.Profile(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	followerCount, err := h.feedService.FollowerCount(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	isFollowing := false
	viewer := ctxkeys.User(r.Context())
	if viewer != nil && viewer.ID != userID {
		isFollowing, err = h.feedService.IsFollowing(viewer.ID, userID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":          user,
		"profile":       profile,
		"followerCount": followerCount,
		"isFollowing":   isFollowing,
	})
}

type updateProfileRequest struct {
	Name      *string `json:"name"`
	Bio       *string `json:"bio"`
	Contact   *string `json:"contact"`
	Location  *string `json:"location"`
	AvatarURL *string `json:"avatarUrl"`
	BannerURL *string `json:"bannerUrl"`
}

// Update edits the caller's own profile. There is intentionally no way
// to change the account role here.
func (h *userHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user := ctxkeys.User(r.Context())

	profile, err := h.userService.UpdateProfile(user.ID, service.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		Contact:   req.Contact,
		Location:  req.Location,
		AvatarURL: req.AvatarURL,
		BannerURL: req.BannerURL,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// ToggleFollow flips whether the caller follows the target user.
func (h *userHandler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	following, err := h.feedService.ToggleFollow(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"following": following})
}

// NGODirectory lists all organizations for the public directory page.
func (h *userHandler) NGODirectory(w http.ResponseWriter, r *http.Request) {
	ngos, err := h.userService.NGODirectory()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ngos)
}
