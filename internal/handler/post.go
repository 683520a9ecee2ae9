package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/service"
)

type postHandler struct {
	feedService *service.FeedService
}

func NewPostHandler(feedService *service.FeedService) *postHandler {
	return &postHandler{feedService: feedService}
}

// Feed is readable without a session; like state simply comes back false
// for anonymous viewers.
func (h *postHandler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feedService.Feed(ctxkeys.Principal(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

func (h *postHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	posts, err := h.feedService.PostsByAuthor(r.PathValue("id"), ctxkeys.Principal(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	Content  string  `json:"content" validate:"required"`
	MediaURL *string `json:"mediaUrl"`
}

func (h *postHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	post, err := h.feedService.CreatePost(ctxkeys.Principal(r.Context()), req.Content, req.MediaURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, post)
}

// ToggleLike flips the caller's like and returns the new state.
func (h *postHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	liked, likeCount, err := h.feedService.ToggleLike(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"liked":     liked,
		"likeCount": likeCount,
	})
}

func (h *postHandler) Comments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.feedService.Comments(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, comments)
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *postHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	var req createCommentRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.feedService.AddComment(ctxkeys.Principal(r.Context()), r.PathValue("id"), req.Content)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}
