package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/service"
	"github.com/careconnect/careconnect/internal/validation"
)

type uploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *uploadHandler {
	return &uploadHandler{fileService: fileService}
}

// Upload accepts a multipart file plus a "type" field. Avatars, banners
// and feed media are public; proof-of-work files stay private and are
// served through presigned URLs only.
func (h *uploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(64 << 20)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	fileType := r.FormValue("type")
	user := ctxkeys.User(r.Context())

	var ownerType string
	var ownerID string
	var public bool

	switch fileType {
	case model.FileTypeAvatar, model.FileTypeBanner:
		err = validation.ValidateFile(header, validation.ImageConstraints)
		ownerType = model.FileOwnerUser
		ownerID = user.ID
		public = true
	case model.FileTypeProof:
		err = validation.ValidateFile(header, validation.ImageConstraints, validation.DocumentConstraints)
		ownerType = model.FileOwnerTask
		ownerID = r.FormValue("ownerId")
		if ownerID == "" {
			respondError(w, http.StatusBadRequest, "ownerId is required for proof uploads")
			return
		}
	case model.FileTypeMedia:
		err = validation.ValidateFile(header, validation.ImageConstraints, validation.VideoConstraints)
		ownerType = model.FileOwnerPost
		ownerID = user.ID
		public = true
	default:
		respondError(w, http.StatusBadRequest, "unknown upload type")
		return
	}

	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	uploaded, err := h.fileService.Upload(user.ID, ownerType, ownerID, fileType, file, header, public)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"file": uploaded,
		"url":  h.fileService.URL(uploaded),
	})
}
