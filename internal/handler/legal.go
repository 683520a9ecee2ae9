package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/service"
)

type legalHandler struct {
	legalService *service.LegalService
}

func NewLegalHandler(legalService *service.LegalService) *legalHandler {
	return &legalHandler{legalService: legalService}
}

func (h *legalHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.legalService.Page(r.PathValue("page"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, page)
}
