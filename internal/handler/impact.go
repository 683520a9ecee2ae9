package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/service"
)

type impactHandler struct {
	impactService *service.ImpactService
}

func NewImpactHandler(impactService *service.ImpactService) *impactHandler {
	return &impactHandler{impactService: impactService}
}

// Me returns the caller's aggregated impact record.
func (h *impactHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	impact, err := h.impactService.VolunteerImpact(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, impact)
}

// Stats is the public headline numbers endpoint.
func (h *impactHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.impactService.PlatformStats()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Donations returns the donation breakdown for the calling NGO.
func (h *impactHandler) Donations(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	analytics, err := h.impactService.DonationAnalytics(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, analytics)
}
