package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/service"
)

type causeHandler struct {
	causeService *service.CauseService
}

func NewCauseHandler(causeService *service.CauseService) *causeHandler {
	return &causeHandler{causeService: causeService}
}

// List is public: anyone can browse causes, optionally filtered by
// category, location and status query parameters.
func (h *causeHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := repository.CauseFilters{
		Category: r.URL.Query().Get("category"),
		Location: r.URL.Query().Get("location"),
		Status:   r.URL.Query().Get("status"),
	}

	causes, err := h.causeService.List(filters)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, causes)
}

func (h *causeHandler) Show(w http.ResponseWriter, r *http.Request) {
	cause, err := h.causeService.ByID(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cause)
}

func (h *causeHandler) ListByNGO(w http.ResponseWriter, r *http.Request) {
	causes, err := h.causeService.ByNGO(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, causes)
}

type createCauseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Location    string  `json:"location"`
	Urgency     int     `json:"urgency" validate:"min=0,max=10"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

func (h *causeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCauseRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cause, err := h.causeService.Create(r.Context(), ctxkeys.Principal(r.Context()), service.CauseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Urgency:     req.Urgency,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cause)
}

type updateCauseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
	Urgency     *int    `json:"urgency"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

func (h *causeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateCauseRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cause, err := h.causeService.Update(r.Context(), ctxkeys.Principal(r.Context()), r.PathValue("id"), service.CauseUpdate{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Urgency:     req.Urgency,
		Status:      req.Status,
		StartDate:   startDate,
		EndDate:     endDate,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cause)
}

func (h *causeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.causeService.Delete(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseDate parses an optional ISO date string from a request body.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &t, nil
}
