package handler

import (
	"net/http"

	"github.com/careconnect/careconnect/internal/ctxkeys"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/service"
)

type taskHandler struct {
	taskService        *service.TaskService
	certificateService *service.CertificateService
}

func NewTaskHandler(taskService *service.TaskService, certificateService *service.CertificateService) *taskHandler {
	return &taskHandler{
		taskService:        taskService,
		certificateService: certificateService,
	}
}

type applyRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

func (h *taskHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
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

	task, err := h.taskService.Apply(ctxkeys.Principal(r.Context()), r.PathValue("id"), startDate, endDate)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

// List returns the caller's tasks: a volunteer sees their applications,
// an NGO sees every application to its causes.
func (h *taskHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var tasks []*model.TaskDetail
	var err error
	if user.Role.IsNGO() {
		tasks, err = h.taskService.ByNGO(user.ID)
	} else {
		tasks, err = h.taskService.ByVolunteer(user.ID)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *taskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	status, ok := model.ParseTaskStatus(req.Status)
	if !ok {
		respondError(w, http.StatusBadRequest, "unknown status "+req.Status)
		return
	}

	task, err := h.taskService.UpdateStatus(ctxkeys.Principal(r.Context()), r.PathValue("id"), status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

type submitProofRequest struct {
	ProofURL string `json:"proofUrl" validate:"required,url"`
}

func (h *taskHandler) SubmitProof(w http.ResponseWriter, r *http.Request) {
	var req submitProofRequest
	err := decodeJSON(r, &req)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskService.SubmitProof(ctxkeys.Principal(r.Context()), r.PathValue("id"), req.ProofURL)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *taskHandler) Approve(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Approve(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *taskHandler) OptOut(w http.ResponseWriter, r *http.Request) {
	err := h.taskService.OptOut(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *taskHandler) Certificate(w http.ResponseWriter, r *http.Request) {
	certificate, err := h.certificateService.ForTask(ctxkeys.Principal(r.Context()), r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, certificate)
}
