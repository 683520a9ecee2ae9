package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

var (
	ErrCauseClosed       = errors.New("cause is not open for applications")
	ErrAlreadyApplied    = errors.New("volunteer already applied to this cause")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTaskNotCompleted  = errors.New("task is not completed")
	ErrCannotOptOut      = errors.New("task can no longer be opted out of")
)

type TaskService struct {
	taskRepo     repository.TaskRepository
	causeRepo    repository.CauseRepository
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	emailService *EmailService
}

func NewTaskService(
	taskRepo repository.TaskRepository,
	causeRepo repository.CauseRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	emailService *EmailService,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		causeRepo:    causeRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		emailService: emailService,
	}
}

// Apply creates a pending task binding the volunteer to the cause. A
// volunteer gets at most one task per cause, and only while the cause is
// open.
func (s *TaskService) Apply(principal *authz.Principal, causeID string, startDate, endDate *time.Time) (*model.Task, error) {
	err := requireAllowed(authz.Authorize(principal, authz.ActionApplyToCause, authz.Resource{}))
	if err != nil {
		return nil, err
	}

	cause, err := s.causeRepo.ByID(causeID)
	if err != nil {
		return nil, err
	}

	if !cause.IsOpen() {
		return nil, ErrCauseClosed
	}

	exists, err := s.taskRepo.Exists(causeID, principal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return nil, ErrAlreadyApplied
	}

	now := time.Now()
	task := &model.Task{
		ID:          uuid.New().String(),
		CauseID:     causeID,
		VolunteerID: principal.ID,
		Status:      model.TaskStatusPending,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.taskRepo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.notifyApplicationReceived(cause, principal.ID)

	slog.Info("volunteer applied", "task_id", task.ID, "cause_id", causeID, "volunteer_id", principal.ID)
	return task, nil
}

// UpdateStatus moves a task along its lifecycle. Requesting the status
// the task already has is a no-op; anything outside the transition table
// is rejected without changing the record.
func (s *TaskService) UpdateStatus(principal *authz.Principal, taskID string, dest model.TaskStatus) (*model.Task, error) {
	task, cause, err := s.loadTaskWithCause(taskID)
	if err != nil {
		return nil, err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionUpdateTaskStatus, authz.Resource{
		Task:       task,
		TaskCause:  cause,
		DestStatus: dest,
	}))
	if err != nil {
		return nil, err
	}

	// Idempotent only for the actor who owns the destination; the
	// ownership check above runs before anything is returned.
	if task.Status == dest {
		return task, nil
	}

	if !model.CanTransition(task.Status, dest) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, dest)
	}

	err = s.taskRepo.UpdateStatus(taskID, dest)
	if err != nil {
		return nil, err
	}

	if dest == model.TaskStatusApproved {
		s.notifyApplicationApproved(task, cause)
	}

	task.Status = dest
	task.UpdatedAt = time.Now()

	slog.Info("task status updated", "task_id", taskID, "status", dest)
	return task, nil
}

// SubmitProof attaches proof of work and completes the task in the same
// write. The task must be in progress for the completion to be legal.
func (s *TaskService) SubmitProof(principal *authz.Principal, taskID, proofURL string) (*model.Task, error) {
	task, err := s.taskRepo.ByID(taskID)
	if err != nil {
		return nil, err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionSubmitProof, authz.Resource{Task: task}))
	if err != nil {
		return nil, err
	}

	if !model.CanTransition(task.Status, model.TaskStatusCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, model.TaskStatusCompleted)
	}

	err = s.taskRepo.UpdateProof(taskID, proofURL)
	if err != nil {
		return nil, err
	}

	task.ProofURL = &proofURL
	task.Status = model.TaskStatusCompleted
	task.UpdatedAt = time.Now()

	slog.Info("proof submitted", "task_id", taskID)
	return task, nil
}

// Approve marks completed work as verified, which is what makes it count
// toward impact. Approving an already approved task is a no-op.
func (s *TaskService) Approve(principal *authz.Principal, taskID string) (*model.Task, error) {
	task, cause, err := s.loadTaskWithCause(taskID)
	if err != nil {
		return nil, err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionApproveTask, authz.Resource{
		Task:      task,
		TaskCause: cause,
	}))
	if err != nil {
		return nil, err
	}

	if task.Status != model.TaskStatusCompleted {
		return nil, ErrTaskNotCompleted
	}

	if task.Approved {
		return task, nil
	}

	err = s.taskRepo.Approve(taskID)
	if err != nil {
		return nil, err
	}

	task.Approved = true
	task.UpdatedAt = time.Now()

	s.notifyWorkVerified(task, cause)

	slog.Info("task approved", "task_id", taskID, "ngo_id", principal.ID)
	return task, nil
}

// OptOut is a hard delete of the volunteer's own application. It is only
// available before work starts; afterward the record is part of the
// cause's history and stays.
func (s *TaskService) OptOut(principal *authz.Principal, taskID string) error {
	task, err := s.taskRepo.ByID(taskID)
	if err != nil {
		return err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionOptOut, authz.Resource{Task: task}))
	if err != nil {
		return err
	}

	if !model.CanOptOut(task.Status) {
		return ErrCannotOptOut
	}

	err = s.taskRepo.Delete(taskID)
	if err != nil {
		return err
	}

	slog.Info("volunteer opted out", "task_id", taskID, "volunteer_id", principal.ID)
	return nil
}

func (s *TaskService) ByID(id string) (*model.Task, error) {
	return s.taskRepo.ByID(id)
}

func (s *TaskService) ByVolunteer(volunteerID string) ([]*model.TaskDetail, error) {
	return s.taskRepo.ByVolunteer(volunteerID)
}

func (s *TaskService) ByNGO(ngoID string) ([]*model.TaskDetail, error) {
	return s.taskRepo.ByNGO(ngoID)
}

func (s *TaskService) loadTaskWithCause(taskID string) (*model.Task, *model.Cause, error) {
	task, err := s.taskRepo.ByID(taskID)
	if err != nil {
		return nil, nil, err
	}

	cause, err := s.causeRepo.ByID(task.CauseID)
	if err != nil {
		return nil, nil, err
	}

	return task, cause, nil
}

// Notifications are best effort: a mail failure never fails the write
// that triggered it.

func (s *TaskService) notifyApplicationReceived(cause *model.Cause, volunteerID string) {
	ngo, err := s.userRepo.ByID(cause.NGOID)
	if err != nil {
		slog.Warn("failed to load ngo for notification", "error", err, "ngo_id", cause.NGOID)
		return
	}

	ngoName := s.profileName(cause.NGOID)
	volunteerName := s.profileName(volunteerID)

	err = s.emailService.SendApplicationReceivedEmail(ngo.Email, ngoName, volunteerName, cause.Title)
	if err != nil {
		slog.Warn("failed to send application received email", "error", err, "cause_id", cause.ID)
	}
}

func (s *TaskService) notifyApplicationApproved(task *model.Task, cause *model.Cause) {
	volunteer, err := s.userRepo.ByID(task.VolunteerID)
	if err != nil {
		slog.Warn("failed to load volunteer for notification", "error", err, "volunteer_id", task.VolunteerID)
		return
	}

	err = s.emailService.SendApplicationApprovedEmail(volunteer.Email, s.profileName(task.VolunteerID), cause.Title)
	if err != nil {
		slog.Warn("failed to send application approved email", "error", err, "task_id", task.ID)
	}
}

func (s *TaskService) notifyWorkVerified(task *model.Task, cause *model.Cause) {
	volunteer, err := s.userRepo.ByID(task.VolunteerID)
	if err != nil {
		slog.Warn("failed to load volunteer for notification", "error", err, "volunteer_id", task.VolunteerID)
		return
	}

	err = s.emailService.SendWorkVerifiedEmail(volunteer.Email, s.profileName(task.VolunteerID), cause.Title, task.Hours())
	if err != nil {
		slog.Warn("failed to send work verified email", "error", err, "task_id", task.ID)
	}
}

func (s *TaskService) profileName(userID string) string {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return "there"
	}
	return profile.Name
}
