package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

type taskFixture struct {
	service   *TaskService
	tasks     *fakeTaskRepo
	causes    *fakeCauseRepo
	ngo       *authz.Principal
	volunteer *authz.Principal
	cause     *model.Cause
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	causes := &fakeCauseRepo{}
	tasks := &fakeTaskRepo{causes: causes}
	users := &fakeUserRepo{}
	profiles := &fakeProfileRepo{}

	now := time.Now()
	require.NoError(t, users.Create(&model.User{ID: "ngo-1", Email: "ngo@example.org", Role: model.RoleNGO, CreatedAt: now}))
	require.NoError(t, users.Create(&model.User{ID: "vol-1", Email: "vol@example.com", Role: model.RoleVolunteer, CreatedAt: now}))
	require.NoError(t, profiles.Create(&model.Profile{ID: "p-1", UserID: "ngo-1", Name: "Hope Foundation"}))
	require.NoError(t, profiles.Create(&model.Profile{ID: "p-2", UserID: "vol-1", Name: "Jordan"}))

	cause := &model.Cause{
		ID:        "c-1",
		NGOID:     "ngo-1",
		Title:     "River Cleanup",
		Category:  "environment",
		Status:    model.CauseStatusOpen,
		CreatedAt: now,
	}
	require.NoError(t, causes.Create(cause))

	return &taskFixture{
		service:   NewTaskService(tasks, causes, users, profiles, testEmailService()),
		tasks:     tasks,
		causes:    causes,
		ngo:       &authz.Principal{ID: "ngo-1", Role: model.RoleNGO},
		volunteer: &authz.Principal{ID: "vol-1", Role: model.RoleVolunteer},
		cause:     cause,
	}
}

func TestTaskLifecycle(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.False(t, task.Approved)

	// Triage by the NGO.
	task, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusInConsideration)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusInConsideration, task.Status)

	task, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusApproved, task.Status)

	// Execution by the volunteer.
	task, err = f.service.UpdateStatus(f.volunteer, task.ID, model.TaskStatusInProgress)
	require.NoError(t, err)

	task, err = f.service.SubmitProof(f.volunteer, task.ID, "https://files.example/proof.jpg")
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
	require.NotNil(t, task.ProofURL)
	assert.Equal(t, "https://files.example/proof.jpg", *task.ProofURL)

	// Verification by the NGO.
	task, err = f.service.Approve(f.ngo, task.ID)
	require.NoError(t, err)
	assert.True(t, task.Approved)
	assert.True(t, task.Verified())
}

func TestApplyRejectedWhenCauseClosed(t *testing.T) {
	f := newTaskFixture(t)

	f.cause.Status = model.CauseStatusClosed
	require.NoError(t, f.causes.Update(f.cause))

	_, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	assert.ErrorIs(t, err, ErrCauseClosed)
}

func TestApplyRejectsDuplicate(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	_, err = f.service.Apply(f.volunteer, "c-1", nil, nil)
	assert.ErrorIs(t, err, ErrAlreadyApplied)
}

func TestApplyRequiresVolunteer(t *testing.T) {
	f := newTaskFixture(t)

	_, err := f.service.Apply(f.ngo, "c-1", nil, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.service.Apply(nil, "c-1", nil, nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestUpdateStatusRejectsIllegalMoves(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	// pending -> completed skips the whole funnel.
	_, err = f.service.UpdateStatus(f.volunteer, task.ID, model.TaskStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The record is untouched after a rejected move.
	stored, err := f.tasks.ByID(task.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusPending, stored.Status)

	// Declined is absorbing.
	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusDeclined)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusSameStatusIsNoOp(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)

	// The owning NGO re-sending the current status gets the record back
	// unchanged.
	same, err := f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusApproved, same.Status)
}

func TestUpdateStatusSameStatusStillRequiresOwnership(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)

	// Re-requesting the current status is not a read endpoint: a
	// stranger or an anonymous caller gets no record out of it.
	stranger := &authz.Principal{ID: "ngo-999", Role: model.RoleNGO}
	got, err := f.service.UpdateStatus(stranger, task.ID, model.TaskStatusApproved)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Nil(t, got)

	got, err = f.service.UpdateStatus(nil, task.ID, model.TaskStatusApproved)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, got)
}

func TestUpdateStatusEnforcesActor(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	// Approval is the NGO's move, not the volunteer's.
	_, err = f.service.UpdateStatus(f.volunteer, task.ID, model.TaskStatusApproved)
	assert.ErrorIs(t, err, ErrForbidden)

	// Another NGO cannot triage someone else's cause.
	stranger := &authz.Principal{ID: "ngo-2", Role: model.RoleNGO}
	_, err = f.service.UpdateStatus(stranger, task.ID, model.TaskStatusApproved)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitProofRequiresInProgress(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	_, err = f.service.SubmitProof(f.volunteer, task.ID, "https://files.example/p.jpg")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApproveRequiresCompletedAndIsIdempotent(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	_, err = f.service.Approve(f.ngo, task.ID)
	assert.ErrorIs(t, err, ErrTaskNotCompleted)

	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(f.volunteer, task.ID, model.TaskStatusInProgress)
	require.NoError(t, err)
	_, err = f.service.SubmitProof(f.volunteer, task.ID, "https://files.example/p.jpg")
	require.NoError(t, err)

	task, err = f.service.Approve(f.ngo, task.ID)
	require.NoError(t, err)
	assert.True(t, task.Approved)

	// Second approve is a no-op, not an error.
	task, err = f.service.Approve(f.ngo, task.ID)
	require.NoError(t, err)
	assert.True(t, task.Approved)
}

func TestOptOut(t *testing.T) {
	f := newTaskFixture(t)

	task, err := f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	// Only the owner may withdraw.
	stranger := &authz.Principal{ID: "vol-2", Role: model.RoleVolunteer}
	err = f.service.OptOut(stranger, task.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// Withdrawal is a hard delete.
	require.NoError(t, f.service.OptOut(f.volunteer, task.ID))
	_, err = f.tasks.ByID(task.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	// Re-applying after opting out is allowed.
	task, err = f.service.Apply(f.volunteer, "c-1", nil, nil)
	require.NoError(t, err)

	// Once work starts the escape hatch closes.
	_, err = f.service.UpdateStatus(f.ngo, task.ID, model.TaskStatusApproved)
	require.NoError(t, err)
	_, err = f.service.UpdateStatus(f.volunteer, task.ID, model.TaskStatusInProgress)
	require.NoError(t, err)

	err = f.service.OptOut(f.volunteer, task.ID)
	assert.ErrorIs(t, err, ErrCannotOptOut)
}
