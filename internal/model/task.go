package model

import (
	"math"
	"time"
)

// TaskStatus is the lifecycle state of a volunteer's engagement with a
// cause. The funnel moves forward only: application -> triage ->
// execution -> verification, with declined and no_show as absorbing
// failure states.
type TaskStatus string

const (
	TaskStatusPending         TaskStatus = "pending"
	TaskStatusInConsideration TaskStatus = "in_consideration"
	TaskStatusApproved        TaskStatus = "approved"
	TaskStatusDeclined        TaskStatus = "declined"
	TaskStatusInProgress      TaskStatus = "in_progress"
	TaskStatusCompleted       TaskStatus = "completed"
	TaskStatusNoShow          TaskStatus = "no_show"
)

// ParseTaskStatus validates a client-supplied status string.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch TaskStatus(s) {
	case TaskStatusPending, TaskStatusInConsideration, TaskStatusApproved,
		TaskStatusDeclined, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusNoShow:
		return TaskStatus(s), true
	}
	return "", false
}

// transitions is the closed table of allowed status moves. Anything not
// listed here is rejected, regardless of who asks.
var transitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:         {TaskStatusInConsideration, TaskStatusApproved, TaskStatusDeclined},
	TaskStatusInConsideration: {TaskStatusApproved, TaskStatusDeclined},
	TaskStatusApproved:        {TaskStatusInProgress, TaskStatusNoShow},
	TaskStatusInProgress:      {TaskStatusCompleted, TaskStatusNoShow},
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to TaskStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionActor returns the role that may request a move INTO the given
// status. Triage and failure states belong to the owning NGO; execution
// states belong to the applying volunteer.
func TransitionActor(to TaskStatus) Role {
	switch to {
	case TaskStatusInConsideration, TaskStatusApproved, TaskStatusDeclined, TaskStatusNoShow:
		return RoleNGO
	case TaskStatusInProgress, TaskStatusCompleted:
		return RoleVolunteer
	}
	return ""
}

// optOutStatuses are the states a volunteer may withdraw from. Once work
// has started the escape hatch closes.
var optOutStatuses = map[TaskStatus]bool{
	TaskStatusPending:         true,
	TaskStatusInConsideration: true,
	TaskStatusApproved:        true,
}

func CanOptOut(status TaskStatus) bool {
	return optOutStatuses[status]
}

// HoursPerDay is the credit policy for volunteer work: a flat 4 hours per
// calendar day of the task window. Not configurable.
const HoursPerDay = 4

// TaskHours computes credited hours for a volunteering window. Days are
// rounded up, with a floor of one day for same-day, inverted, or missing
// windows.
func TaskHours(start, end *time.Time) int {
	days := 1
	if start != nil && end != nil {
		d := int(math.Ceil(end.Sub(*start).Hours() / 24))
		if d > days {
			days = d
		}
	}
	return days * HoursPerDay
}

// Task is one volunteer's application to, and engagement with, a cause.
// Approved is an orthogonal flag meaningful only when status=completed:
// it marks NGO-verified completion, distinct from the status value
// "approved" which means the application was accepted.
type Task struct {
	ID          string     `db:"id" json:"id"`
	CauseID     string     `db:"cause_id" json:"causeId"`
	VolunteerID string     `db:"volunteer_id" json:"volunteerId"`
	Status      TaskStatus `db:"status" json:"status"`
	Approved    bool       `db:"approved" json:"approved"`
	ProofURL    *string    `db:"proof_url" json:"proofUrl"`
	StartDate   *time.Time `db:"start_date" json:"startDate"`
	EndDate     *time.Time `db:"end_date" json:"endDate"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

// Verified reports NGO-confirmed completion.
func (t *Task) Verified() bool {
	return t.Status == TaskStatusCompleted && t.Approved
}

// Hours returns the credited hours for this task's window.
func (t *Task) Hours() int {
	return TaskHours(t.StartDate, t.EndDate)
}

// TaskDetail joins a task with its cause and the volunteer's display name,
// used by NGO triage views and volunteer task lists.
type TaskDetail struct {
	Task
	CauseTitle    string `db:"cause_title" json:"causeTitle"`
	CauseCategory string `db:"cause_category" json:"causeCategory"`
	CauseNGOID    string `db:"cause_ngo_id" json:"causeNgoId"`
	VolunteerName string `db:"volunteer_name" json:"volunteerName"`
}
