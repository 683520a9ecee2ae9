// Package authz is the identity and ownership resolver. Every mutating
// operation passes through Authorize before any state changes; the
// functions here are pure decisions over already-loaded records and never
// touch storage.
package authz

import "github.com/careconnect/careconnect/internal/model"

// Principal identifies an authenticated caller. A nil *Principal means
// the request carried no valid session.
type Principal struct {
	ID   string
	Role model.Role
}

// Action enumerates everything a caller can ask the core to do.
type Action string

const (
	ActionCreateCause      Action = "cause.create"
	ActionUpdateCause      Action = "cause.update"
	ActionDeleteCause      Action = "cause.delete"
	ActionApplyToCause     Action = "task.apply"
	ActionUpdateTaskStatus Action = "task.update_status"
	ActionOptOut           Action = "task.opt_out"
	ActionSubmitProof      Action = "task.submit_proof"
	ActionApproveTask      Action = "task.approve"
	ActionCreateDonation   Action = "donation.create"
	ActionCreatePost       Action = "post.create"
	ActionLikePost         Action = "post.like"
	ActionCommentPost      Action = "post.comment"
	ActionFollowUser       Action = "user.follow"
	ActionUpdateProfile    Action = "user.update_profile"
)

// Reason codes let the HTTP boundary distinguish 401 from 403 without the
// resolver knowing anything about HTTP. Forbidden reasons are collapsed to
// a generic message at the boundary so ownership details never leak.
type Reason string

const (
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonWrongRole       Reason = "wrong_role"
	ReasonNotOwner        Reason = "not_owner"
	ReasonSelfFollow      Reason = "self_follow"
	ReasonBadTransition   Reason = "bad_transition"
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Resource carries whichever records the action targets. Callers load the
// records first; the resolver only inspects them.
type Resource struct {
	Cause *model.Cause
	Task  *model.Task
	// TaskCause is the cause owning Resource.Task, needed for NGO-side
	// task actions.
	TaskCause *model.Cause
	// TargetUserID is the object of follow/profile actions.
	TargetUserID string
	// DestStatus is the requested destination for ActionUpdateTaskStatus.
	DestStatus model.TaskStatus
}

// Authorize decides whether the principal may perform action on res.
// Public reads (cause listings, anonymous feed reads) never reach this
// function; everything that does requires authentication.
func Authorize(p *Principal, action Action, res Resource) Decision {
	if p == nil {
		return deny(ReasonUnauthenticated)
	}

	switch action {
	case ActionCreateCause:
		if !p.Role.IsNGO() {
			return deny(ReasonWrongRole)
		}
		return allow()

	case ActionUpdateCause, ActionDeleteCause:
		if !p.Role.IsNGO() {
			return deny(ReasonWrongRole)
		}
		if res.Cause == nil || res.Cause.NGOID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionApplyToCause:
		if !p.Role.IsVolunteer() {
			return deny(ReasonWrongRole)
		}
		return allow()

	case ActionUpdateTaskStatus:
		return authorizeTransition(p, res)

	case ActionOptOut, ActionSubmitProof:
		if res.Task == nil || res.Task.VolunteerID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionApproveTask:
		if !p.Role.IsNGO() {
			return deny(ReasonWrongRole)
		}
		if res.TaskCause == nil || res.TaskCause.NGOID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionCreateDonation:
		if !p.Role.IsVolunteer() {
			return deny(ReasonWrongRole)
		}
		return allow()

	case ActionFollowUser:
		if res.TargetUserID == p.ID {
			return deny(ReasonSelfFollow)
		}
		return allow()

	case ActionUpdateProfile:
		if res.TargetUserID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()

	case ActionCreatePost, ActionLikePost, ActionCommentPost:
		// Any authenticated principal.
		return allow()
	}

	return deny(ReasonWrongRole)
}

// authorizeTransition gates a status update by the destination state's
// required actor and that actor's ownership of the task.
func authorizeTransition(p *Principal, res Resource) Decision {
	if res.Task == nil {
		return deny(ReasonNotOwner)
	}

	switch model.TransitionActor(res.DestStatus) {
	case model.RoleVolunteer:
		if !p.Role.IsVolunteer() {
			return deny(ReasonWrongRole)
		}
		if res.Task.VolunteerID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()
	case model.RoleNGO:
		if !p.Role.IsNGO() {
			return deny(ReasonWrongRole)
		}
		if res.TaskCause == nil || res.TaskCause.NGOID != p.ID {
			return deny(ReasonNotOwner)
		}
		return allow()
	}
	return deny(ReasonBadTransition)
}
