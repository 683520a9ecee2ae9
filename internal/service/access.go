package service

import (
	"errors"
	"fmt"

	"github.com/careconnect/careconnect/internal/authz"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
)

// requireAllowed turns a policy decision into the sentinel errors the
// handlers translate to 401 and 403.
func requireAllowed(decision authz.Decision) error {
	if decision.Allowed {
		return nil
	}
	if decision.Reason == authz.ReasonUnauthenticated {
		return ErrUnauthenticated
	}
	return fmt.Errorf("%w: %s", ErrForbidden, decision.Reason)
}
