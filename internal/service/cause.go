package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/geocode"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

var (
	ErrTitleRequired  = errors.New("title is required")
	ErrInvalidUrgency = errors.New("urgency must be between 0 and 10")
	ErrInvalidStatus  = errors.New("status must be open or closed")
)

type CauseService struct {
	causeRepo repository.CauseRepository
	geocoder  *geocode.Client
}

func NewCauseService(causeRepo repository.CauseRepository, geocoder *geocode.Client) *CauseService {
	return &CauseService{
		causeRepo: causeRepo,
		geocoder:  geocoder,
	}
}

type CauseInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	Urgency     int
	StartDate   *time.Time
	EndDate     *time.Time
}

func (in *CauseInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if in.Urgency < 0 || in.Urgency > 10 {
		return ErrInvalidUrgency
	}
	return nil
}

func (s *CauseService) Create(ctx context.Context, principal *authz.Principal, input CauseInput) (*model.Cause, error) {
	err := requireAllowed(authz.Authorize(principal, authz.ActionCreateCause, authz.Resource{}))
	if err != nil {
		return nil, err
	}

	err = input.validate()
	if err != nil {
		return nil, err
	}

	cause := &model.Cause{
		ID:          uuid.New().String(),
		NGOID:       principal.ID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Location:    strings.TrimSpace(input.Location),
		Urgency:     input.Urgency,
		Status:      model.CauseStatusOpen,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedAt:   time.Now(),
	}

	s.resolveCoordinates(ctx, cause)

	err = s.causeRepo.Create(cause)
	if err != nil {
		return nil, fmt.Errorf("failed to create cause: %w", err)
	}

	slog.Info("cause created", "cause_id", cause.ID, "ngo_id", cause.NGOID)
	return cause, nil
}

func (s *CauseService) ByID(id string) (*model.CauseWithNGO, error) {
	return s.causeRepo.ByIDWithNGO(id)
}

func (s *CauseService) List(filters repository.CauseFilters) ([]*model.CauseWithNGO, error) {
	return s.causeRepo.List(filters)
}

func (s *CauseService) ByNGO(ngoID string) ([]*model.Cause, error) {
	return s.causeRepo.ByNGO(ngoID)
}

// CauseUpdate carries a partial edit; nil fields are left untouched.
type CauseUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Location    *string
	Urgency     *int
	Status      *string
	StartDate   *time.Time
	EndDate     *time.Time
}

func (s *CauseService) Update(ctx context.Context, principal *authz.Principal, id string, update CauseUpdate) (*model.Cause, error) {
	cause, err := s.causeRepo.ByID(id)
	if err != nil {
		return nil, err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionUpdateCause, authz.Resource{Cause: cause}))
	if err != nil {
		return nil, err
	}

	locationChanged := false

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return nil, ErrTitleRequired
		}
		cause.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		cause.Description = *update.Description
	}
	if update.Category != nil {
		cause.Category = *update.Category
	}
	if update.Location != nil && strings.TrimSpace(*update.Location) != cause.Location {
		cause.Location = strings.TrimSpace(*update.Location)
		locationChanged = true
	}
	if update.Urgency != nil {
		if *update.Urgency < 0 || *update.Urgency > 10 {
			return nil, ErrInvalidUrgency
		}
		cause.Urgency = *update.Urgency
	}
	if update.Status != nil {
		if *update.Status != model.CauseStatusOpen && *update.Status != model.CauseStatusClosed {
			return nil, ErrInvalidStatus
		}
		cause.Status = *update.Status
	}
	if update.StartDate != nil {
		cause.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		cause.EndDate = update.EndDate
	}

	if locationChanged {
		cause.Latitude = nil
		cause.Longitude = nil
		s.resolveCoordinates(ctx, cause)
	}

	err = s.causeRepo.Update(cause)
	if err != nil {
		return nil, fmt.Errorf("failed to update cause: %w", err)
	}

	return cause, nil
}

// Delete removes a cause. Tasks and donations hanging off it go with it
// through the store's cascade.
func (s *CauseService) Delete(principal *authz.Principal, id string) error {
	cause, err := s.causeRepo.ByID(id)
	if err != nil {
		return err
	}

	err = requireAllowed(authz.Authorize(principal, authz.ActionDeleteCause, authz.Resource{Cause: cause}))
	if err != nil {
		return err
	}

	err = s.causeRepo.Delete(id)
	if err != nil {
		return fmt.Errorf("failed to delete cause: %w", err)
	}

	slog.Info("cause deleted", "cause_id", id, "ngo_id", principal.ID)
	return nil
}

/// resolveCoordinates is best effort: a failed or empty lookup leaves the
// cause without coordinates rather than failing the write.
func (s *CauseService) resolveCoordinates(ctx context.Context, cause *model.Cause) {
	if s.geocoder == nil || cause.Location == "" {
		return
	}

	point, err := s.geocoder.Lookup(ctx, cause.Location)
	if err != nil {
		slog.Warn("geocode lookup failed", "error", err, "location", cause.Location)
		return
	}
	if point == nil {
		return
	}

	cause.Latitude = &point.Latitude
	cause.Longitude = &point.Longitude
}
