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

var ErrInvalidAmount = errors.New("amount must be positive")

// DonationService owns the donation ledger. Records are append-only:
// nothing here edits or removes a donation once written.
type DonationService struct {
	donationRepo repository.DonationRepository
	causeRepo    repository.CauseRepository
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	emailService *EmailService
}

func NewDonationService(
	donationRepo repository.DonationRepository,
	causeRepo repository.CauseRepository,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	emailService *EmailService,
) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		causeRepo:    causeRepo,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		emailService: emailService,
	}
}

// Record writes a donation made directly through the API.
func (s *DonationService) Record(principal *authz.Principal, causeID string, amountCents int64) (*model.Donation, error) {
	err := requireAllowed(authz.Authorize(principal, authz.ActionCreateDonation, authz.Resource{}))
	if err != nil {
		return nil, err
	}

	return s.record(causeID, principal.ID, amountCents)
}

// RecordPaid writes a donation confirmed by the payment provider. The
// webhook has no principal; the provider's signature check already
// happened upstream.
func (s *DonationService) RecordPaid(causeID, donorID string, amountCents int64) error {
	_, err := s.record(causeID, donorID, amountCents)
	return err
}

func (s *DonationService) record(causeID, donorID string, amountCents int64) (*model.Donation, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	cause, err := s.causeRepo.ByID(causeID)
	if err != nil {
		return nil, err
	}

	donation := &model.Donation{
		ID:          uuid.New().String(),
		CauseID:     causeID,
		VolunteerID: donorID,
		Amount:      amountCents,
		CreatedAt:   time.Now(),
	}

	err = s.donationRepo.Create(donation)
	if err != nil {
		return nil, fmt.Errorf("failed to record donation: %w", err)
	}

	s.sendReceipt(donation, cause)

	slog.Info("donation recorded", "donation_id", donation.ID, "cause_id", causeID, "amount", amountCents)
	return donation, nil
}

func (s *DonationService) ByVolunteer(volunteerID string) ([]*model.Donation, error) {
	return s.donationRepo.ByVolunteer(volunteerID)
}

func (s *DonationService) ByNGO(ngoID string) ([]*model.DonationWithCause, error) {
	return s.donationRepo.ByNGO(ngoID)
}

func (s *DonationService) sendReceipt(donation *model.Donation, cause *model.Cause) {
	donor, err := s.userRepo.ByID(donation.VolunteerID)
	if err != nil {
		slog.Warn("failed to load donor for receipt", "error", err, "donor_id", donation.VolunteerID)
		return
	}

	name := "there"
	profile, err := s.profileRepo.ByUserID(donor.ID)
	if err == nil {
		name = profile.Name
	}

	err = s.emailService.SendDonationReceiptEmail(donor.Email, name, cause.Title, donation.Amount)
	if err != nil {
		slog.Warn("failed to send donation receipt", "error", err, "donation_id", donation.ID)
	}
}
