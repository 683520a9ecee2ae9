package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
	"github.com/careconnect/careconnect/internal/validation"
)

type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewUserService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	return s.userRepo.ByID(id)
}

func (s *UserService) Profile(userID string) (*model.Profile, error) {
	return s.profileRepo.ByUserID(userID)
}

// ProfileUpdate carries a partial profile edit. Nil fields are left
// untouched. The user's role is not here on purpose: it is fixed at
// registration.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	Contact   *string
	Location  *string
	AvatarURL *string
	BannerURL *string
}

func (s *UserService) UpdateProfile(userID string, update ProfileUpdate) (*model.Profile, error) {
	profile, err := s.profileRepo.ByUserID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		err = validation.ValidateName(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		profile.Name = name
	}
	if update.Bio != nil {
		profile.Bio = strings.TrimSpace(*update.Bio)
	}
	if update.Contact != nil {
		profile.Contact = strings.TrimSpace(*update.Contact)
	}
	if update.Location != nil {
		profile.Location = strings.TrimSpace(*update.Location)
	}
	if update.AvatarURL != nil {
		profile.AvatarURL = update.AvatarURL
	}
	if update.BannerURL != nil {
		profile.BannerURL = update.BannerURL
	}

	profile.UpdatedAt = time.Now()

	err = s.profileRepo.Update(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return profile, nil
}

// NGODirectory lists every organization with its public profile and how
// many causes it has posted.
func (s *UserService) NGODirectory() ([]*model.NGOSummary, error) {
	return s.profileRepo.NGODirectory()
}
