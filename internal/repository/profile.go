package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/model"
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.Profile, error)
	Create(profile *model.Profile) error
	Update(profile *model.Profile) error
	NGODirectory() ([]*model.NGOSummary, error)
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.Get(&profile, `SELECT * FROM profiles WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO profiles (id, user_id, name, bio, contact, location, avatar_url, banner_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, profile.ID, profile.UserID, profile.Name, profile.Bio, profile.Contact, profile.Location,
		profile.AvatarURL, profile.BannerURL, profile.CreatedAt, profile.UpdatedAt)

	return err
}

// Update writes every profile field except user_id. Role and credentials
// live on users and are not reachable from here.
func (r *profileRepository) Update(profile *model.Profile) error {
	result, err := r.db.Exec(`
		UPDATE profiles
		SET name = $1, bio = $2, contact = $3, location = $4, avatar_url = $5, banner_url = $6, updated_at = $7
		WHERE user_id = $8
	`, profile.Name, profile.Bio, profile.Contact, profile.Location,
		profile.AvatarURL, profile.BannerURL, time.Now(), profile.UserID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *profileRepository) NGODirectory() ([]*model.NGOSummary, error) {
	var ngos []*model.NGOSummary
	query := `SELECT u.id, p.name, p.bio, p.location, p.avatar_url,
	                 (SELECT COUNT(*) FROM causes c WHERE c.ngo_id = u.id) AS cause_count
	          FROM users u
	          JOIN profiles p ON p.user_id = u.id
	          WHERE u.role = $1
	          ORDER BY p.name ASC`

	err := r.db.Select(&ngos, query, model.RoleNGO)
	if err != nil {
		return nil, err
	}

	return ngos, nil
}
