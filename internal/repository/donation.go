package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/model"
)

// DonationRepository is an append-only ledger: there is deliberately no
// update or delete method.
type DonationRepository interface {
	Create(donation *model.Donation) error
	ByVolunteer(volunteerID string) ([]*model.Donation, error)
	ByVolunteerWithCause(volunteerID string) ([]*model.DonationWithCause, error)
	ByNGO(ngoID string) ([]*model.DonationWithCause, error)
	TotalAmount() (int64, error)
}

type donationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(donation *model.Donation) error {
	query := `INSERT INTO donations (id, cause_id, volunteer_id, amount, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query,
		donation.ID,
		donation.CauseID,
		donation.VolunteerID,
		donation.Amount,
		donation.CreatedAt,
	)

	return err
}

func (r *donationRepository) ByVolunteer(volunteerID string) ([]*model.Donation, error) {
	var donations []*model.Donation
	query := `SELECT * FROM donations WHERE volunteer_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&donations, query, volunteerID)
	if err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationRepository) ByVolunteerWithCause(volunteerID string) ([]*model.DonationWithCause, error) {
	var donations []*model.DonationWithCause
	query := `SELECT d.*, c.title AS cause_title, c.category AS cause_category
	          FROM donations d
	          JOIN causes c ON c.id = d.cause_id
	          WHERE d.volunteer_id = $1
	          ORDER BY d.created_at DESC`

	err := r.db.Select(&donations, query, volunteerID)
	if err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationRepository) ByNGO(ngoID string) ([]*model.DonationWithCause, error) {
	var donations []*model.DonationWithCause
	query := `SELECT d.*, c.title AS cause_title, c.category AS cause_category
	          FROM donations d
	          JOIN causes c ON c.id = d.cause_id
	          WHERE c.ngo_id = $1
	          ORDER BY d.created_at DESC`

	err := r.db.Select(&donations, query, ngoID)
	if err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationRepository) TotalAmount() (int64, error) {
	var total int64
	err := r.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM donations`).Scan(&total)
	return total, err
}
