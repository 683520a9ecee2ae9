package model

import "time"

// Donation is one row of the append-only donation ledger. Amounts are
// stored in cents; there is no update or delete path.
type Donation struct {
	ID          string    `db:"id" json:"id"`
	CauseID     string    `db:"cause_id" json:"causeId"`
	VolunteerID string    `db:"volunteer_id" json:"volunteerId"`
	Amount      int64     `db:"amount" json:"amount"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// DonationWithCause joins a ledger row with its cause for NGO-side
// analytics reads.
type DonationWithCause struct {
	Donation
	CauseTitle    string `db:"cause_title" json:"causeTitle"`
	CauseCategory string `db:"cause_category" json:"causeCategory"`
}
