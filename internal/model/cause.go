package model

import "time"

const (
	CauseStatusOpen   = "open"
	CauseStatusClosed = "closed"
)

// Cause is a volunteering opportunity posted by an NGO. The urgency score
// (0-10) informs client-side highlighting only and has no workflow effect.
type Cause struct {
	ID          string     `db:"id" json:"id"`
	NGOID       string     `db:"ngo_id" json:"ngoId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Location    string     `db:"location" json:"location"`
	Urgency     int        `db:"urgency" json:"urgency"`
	Status      string     `db:"status" json:"status"`
	StartDate   *time.Time `db:"start_date" json:"startDate"`
	EndDate     *time.Time `db:"end_date" json:"endDate"`
	Latitude    *float64   `db:"latitude" json:"latitude"`
	Longitude   *float64   `db:"longitude" json:"longitude"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

func (c *Cause) IsOpen() bool {
	return c.Status == CauseStatusOpen
}

// CauseWithNGO is a cause enriched with its owner's display name for
// list and detail reads.
type CauseWithNGO struct {
	Cause
	NGOName string `db:"ngo_name" json:"ngoName"`
}
