package repository

import (
	"database/sql"
	"errors"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/model"
)

var ErrCauseNotFound = errors.New("cause not found")

// CauseFilters narrows the public cause listing. Empty fields match all.
type CauseFilters struct {
	Category string
	Location string
	Status   string
}

type CauseRepository interface {
	Create(cause *model.Cause) error
	ByID(id string) (*model.Cause, error)
	ByIDWithNGO(id string) (*model.CauseWithNGO, error)
	List(filters CauseFilters) ([]*model.CauseWithNGO, error)
	ByNGO(ngoID string) ([]*model.Cause, error)
	Update(cause *model.Cause) error
	Delete(id string) error
	Count() (int, error)
}

type causeRepository struct {
	db *sqlx.DB
}

func NewCauseRepository(db *sqlx.DB) CauseRepository {
	return &causeRepository{db: db}
}

func (r *causeRepository) Create(cause *model.Cause) error {
	query := `INSERT INTO causes (id, ngo_id, title, description, category, location, urgency, status, start_date, end_date, latitude, longitude, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		cause.ID,
		cause.NGOID,
		cause.Title,
		cause.Description,
		cause.Category,
		cause.Location,
		cause.Urgency,
		cause.Status,
		cause.StartDate,
		cause.EndDate,
		cause.Latitude,
		cause.Longitude,
		cause.CreatedAt,
	)

	return err
}

func (r *causeRepository) ByID(id string) (*model.Cause, error) {
	cause := &model.Cause{}
	query := `SELECT * FROM causes WHERE id = $1`

	err := r.db.Get(cause, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCauseNotFound
	}

	return cause, err
}

func (r *causeRepository) ByIDWithNGO(id string) (*model.CauseWithNGO, error) {
	cause := &model.CauseWithNGO{}
	query := `SELECT c.*, p.name AS ngo_name
	          FROM causes c
	          JOIN profiles p ON p.user_id = c.ngo_id
	          WHERE c.id = $1`

	err := r.db.Get(cause, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrCauseNotFound
	}

	return cause, err
}

func (r *causeRepository) List(filters CauseFilters) ([]*model.CauseWithNGO, error) {
	query := `SELECT c.*, p.name AS ngo_name
	          FROM causes c
	          JOIN profiles p ON p.user_id = c.ngo_id
	          WHERE 1=1`
	args := []any{}

	if filters.Category != "" {
		args = append(args, filters.Category)
		query += ` AND c.category = $` + itoa(len(args))
	}
	if filters.Location != "" {
		args = append(args, filters.Location)
		query += ` AND c.location = $` + itoa(len(args))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		query += ` AND c.status = $` + itoa(len(args))
	}

	query += ` ORDER BY c.created_at DESC`

	var causes []*model.CauseWithNGO
	err := r.db.Select(&causes, query, args...)
	if err != nil {
		return nil, err
	}

	return causes, nil
}

func (r *causeRepository) ByNGO(ngoID string) ([]*model.Cause, error) {
	var causes []*model.Cause
	query := `SELECT * FROM causes WHERE ngo_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&causes, query, ngoID)
	if err != nil {
		return nil, err
	}

	return causes, nil
}

func (r *causeRepository) Update(cause *model.Cause) error {
	query := `UPDATE causes
	          SET title = $1, description = $2, category = $3, location = $4, urgency = $5,
	              status = $6, start_date = $7, end_date = $8, latitude = $9, longitude = $10
	          WHERE id = $11`

	result, err := r.db.Exec(query,
		cause.Title,
		cause.Description,
		cause.Category,
		cause.Location,
		cause.Urgency,
		cause.Status,
		cause.StartDate,
		cause.EndDate,
		cause.Latitude,
		cause.Longitude,
		cause.ID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCauseNotFound
	}

	return nil
}

// Delete removes the cause. Tasks and ledger rows referencing it go with
// it via ON DELETE CASCADE, so no dangling cause_id can remain.
func (r *causeRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM causes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCauseNotFound
	}

	return nil
}

func (r *causeRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM causes`).Scan(&count)
	return count, err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
