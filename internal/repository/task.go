package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

const taskDetailColumns = `t.*, c.title AS cause_title, c.category AS cause_category,
	       c.ngo_id AS cause_ngo_id, p.name AS volunteer_name`

type TaskRepository interface {
	Create(task *model.Task) error
	ByID(id string) (*model.Task, error)
	ByVolunteer(volunteerID string) ([]*model.TaskDetail, error)
	ByNGO(ngoID string) ([]*model.TaskDetail, error)
	Exists(causeID, volunteerID string) (bool, error)
	UpdateStatus(id string, status model.TaskStatus) error
	// UpdateProof sets proof_url and forces status=completed in one
	// statement, keeping the two-field write atomic at the store level.
	UpdateProof(id, proofURL string) error
	// Approve flips the verified flag; it only matches completed rows.
	Approve(id string) error
	Delete(id string) error
	CountApproved() (int, error)
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(task *model.Task) error {
	query := `INSERT INTO tasks (id, cause_id, volunteer_id, status, approved, proof_url, start_date, end_date, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		task.ID,
		task.CauseID,
		task.VolunteerID,
		task.Status,
		task.Approved,
		task.ProofURL,
		task.StartDate,
		task.EndDate,
		task.CreatedAt,
		task.UpdatedAt,
	)

	return err
}

func (r *taskRepository) ByID(id string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1`

	err := r.db.Get(task, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}

	return task, err
}

func (r *taskRepository) ByVolunteer(volunteerID string) ([]*model.TaskDetail, error) {
	var tasks []*model.TaskDetail
	query := `SELECT ` + taskDetailColumns + `
	          FROM tasks t
	          JOIN causes c ON c.id = t.cause_id
	          JOIN profiles p ON p.user_id = t.volunteer_id
	          WHERE t.volunteer_id = $1
	          ORDER BY t.created_at DESC`

	err := r.db.Select(&tasks, query, volunteerID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) ByNGO(ngoID string) ([]*model.TaskDetail, error) {
	var tasks []*model.TaskDetail
	query := `SELECT ` + taskDetailColumns + `
	          FROM tasks t
	          JOIN causes c ON c.id = t.cause_id
	          JOIN profiles p ON p.user_id = t.volunteer_id
	          WHERE c.ngo_id = $1
	          ORDER BY t.created_at DESC`

	err := r.db.Select(&tasks, query, ngoID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Exists(causeID, volunteerID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM tasks WHERE cause_id = $1 AND volunteer_id = $2`

	err := r.db.QueryRow(query, causeID, volunteerID).Scan(&count)
	return count > 0, err
}

func (r *taskRepository) UpdateStatus(id string, status model.TaskStatus) error {
	result, err := r.db.Exec(`UPDATE tasks SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return err
	}

	return requireTaskRow(result)
}

func (r *taskRepository) UpdateProof(id, proofURL string) error {
	result, err := r.db.Exec(`UPDATE tasks SET proof_url = $1, status = $2, updated_at = $3 WHERE id = $4`,
		proofURL, model.TaskStatusCompleted, time.Now(), id)
	if err != nil {
		return err
	}

	return requireTaskRow(result)
}

func (r *taskRepository) Approve(id string) error {
	result, err := r.db.Exec(`UPDATE tasks SET approved = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		true, time.Now(), id, model.TaskStatusCompleted)
	if err != nil {
		return err
	}

	return requireTaskRow(result)
}

func (r *taskRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return requireTaskRow(result)
}

func (r *taskRepository) CountApproved() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM tasks WHERE approved = $1`, true).Scan(&count)
	return count, err
}

func requireTaskRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}
