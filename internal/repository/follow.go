package repository

import (
	"github.com/jmoiron/sqlx"
)

type FollowRepository interface {
	// Insert adds a follow edge; the unique pair index absorbs races.
	Insert(followerID, followingID string) error
	// Delete removes a follow edge and reports whether one existed.
	Delete(followerID, followingID string) (bool, error)
	IsFollowing(followerID, followingID string) (bool, error)
	// FollowerCount is always derived from rows, never stored.
	FollowerCount(userID string) (int, error)
}

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Insert(followerID, followingID string) error {
	query := `INSERT INTO follows (follower_id, following_id) VALUES ($1, $2)
	          ON CONFLICT (follower_id, following_id) DO NOTHING`

	_, err := r.db.Exec(query, followerID, followingID)
	return err
}

func (r *followRepository) Delete(followerID, followingID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *followRepository) IsFollowing(followerID, followingID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID).Scan(&count)
	return count > 0, err
}

func (r *followRepository) FollowerCount(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID).Scan(&count)
	return count, err
}
