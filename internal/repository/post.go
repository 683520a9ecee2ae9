package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/careconnect/careconnect/internal/model"
)

var ErrPostNotFound = errors.New("post not found")

// feedColumns enriches each post for a viewer. The viewer id is bound
// twice ($1 is reused); an empty id matches no likes, so anonymous reads
// come back with is_liked=false.
const feedQuery = `
	SELECT po.*, pr.name AS author_name, u.role AS author_role,
	       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = po.id) AS like_count,
	       (SELECT COUNT(*) FROM post_comments pc WHERE pc.post_id = po.id) AS comment_count,
	       EXISTS(SELECT 1 FROM post_likes l WHERE l.post_id = po.id AND l.user_id = $1) AS is_liked
	FROM posts po
	JOIN users u ON u.id = po.author_id
	JOIN profiles pr ON pr.user_id = po.author_id`

type PostRepository interface {
	Create(post *model.Post) error
	ByID(id string) (*model.Post, error)
	Feed(viewerID string) ([]*model.FeedPost, error)
	FeedByAuthor(authorID, viewerID string) ([]*model.FeedPost, error)

	// InsertLike adds a like row; the unique (post_id, user_id) index
	// makes a concurrent double-insert fail instead of duplicating.
	InsertLike(postID, userID string) error
	// DeleteLike removes a like row and reports whether one existed.
	DeleteLike(postID, userID string) (bool, error)
	LikeCount(postID string) (int, error)

	CreateComment(comment *model.PostComment) error
	Comments(postID string) ([]*model.CommentWithAuthor, error)
}

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	query := `INSERT INTO posts (id, author_id, content, media_url, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, post.ID, post.AuthorID, post.Content, post.MediaURL, post.CreatedAt)
	return err
}

func (r *postRepository) ByID(id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.Get(post, `SELECT * FROM posts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}

	return post, err
}

func (r *postRepository) Feed(viewerID string) ([]*model.FeedPost, error) {
	var posts []*model.FeedPost
	query := feedQuery + ` ORDER BY po.created_at DESC`

	err := r.db.Select(&posts, query, viewerID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) FeedByAuthor(authorID, viewerID string) ([]*model.FeedPost, error) {
	var posts []*model.FeedPost
	query := feedQuery + ` WHERE po.author_id = $2 ORDER BY po.created_at DESC`

	err := r.db.Select(&posts, query, viewerID, authorID)
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *postRepository) InsertLike(postID, userID string) error {
	query := `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
	          ON CONFLICT (post_id, user_id) DO NOTHING`

	_, err := r.db.Exec(query, postID, userID)
	return err
}

func (r *postRepository) DeleteLike(postID, userID string) (bool, error) {
	result, err := r.db.Exec(`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *postRepository) LikeCount(postID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count)
	return count, err
}

func (r *postRepository) CreateComment(comment *model.PostComment) error {
	query := `INSERT INTO post_comments (id, post_id, author_id, content, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, comment.ID, comment.PostID, comment.AuthorID, comment.Content, comment.CreatedAt)
	return err
}

func (r *postRepository) Comments(postID string) ([]*model.CommentWithAuthor, error) {
	var comments []*model.CommentWithAuthor
	query := `SELECT pc.*, pr.name AS author_name
	          FROM post_comments pc
	          JOIN profiles pr ON pr.user_id = pc.author_id
	          WHERE pc.post_id = $1
	          ORDER BY pc.created_at ASC`

	err := r.db.Select(&comments, query, postID)
	if err != nil {
		return nil, err
	}

	return comments, nil
}
