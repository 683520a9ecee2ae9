package model

import "time"

type Post struct {
	ID        string    `db:"id" json:"id"`
	AuthorID  string    `db:"author_id" json:"authorId"`
	Content   string    `db:"content" json:"content"`
	MediaURL  *string   `db:"media_url" json:"mediaUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// FeedPost is a post enriched for a particular viewer. IsLiked is always
// false for anonymous reads.
type FeedPost struct {
	Post
	AuthorName   string `db:"author_name" json:"authorName"`
	AuthorRole   Role   `db:"author_role" json:"authorRole"`
	LikeCount    int    `db:"like_count" json:"likeCount"`
	CommentCount int    `db:"comment_count" json:"commentCount"`
	IsLiked      bool   `db:"is_liked" json:"isLiked"`
}

type PostComment struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"postId"`
	AuthorID  string    `db:"author_id" json:"authorId"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// CommentWithAuthor carries the author's display name for feed rendering.
type CommentWithAuthor struct {
	PostComment
	AuthorName string `db:"author_name" json:"authorName"`
}
