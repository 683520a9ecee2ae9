package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careconnect/careconnect/internal/authz"
	"github.com/careconnect/careconnect/internal/model"
	"github.com/careconnect/careconnect/internal/repository"
)

var ErrEmptyContent = errors.New("content is required")

// FeedService covers the social surface: posts, likes, comments and
// follows. Likes and follows are toggles; repeating an action undoes it.
type FeedService struct {
	postRepo   repository.PostRepository
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *FeedService) CreatePost(principal *authz.Principal, content string, mediaURL *string) (*model.Post, error) {
	err := requireAllowed(authz.Authorize(principal, authz.ActionCreatePost, authz.Resource{}))
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	post := &model.Post{
		ID:        uuid.New().String(),
		AuthorID:  principal.ID,
		Content:   content,
		MediaURL:  mediaURL,
		CreatedAt: time.Now(),
	}

	err = s.postRepo.Create(post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "author_id", principal.ID)
	return post, nil
}

// Feed returns all posts, newest first, enriched with counts and the
// viewer's like state. Anonymous viewers get is_liked=false throughout.
func (s *FeedService) Feed(viewer *authz.Principal) ([]*model.FeedPost, error) {
	return s.postRepo.Feed(viewerID(viewer))
}

func (s *FeedService) PostsByAuthor(authorID string, viewer *authz.Principal) ([]*model.FeedPost, error) {
	return s.postRepo.FeedByAuthor(authorID, viewerID(viewer))
}

// ToggleLike flips the viewer's like on a post and reports the new state
// with the updated count.
func (s *FeedService) ToggleLike(principal *authz.Principal, postID string) (liked bool, likeCount int, err error) {
	err = requireAllowed(authz.Authorize(principal, authz.ActionLikePost, authz.Resource{}))
	if err != nil {
		return false, 0, err
	}

	_, err = s.postRepo.ByID(postID)
	if err != nil {
		return false, 0, err
	}

	removed, err := s.postRepo.DeleteLike(postID, principal.ID)
	if err != nil {
		return false, 0, err
	}

	if !removed {
		err = s.postRepo.InsertLike(postID, principal.ID)
		if err != nil {
			return false, 0, err
		}
		liked = true
	}

	likeCount, err = s.postRepo.LikeCount(postID)
	if err != nil {
		return false, 0, err
	}

	return liked, likeCount, nil
}

func (s *FeedService) AddComment(principal *authz.Principal, postID, content string) (*model.PostComment, error) {
	err := requireAllowed(authz.Authorize(principal, authz.ActionCommentPost, authz.Resource{}))
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	_, err = s.postRepo.ByID(postID)
	if err != nil {
		return nil, err
	}

	comment := &model.PostComment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  principal.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	err = s.postRepo.CreateComment(comment)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func (s *FeedService) Comments(postID string) ([]*model.CommentWithAuthor, error) {
	_, err := s.postRepo.ByID(postID)
	if err != nil {
		return nil, err
	}

	return s.postRepo.Comments(postID)
}

// ToggleFollow flips whether the principal follows the target user and
// reports the new state.
func (s *FeedService) ToggleFollow(principal *authz.Principal, targetUserID string) (following bool, err error) {
	err = requireAllowed(authz.Authorize(principal, authz.ActionFollowUser, authz.Resource{TargetUserID: targetUserID}))
	if err != nil {
		return false, err
	}

	_, err = s.userRepo.ByID(targetUserID)
	if err != nil {
		return false, err
	}

	removed, err := s.followRepo.Delete(principal.ID, targetUserID)
	if err != nil {
		return false, err
	}

	if !removed {
		err = s.followRepo.Insert(principal.ID, targetUserID)
		if err != nil {
			return false, err
		}
		following = true
	}

	return following, nil
}

func (s *FeedService) FollowerCount(userID string) (int, error) {
	return s.followRepo.FollowerCount(userID)
}

func (s *FeedService) IsFollowing(followerID, followingID string) (bool, error) {
	return s.followRepo.IsFollowing(followerID, followingID)
}

func viewerID(viewer *authz.Principal) string {
	if viewer == nil {
		return ""
	}
	return viewer.ID
}
