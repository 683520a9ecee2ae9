package model

// Follow is a presence/absence relation: a row means "follower follows
// following". Follower counts are always derived, never stored.
type Follow struct {
	FollowerID  string `db:"follower_id" json:"followerId"`
	FollowingID string `db:"following_id" json:"followingId"`
}
