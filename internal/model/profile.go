package model

import "time"

type Profile struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	Bio       string    `db:"bio" json:"bio"`
	Contact   string    `db:"contact" json:"contact"`
	Location  string    `db:"location" json:"location"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl"`
	BannerURL *string   `db:"banner_url" json:"bannerUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NGOSummary is a directory entry for the public NGO listing.
type NGOSummary struct {
	ID         string  `db:"id" json:"id"`
	Name       string  `db:"name" json:"name"`
	Bio        string  `db:"bio" json:"bio"`
	Location   string  `db:"location" json:"location"`
	AvatarURL  *string `db:"avatar_url" json:"avatarUrl"`
	CauseCount int     `db:"cause_count" json:"causeCount"`
}
