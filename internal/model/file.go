package model

import "time"

const (
	FileTypeAvatar = "avatar"
	FileTypeBanner = "banner"
	FileTypeProof  = "proof"
	FileTypeMedia  = "media"
)

const (
	FileOwnerUser = "user"
	FileOwnerTask = "task"
	FileOwnerPost = "post"
)

type File struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"userId"`       // Who uploaded this file
	OwnerType    string    `db:"owner_type" json:"ownerType"` // "user", "task", "post"
	OwnerID      string    `db:"owner_id" json:"ownerId"`
	Type         string    `db:"type" json:"type"`
	Filename     string    `db:"filename" json:"filename"`
	OriginalName string    `db:"original_name" json:"originalName"`
	MimeType     string    `db:"mime_type" json:"mimeType"`
	Size         int64     `db:"size" json:"size"`
	StoragePath  string    `db:"storage_path" json:"-"`
	Public       bool      `db:"public" json:"public"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
