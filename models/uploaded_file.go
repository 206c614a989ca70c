package models

import "time"

// UploadedFile records locally stored uploads so the background cleaner can
// reconcile files that never got referenced by a post.
type UploadedFile struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	FilePath  string     `gorm:"size:1024;not null" json:"file_path"` // filesystem path under the upload root
	URL       string     `gorm:"size:1024;not null;index" json:"url"` // public URL like /uploads/...
	ClaimedAt *time.Time `gorm:"index" json:"claimed_at"`             // set when a post references the URL
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
