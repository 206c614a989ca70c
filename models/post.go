package models

import "time"

// Post represents a blog post, optionally carrying an uploaded image.
// JSON field names follow the public API contract (camelCase), which the
// pages and the creation form both consume.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `gorm:"size:1024" json:"imageUrl"`
	Published bool      `gorm:"not null;default:false" json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Excerpt returns the first n bytes of content for list pages.
func (p Post) Excerpt(n int) string {
	runes := []rune(p.Content)
	if len(runes) <= n {
		return p.Content
	}
	return string(runes[:n]) + "..."
}
