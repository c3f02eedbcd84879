// Package models contains the post entity, its transfer shapes and API error types.
package models

import (
	"time"
)

// Field limits for posts.
const (
	TitleMinLength   = 1
	TitleMaxLength   = 256
	ContentMinLength = 10
)

// Post is the stored post record. ID and CreatedAt are assigned by the database;
// UpdatedAt stays nil until the first update.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"size:256;not null;index" json:"title"`
	Content   string     `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time  `gorm:"autoCreateTime:false;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string {
	return "posts"
}

// PostCreate is the request body for creating a post.
type PostCreate struct {
	Title   string `json:"title" validate:"required,min=1,max=256"`
	Content string `json:"content" validate:"required,min=10"`
}

// PostUpdate is the request body for a partial update. A nil field was not sent
// (or was sent as null) and is left untouched.
type PostUpdate struct {
	Title   *string `json:"title,omitempty" validate:"omitnil,min=1,max=256"`
	Content *string `json:"content,omitempty" validate:"omitnil,min=10"`
}

// Columns returns the column assignments for the fields present in u.
func (u PostUpdate) Columns() map[string]any {
	cols := make(map[string]any, 2)
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Content != nil {
		cols["content"] = *u.Content
	}
	return cols
}
