package models

import "time"

// Post validation limits.
const (
	MaxPostContentLen    = 500
	MaxPostDescLen       = 2000
	MaxPostSkillsJSONLen = 2000
)

// Post is a networking request published by a profile: something the
// author is looking for, offering, or showing off, tagged with skills.
type Post struct {
	PostID          uint      `json:"post_id" gorm:"primaryKey"`
	UserID          int64     `json:"user_id" gorm:"index"`
	PostType        string    `json:"post_type" gorm:"size:20"` // looking, offering, showcase
	Content         string    `json:"content"`
	FullDescription string    `json:"full_description"`
	SkillTags       string    `json:"-" gorm:"column:skill_tags;type:text;default:'[]'"` // JSON array of strings
	ExperienceLevel string    `json:"experience_level" gorm:"size:50"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
}

// PostAuthor is the compact author block embedded in feed responses
type PostAuthor struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	PhotoPath string `json:"photo_path"`
}

// FeedPost is a post joined with its author for feed responses
type FeedPost struct {
	Post
	SkillTags []string   `json:"skill_tags"`
	Author    PostAuthor `json:"author"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	PostType        string   `json:"post_type" validate:"required,oneof=looking offering showcase"`
	Content         string   `json:"content" validate:"required,min=1"`
	FullDescription string   `json:"full_description"`
	SkillTags       []string `json:"skill_tags"`
	ExperienceLevel string   `json:"experience_level"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	PostType        string   `json:"post_type" validate:"required,oneof=looking offering showcase"`
	Content         string   `json:"content" validate:"required,min=1"`
	FullDescription string   `json:"full_description"`
	SkillTags       []string `json:"skill_tags"`
	ExperienceLevel string   `json:"experience_level"`
}
