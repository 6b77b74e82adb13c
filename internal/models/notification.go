package models

import "time"

// NotificationKind is the closed set of notification types.
type NotificationKind string

const (
	KindFollow          NotificationKind = "follow"
	KindResponseRequest NotificationKind = "response_request"
	KindSkillMatch      NotificationKind = "skill_match"
)

// SkillMatchDailyCap is the maximum number of skill_match notifications
// a recipient may receive per calendar day.
const SkillMatchDailyCap = 5

// Notification is an in-app notification row (PostgreSQL).
// Rows are created by the dispatcher or directly by an API action and
// only ever mutated by mark-read.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID int64            `json:"recipient_id" gorm:"index"`
	Kind        NotificationKind `json:"type" gorm:"column:type;size:30;index"`
	ActorID     int64            `json:"actor_id" gorm:"index"`
	PostID      *uint            `json:"post_id,omitempty"`
	Message     string           `json:"message"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// NotificationLog is the per-day delivery counter used to enforce the
// daily cap, keyed by (user, date, type). The date is a local calendar
// date in YYYY-MM-DD form, so counts reset naturally at rollover.
type NotificationLog struct {
	ID     uint             `json:"id" gorm:"primaryKey"`
	UserID int64            `json:"user_id" gorm:"uniqueIndex:idx_user_date_type"`
	Date   string           `json:"date" gorm:"size:10;uniqueIndex:idx_user_date_type"`
	Kind   NotificationKind `json:"type" gorm:"column:type;size:30;uniqueIndex:idx_user_date_type"`
	Count  int              `json:"count"`
}
